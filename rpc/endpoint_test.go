package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint_KnownClusters(t *testing.T) {
	cases := map[string]string{
		"devnet":       "https://api.devnet.solana.com",
		"mainnet-beta": "https://api.mainnet-beta.solana.com",
		"testnet":      "https://api.testnet.solana.com",
		"localhost":    "http://127.0.0.1:8899",
	}

	for cluster, want := range cases {
		got, err := ResolveEndpoint(cluster)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestResolveEndpoint_CustomURI(t *testing.T) {
	got, err := ResolveEndpoint("https://my-rpc.example.com:8899")
	require.NoError(t, err)
	assert.Equal(t, "https://my-rpc.example.com:8899", got)
}

func TestResolveEndpoint_InvalidURI(t *testing.T) {
	_, err := ResolveEndpoint("not a uri at all")
	assert.Error(t, err)
}
