package rpc

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResult_RequestAirdrop(t *testing.T) {
	raw := make([]byte, 64)
	raw[0] = 7
	encoded := base58.Encode(raw)

	decoded, err := DecodeResult("requestAirdrop", encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeResult_GetAccountInfoDecodesOwner(t *testing.T) {
	owner := make([]byte, 32)
	owner[0] = 9

	result := map[string]interface{}{
		"value": map[string]interface{}{
			"owner":    base58.Encode(owner),
			"lamports": float64(100),
		},
	}

	decoded, err := DecodeResult("getAccountInfo", result)
	require.NoError(t, err)

	m := decoded.(map[string]interface{})
	value := m["value"].(map[string]interface{})
	assert.Equal(t, owner, value["owner"])
}

func TestDecodeResult_GetSignaturesForAddress(t *testing.T) {
	sigBytes := make([]byte, 64)
	sigBytes[0] = 3

	result := []interface{}{
		map[string]interface{}{"signature": base58.Encode(sigBytes)},
	}

	decoded, err := DecodeResult("getSignaturesForAddress", result)
	require.NoError(t, err)

	list := decoded.([]interface{})
	entry := list[0].(map[string]interface{})
	assert.Equal(t, sigBytes, entry["signature"])
}

func TestDecodeResult_GetLatestBlockhash(t *testing.T) {
	bh := make([]byte, 32)
	bh[0] = 5

	result := map[string]interface{}{
		"value": map[string]interface{}{
			"blockhash": base58.Encode(bh),
		},
	}

	decoded, err := DecodeResult("getLatestBlockhash", result)
	require.NoError(t, err)

	m := decoded.(map[string]interface{})
	value := m["value"].(map[string]interface{})
	assert.Equal(t, bh, value["blockhash"])
}

func TestDecodeResult_SurfacesErrorField(t *testing.T) {
	result := map[string]interface{}{"error": "blockhash not found"}

	_, err := DecodeResult("getLatestBlockhash", result)
	assert.Error(t, err)
}

func TestDecodeResult_GetMultipleAccountsElementwise(t *testing.T) {
	owner1 := make([]byte, 32)
	owner1[0] = 1
	owner2 := make([]byte, 32)
	owner2[0] = 2

	result := map[string]interface{}{
		"value": []interface{}{
			map[string]interface{}{"owner": base58.Encode(owner1)},
			nil,
			map[string]interface{}{"owner": base58.Encode(owner2)},
		},
	}

	decoded, err := DecodeResult("getMultipleAccounts", result)
	require.NoError(t, err)

	m := decoded.(map[string]interface{})
	list := m["value"].([]interface{})
	assert.Equal(t, owner1, list[0].(map[string]interface{})["owner"])
	assert.Nil(t, list[1])
	assert.Equal(t, owner2, list[2].(map[string]interface{})["owner"])
}

func TestDecodeResult_UnknownMethodPassesThrough(t *testing.T) {
	result := map[string]interface{}{"foo": "bar"}
	decoded, err := DecodeResult("getVersion", result)
	require.NoError(t, err)
	assert.Equal(t, result, decoded)
}
