// Package rpc implements the JSON-RPC request/response pipeline: endpoint
// resolution, request encoding, method-aware response decoding, and a
// retrying client built on ybbus/jsonrpc.
package rpc

import (
	"net/url"

	"github.com/pkg/errors"
)

const (
	clusterDevnet      = "devnet"
	clusterMainnetBeta = "mainnet-beta"
	clusterTestnet     = "testnet"
	clusterLocalhost   = "localhost"
)

// ResolveEndpoint maps a cluster moniker to its canonical JSON-RPC URL.
// Anything that isn't a known moniker is validated as a URI and returned
// verbatim.
func ResolveEndpoint(cluster string) (string, error) {
	switch cluster {
	case clusterDevnet, clusterMainnetBeta, clusterTestnet:
		return "https://api." + cluster + ".solana.com", nil
	case clusterLocalhost:
		return "http://127.0.0.1:8899", nil
	default:
		u, err := url.Parse(cluster)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", errors.Errorf("%q is not a known cluster or a valid RPC URI", cluster)
		}
		return cluster, nil
	}
}
