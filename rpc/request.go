package rpc

import (
	"github.com/ybbus/jsonrpc"
)

// cleanParams drops a trailing Opts argument that rendered to an empty
// map, so methods called with no options don't send a spurious {} param.
func cleanParams(params []interface{}) []interface{} {
	for len(params) > 0 {
		last, ok := params[len(params)-1].(map[string]interface{})
		if !ok || len(last) != 0 {
			break
		}
		params = params[:len(params)-1]
	}
	return params
}

// newRequest builds a single request, cleaning its trailing params.
func newRequest(method string, params ...interface{}) *jsonrpc.RPCRequest {
	req := jsonrpc.NewRequest(method, cleanParams(params)...)
	req.ID = 0
	return req
}

// batch assigns ascending integer ids (starting at 0) to a set of
// requests built independently, the shape CallBatch needs to match
// responses back to their originating request.
func batch(requests ...*jsonrpc.RPCRequest) jsonrpc.RPCRequests {
	out := make(jsonrpc.RPCRequests, len(requests))
	for i, r := range requests {
		r.ID = i
		out[i] = r
	}
	return out
}
