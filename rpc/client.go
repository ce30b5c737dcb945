package rpc

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/solworks/solkit/internal/retry"
	"github.com/solworks/solkit/internal/retry/backoff"
	"github.com/solworks/solkit/solana"
)

// Signature, Key, and Blockhash alias the wire types from solana, so
// callers of this package don't need two import paths for one concept.
type (
	Signature = solana.Signature
	Key       = solana.Key
	Blockhash = solana.Blockhash
)

// AccountInfo is the decoded result of getAccountInfo/getMultipleAccounts.
type AccountInfo struct {
	Owner      Key
	Lamports   uint64
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// SignatureStatus is one entry of a getSignatureStatuses response.
type SignatureStatus struct {
	Err                interface{}
	ConfirmationStatus Commitment
}

// Client is the JSON-RPC surface this package exposes. It retries
// transport failures and HTTP 5xx per the package's retry policy and
// surfaces everything else (structured RPC errors, malformed responses)
// directly to the caller.
type Client interface {
	GetAccountInfo(account Key, commitment Commitment) (*AccountInfo, error)
	GetMultipleAccounts(accounts []Key, commitment Commitment) ([]*AccountInfo, error)
	GetBalance(account Key, commitment Commitment) (uint64, error)
	GetBlock(slot uint64, commitment Commitment) (map[string]interface{}, error)
	GetLatestBlockhash(commitment Commitment) (Blockhash, error)
	GetRecentBlockhash(commitment Commitment) (Blockhash, error)
	GetMinimumBalanceForRentExemption(dataSize uint64) (uint64, error)
	SendTransaction(tx solana.Transaction, commitment Commitment) (Signature, error)
	RequestAirdrop(account Key, lamports uint64, commitment Commitment) (Signature, error)
	GetSignaturesForAddress(account Key, commitment Commitment, limit uint64) ([]Signature, error)
	GetSignatureStatuses(signatures []Signature) ([]*SignatureStatus, error)
	GetTransaction(sig Signature, commitment Commitment) (map[string]interface{}, error)
	GetTokenSupply(mint Key, commitment Commitment) (uint64, error)
	GetTokenLargestAccounts(mint Key, commitment Commitment) ([]map[string]interface{}, error)
	BatchGetAccountInfo(accounts []Key, commitment Commitment) ([]*AccountInfo, error)
}

type client struct {
	log     *logrus.Entry
	rpc     jsonrpc.RPCClient
	retrier retry.Retrier
}

// New returns a Client talking to endpoint with the package's default
// retry policy: at most 10 attempts, exponential backoff capped at 4
// seconds per retry.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a Client configured with the given ybbus/jsonrpc
// options (custom HTTP client, headers, and the like).
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log: logrus.StandardLogger().WithField("type", "rpc/client"),
		rpc: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(10),
			retry.BackoffWithJitter(backoff.BinaryExponential(250*time.Millisecond), 4*time.Second, 0.1),
		),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		err := c.rpc.CallFor(out, method, cleanParams(params)...)
		if err == nil {
			return nil
		}
		return c.handleRPCError(method, err)
	})
	return err
}

func (c *client) callBatch(method string, requests jsonrpc.RPCRequests) (map[int]jsonrpc.RPCResponse, error) {
	var byID map[int]jsonrpc.RPCResponse

	_, err := c.retrier.Retry(func() error {
		responses, err := c.rpc.CallBatch(requests)
		if err != nil {
			return c.handleRPCError(method, err)
		}

		out := make(map[int]jsonrpc.RPCResponse, len(responses))
		for _, resp := range responses {
			if resp.Error != nil {
				return c.handleRPCError(method, resp.Error)
			}
			out[resp.ID] = *resp
		}

		byID = out
		return nil
	})

	return byID, err
}

func (c *client) handleRPCError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		// Transport-level failures (connection refused, timeouts, non-JSON
		// HTTP 5xx bodies) don't come back as *jsonrpc.RPCError. Route
		// them through the same retriable sentinel as a 5xx RPC error.
		c.log.WithField("method", method).WithError(err).Warn("transport error")
		return errors.Wrap(errServiceError, err.Error())
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Error("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 {
		return errServiceError
	}

	var logs []string
	if data, ok := rpcErr.Data.(map[string]interface{}); ok {
		if raw, ok := data["logs"].([]interface{}); ok {
			for _, l := range raw {
				if s, ok := l.(string); ok {
					logs = append(logs, s)
				}
			}
		}
	}
	if txErr, parseErr := solana.ParseRPCError(rpcErr); parseErr == nil && txErr != nil {
		c.log.WithFields(logrus.Fields{"method": method, "err": txErr.Error()}).Error("rpc error")
	}
	return RPCError{Code: rpcErr.Code, Message: rpcErr.Message, Logs: logs}
}

func (c *client) GetMinimumBalanceForRentExemption(dataSize uint64) (uint64, error) {
	var lamports uint64
	if err := c.call(&lamports, "getMinimumBalanceForRentExemption", dataSize); err != nil {
		return 0, errors.Wrap(err, "getMinimumBalanceForRentExemption")
	}
	return lamports, nil
}

func (c *client) GetBalance(account Key, commitment Commitment) (uint64, error) {
	var resp struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(&resp, "getBalance", base58.Encode(account), Opts{"commitment": string(commitment)}.wireMap()); err != nil {
		return 0, errors.Wrap(err, "getBalance")
	}
	return resp.Value, nil
}

func (c *client) GetLatestBlockhash(commitment Commitment) (Blockhash, error) {
	return c.getBlockhash("getLatestBlockhash", commitment)
}

func (c *client) GetRecentBlockhash(commitment Commitment) (Blockhash, error) {
	return c.getBlockhash("getRecentBlockhash", commitment)
}

func (c *client) getBlockhash(method string, commitment Commitment) (Blockhash, error) {
	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, method, Opts{"commitment": string(commitment)}.wireMap()); err != nil {
		return Blockhash{}, errors.Wrapf(err, "%s", method)
	}

	decoded, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return Blockhash{}, errors.Wrapf(err, "%s: decode blockhash", method)
	}
	var bh Blockhash
	copy(bh[:], decoded)
	return bh, nil
}

func (c *client) GetAccountInfo(account Key, commitment Commitment) (*AccountInfo, error) {
	var resp struct {
		Value *struct {
			Owner      string `json:"owner"`
			Lamports   uint64 `json:"lamports"`
			Data       []string `json:"data"`
			Executable bool   `json:"executable"`
			RentEpoch  uint64 `json:"rentEpoch"`
		} `json:"value"`
	}

	opts := Opts{"commitment": string(commitment), "encoding": "base64"}.wireMap()
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), opts); err != nil {
		return nil, errors.Wrap(err, "getAccountInfo")
	}
	if resp.Value == nil {
		return nil, nil
	}

	return decodeAccountInfo(resp.Value.Owner, resp.Value.Lamports, resp.Value.Data, resp.Value.Executable, resp.Value.RentEpoch)
}

func (c *client) GetMultipleAccounts(accounts []Key, commitment Commitment) ([]*AccountInfo, error) {
	encoded := make([]string, len(accounts))
	for i, a := range accounts {
		encoded[i] = base58.Encode(a)
	}

	var resp struct {
		Value []*struct {
			Owner      string   `json:"owner"`
			Lamports   uint64   `json:"lamports"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
			RentEpoch  uint64   `json:"rentEpoch"`
		} `json:"value"`
	}

	opts := Opts{"commitment": string(commitment), "encoding": "base64"}.wireMap()
	if err := c.call(&resp, "getMultipleAccounts", encoded, opts); err != nil {
		return nil, errors.Wrap(err, "getMultipleAccounts")
	}

	out := make([]*AccountInfo, len(resp.Value))
	for i, v := range resp.Value {
		if v == nil {
			continue
		}
		info, err := decodeAccountInfo(v.Owner, v.Lamports, v.Data, v.Executable, v.RentEpoch)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}
	return out, nil
}

func decodeAccountInfo(owner string, lamports uint64, data []string, executable bool, rentEpoch uint64) (*AccountInfo, error) {
	ownerKey, err := base58.Decode(owner)
	if err != nil {
		return nil, errors.Wrap(err, "decode owner")
	}

	var raw []byte
	if len(data) > 0 && data[0] != "" {
		raw, err = base64.StdEncoding.DecodeString(data[0])
		if err != nil {
			return nil, errors.Wrap(err, "decode account data")
		}
	}

	return &AccountInfo{
		Owner:      Key(ownerKey),
		Lamports:   lamports,
		Data:       raw,
		Executable: executable,
		RentEpoch:  rentEpoch,
	}, nil
}

func (c *client) GetBlock(slot uint64, commitment Commitment) (map[string]interface{}, error) {
	opts := Opts{"commitment": string(commitment)}.wireMap()
	var resp map[string]interface{}
	if err := c.call(&resp, "getBlock", slot, opts); err != nil {
		return nil, errors.Wrap(err, "getBlock")
	}
	return resp, nil
}

func (c *client) SendTransaction(tx solana.Transaction, commitment Commitment) (Signature, error) {
	opts := Opts{
		"preflight_commitment": string(commitment),
		"encoding":             "base64",
	}.wireMap()

	var result string
	if err := c.call(&result, "sendTransaction", base64.StdEncoding.EncodeToString(tx.Marshal()), opts); err != nil {
		return Signature{}, errors.Wrap(err, "sendTransaction")
	}

	decoded, err := base58.Decode(result)
	if err != nil {
		return Signature{}, errors.Wrap(err, "sendTransaction: decode signature")
	}
	var sig Signature
	copy(sig[:], decoded)
	return sig, nil
}

func (c *client) RequestAirdrop(account Key, lamports uint64, commitment Commitment) (Signature, error) {
	opts := Opts{"commitment": string(commitment)}.wireMap()

	var result string
	if err := c.call(&result, "requestAirdrop", base58.Encode(account), lamports, opts); err != nil {
		return Signature{}, errors.Wrap(err, "requestAirdrop")
	}

	decoded, err := base58.Decode(result)
	if err != nil {
		return Signature{}, errors.Wrap(err, "requestAirdrop: decode signature")
	}
	var sig Signature
	copy(sig[:], decoded)
	return sig, nil
}

func (c *client) GetSignaturesForAddress(account Key, commitment Commitment, limit uint64) ([]Signature, error) {
	opts := Opts{"commitment": string(commitment), "limit": limit}.wireMap()

	var resp []struct {
		Signature string `json:"signature"`
	}
	if err := c.call(&resp, "getSignaturesForAddress", base58.Encode(account), opts); err != nil {
		return nil, errors.Wrap(err, "getSignaturesForAddress")
	}

	out := make([]Signature, len(resp))
	for i, e := range resp {
		decoded, err := base58.Decode(e.Signature)
		if err != nil {
			return nil, errors.Wrap(err, "getSignaturesForAddress: decode signature")
		}
		copy(out[i][:], decoded)
	}
	return out, nil
}

func (c *client) GetSignatureStatuses(signatures []Signature) ([]*SignatureStatus, error) {
	encoded := make([]string, len(signatures))
	for i, s := range signatures {
		encoded[i] = base58.Encode(s[:])
	}

	var resp struct {
		Value []*struct {
			Err                interface{} `json:"err"`
			ConfirmationStatus string      `json:"confirmationStatus"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getSignatureStatuses", encoded, Opts{"search_transaction_history": true}.wireMap()); err != nil {
		return nil, errors.Wrap(err, "getSignatureStatuses")
	}

	out := make([]*SignatureStatus, len(resp.Value))
	for i, v := range resp.Value {
		if v == nil {
			continue
		}
		out[i] = &SignatureStatus{Err: v.Err, ConfirmationStatus: Commitment(v.ConfirmationStatus)}
	}
	return out, nil
}

func (c *client) GetTransaction(sig Signature, commitment Commitment) (map[string]interface{}, error) {
	opts := Opts{"commitment": string(commitment), "encoding": "json"}.wireMap()

	var resp map[string]interface{}
	if err := c.call(&resp, "getTransaction", base58.Encode(sig[:]), opts); err != nil {
		return nil, errors.Wrap(err, "getTransaction")
	}
	if _, err := DecodeResult("getTransaction", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) GetTokenSupply(mint Key, commitment Commitment) (uint64, error) {
	var resp struct {
		Value struct {
			Amount string `json:"amount"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getTokenSupply", base58.Encode(mint), Opts{"commitment": string(commitment)}.wireMap()); err != nil {
		return 0, errors.Wrap(err, "getTokenSupply")
	}

	amount, err := strconv.ParseUint(resp.Value.Amount, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "getTokenSupply: parse amount")
	}
	return amount, nil
}

func (c *client) GetTokenLargestAccounts(mint Key, commitment Commitment) ([]map[string]interface{}, error) {
	var resp struct {
		Value []map[string]interface{} `json:"value"`
	}
	if err := c.call(&resp, "getTokenLargestAccounts", base58.Encode(mint), Opts{"commitment": string(commitment)}.wireMap()); err != nil {
		return nil, errors.Wrap(err, "getTokenLargestAccounts")
	}
	return resp.Value, nil
}

// BatchGetAccountInfo fetches many accounts with a single JSON-RPC batch
// request rather than one round trip per account: one getAccountInfo
// request per account, ascending ids assigned by batch(), responses
// matched back to their request by id.
func (c *client) BatchGetAccountInfo(accounts []Key, commitment Commitment) ([]*AccountInfo, error) {
	opts := Opts{"commitment": string(commitment), "encoding": "base64"}.wireMap()

	requests := make([]*jsonrpc.RPCRequest, len(accounts))
	for i, a := range accounts {
		requests[i] = newRequest("getAccountInfo", base58.Encode(a), opts)
	}
	batched := batch(requests...)

	responses, err := c.callBatch("getAccountInfo", batched)
	if err != nil {
		return nil, errors.Wrap(err, "batchGetAccountInfo")
	}

	out := make([]*AccountInfo, len(accounts))
	for i, req := range batched {
		resp, ok := responses[req.ID]
		if !ok {
			continue
		}

		var parsed struct {
			Value *struct {
				Owner      string   `json:"owner"`
				Lamports   uint64   `json:"lamports"`
				Data       []string `json:"data"`
				Executable bool     `json:"executable"`
				RentEpoch  uint64   `json:"rentEpoch"`
			} `json:"value"`
		}
		if err := resp.GetObject(&parsed); err != nil {
			return nil, errors.Wrapf(err, "batchGetAccountInfo: decode response %d", i)
		}
		if parsed.Value == nil {
			continue
		}

		info, err := decodeAccountInfo(parsed.Value.Owner, parsed.Value.Lamports, parsed.Value.Data, parsed.Value.Executable, parsed.Value.RentEpoch)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}

	return out, nil
}

