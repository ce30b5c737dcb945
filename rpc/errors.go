package rpc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

// ErrHTTPError reports a non-retryable HTTP-level failure: anything other
// than a JSON-RPC error object and outside the retry policy's 5xx range.
type ErrHTTPError struct {
	Status int
}

func (e ErrHTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// ErrTimeout describes a confirmation deadline that elapsed with
// signatures still unconfirmed. Partial holds the signatures that did
// confirm before the deadline, in confirmation order. Nothing in this
// package returns it; tracker.SendAndConfirm reports its deadline with
// tracker.ErrTimeout.
type ErrTimeout struct {
	Partial []Signature
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("timed out waiting for confirmation, %d of the batch confirmed", len(e.Partial))
}

// RPCError wraps a structured JSON-RPC error response: a numeric code, a
// message, and any program logs the node attached.
type RPCError struct {
	Code    int
	Message string
	Logs    []string
}

func (e RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
