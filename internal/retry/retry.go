// Package retry implements the RPC client's retry policy: bounded
// attempts, error-based retry selection, and backoff between attempts.
package retry

// Action is a function to retry.
type Action func() error

// Retrier retries an Action according to a fixed set of strategies.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier governed by strategies. With no strategies,
// it retries in a tight loop until the action succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{strategies: strategies}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry runs action, retrying per strategies until one of them says stop or
// the action succeeds.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for i := uint(1); ; i++ {
		err := action()
		if err == nil {
			return i, nil
		}

		for _, s := range strategies {
			if !s(i, err) {
				return i, err
			}
		}
	}
}
