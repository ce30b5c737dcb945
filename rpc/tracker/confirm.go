package tracker

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solworks/solkit/rpc"
	"github.com/solworks/solkit/solana"
)

// Submitter is the subset of rpc.Client SendAndConfirm needs to submit
// transactions.
type Submitter interface {
	SendTransaction(tx solana.Transaction, commitment rpc.Commitment) (rpc.Signature, error)
}

// ErrTimeout reports that SendAndConfirm's deadline elapsed before every
// submitted signature confirmed. Confirmed holds whatever did confirm, in
// confirmation order.
type ErrTimeout struct {
	Confirmed []rpc.Signature
}

func (e ErrTimeout) Error() string {
	return "timed out waiting for transaction confirmation"
}

// SendAndConfirm submits every transaction, logging and discarding any
// that fail pre-flight, subscribes the surviving signatures to t, and
// blocks until every one confirms to commitment or timeout elapses. On
// success it returns the signatures in confirmation order (not submission
// order). On timeout it returns ErrTimeout carrying whatever confirmed so
// far.
func SendAndConfirm(t *Tracker, submitter Submitter, transactions []solana.Transaction, commitment rpc.Commitment, timeout time.Duration) ([]rpc.Signature, error) {
	log := logrus.StandardLogger().WithField("type", "rpc/tracker")

	var submitted []rpc.Signature
	for i, tx := range transactions {
		sig, err := submitter.SendTransaction(tx, commitment)
		if err != nil {
			log.WithField("index", i).WithError(err).Error("transaction failed pre-flight, dropping from batch")
			continue
		}
		submitted = append(submitted, sig)
	}

	if len(submitted) == 0 {
		return nil, nil
	}

	events, cancel := t.Subscribe(submitted, commitment)
	defer cancel()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var confirmed []rpc.Signature
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return confirmed, nil
			}
			confirmed = append(confirmed, ev.Confirmed...)
			if len(confirmed) >= len(submitted) {
				return confirmed, nil
			}

		case <-deadline.C:
			return confirmed, ErrTimeout{Confirmed: confirmed}
		}
	}
}
