// Package tracker implements signature confirmation tracking: given a set
// of submitted transaction signatures, poll the cluster until each one is
// confirmed to the caller's requested commitment, or fails outright.
package tracker

import (
	"sync"
	"time"

	"github.com/solworks/solkit/rpc"
)

// DefaultPollInterval is how often a subscription polls getSignatureStatuses
// when the caller doesn't override it.
const DefaultPollInterval = 500 * time.Millisecond

// StatusFetcher is the subset of rpc.Client the tracker depends on. It's
// a narrow interface so tests can fake the cluster's responses.
type StatusFetcher interface {
	GetSignatureStatuses(signatures []rpc.Signature) ([]*rpc.SignatureStatus, error)
}

// Event is delivered to a subscriber's channel each time a batch of its
// signatures resolves: confirmed, in the order the RPC returned them.
type Event struct {
	Confirmed []rpc.Signature
}

// state is a subscription's lifecycle: Polling while signatures remain
// outstanding, Done once every signature has confirmed or failed.
type state int

const (
	statePolling state = iota
	stateDone
)

// subscription is the tracker's isolated actor: one goroutine owns
// remaining and its poll timer for the lifetime of the subscription,
// started by Subscribe and torn down when it reaches stateDone or when
// the cancel func closes stop.
type subscription struct {
	fetcher      StatusFetcher
	commitment   rpc.Commitment
	interval     time.Duration
	remaining    []rpc.Signature
	events       chan Event
	stop         chan struct{}
	stoppedOnce  sync.Once
}

// Tracker starts subscriptions. It holds only the fetcher and the poll
// interval and keeps no record of the subscriptions it started; each
// subscription runs its own polling loop.
type Tracker struct {
	fetcher  StatusFetcher
	interval time.Duration
}

// New returns a Tracker that polls fetcher at interval. interval of zero
// uses DefaultPollInterval.
func New(fetcher StatusFetcher, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{fetcher: fetcher, interval: interval}
}

// Subscribe starts tracking signatures against commitment. The returned
// channel receives an Event for every tick that confirms at least one
// signature; failed signatures are dropped without an Event. The channel
// is closed once every signature has left the Polling state. Call the returned cancel
// func to stop polling early; outstanding polls drain quietly.
func (t *Tracker) Subscribe(signatures []rpc.Signature, commitment rpc.Commitment) (<-chan Event, func()) {
	sub := &subscription{
		fetcher:    t.fetcher,
		commitment: commitment,
		interval:   t.interval,
		remaining:  append([]rpc.Signature(nil), signatures...),
		events:     make(chan Event, 1),
		stop:       make(chan struct{}),
	}

	go sub.run()

	cancel := func() {
		sub.stoppedOnce.Do(func() { close(sub.stop) })
	}
	return sub.events, cancel
}

func (s *subscription) run() {
	defer close(s.events)

	st := statePolling
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for st == statePolling {
		select {
		case <-s.stop:
			return
		case <-timer.C:
		}

		next, done, failed, err := s.poll()
		if err != nil {
			// transport errors are retried by the RPC client itself; a
			// poll tick that still fails just gets tried again next tick.
			timer.Reset(s.interval)
			continue
		}

		_ = failed
		s.remaining = next

		if len(done) > 0 {
			select {
			case s.events <- Event{Confirmed: done}:
			case <-s.stop:
				return
			}
		}

		if len(s.remaining) == 0 {
			st = stateDone
			return
		}

		timer.Reset(s.interval)
	}
}

// poll invokes getSignatureStatuses on the remaining signatures and
// partitions the result into still-outstanding, newly done, and newly
// failed (silently dropped), preserving RPC response order for done.
func (s *subscription) poll() (remaining, done, failed []rpc.Signature, err error) {
	statuses, err := s.fetcher.GetSignatureStatuses(s.remaining)
	if err != nil {
		return s.remaining, nil, nil, err
	}

	for i, sig := range s.remaining {
		if i >= len(statuses) {
			remaining = append(remaining, sig)
			continue
		}

		st := statuses[i]
		switch {
		case st == nil:
			remaining = append(remaining, sig)
		case st.Err != nil:
			failed = append(failed, sig)
		case st.ConfirmationStatus.Meets(s.commitment):
			done = append(done, sig)
		default:
			remaining = append(remaining, sig)
		}
	}

	return remaining, done, failed, nil
}
