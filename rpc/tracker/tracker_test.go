package tracker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/rpc"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	plan  [][]*rpc.SignatureStatus
}

func (f *fakeFetcher) GetSignatureStatuses(signatures []rpc.Signature) ([]*rpc.SignatureStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls >= len(f.plan) {
		return make([]*rpc.SignatureStatus, len(signatures)), nil
	}
	out := f.plan[f.calls]
	f.calls++
	return out, nil
}

func sig(b byte) rpc.Signature {
	var s rpc.Signature
	s[0] = b
	return s
}

func TestSubscribe_ConfirmsOnFirstTick(t *testing.T) {
	fetcher := &fakeFetcher{
		plan: [][]*rpc.SignatureStatus{
			{{ConfirmationStatus: rpc.CommitmentFinalized}},
		},
	}

	tr := New(fetcher, 10*time.Millisecond)
	events, cancel := tr.Subscribe([]rpc.Signature{sig(1)}, rpc.CommitmentConfirmed)
	defer cancel()

	select {
	case ev, ok := <-events:
		require.True(t, ok)
		assert.Equal(t, []rpc.Signature{sig(1)}, ev.Confirmed)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for confirmation event")
	}
}

func TestSubscribe_WeakerStatusRetriesThenConfirms(t *testing.T) {
	fetcher := &fakeFetcher{
		plan: [][]*rpc.SignatureStatus{
			{{ConfirmationStatus: rpc.CommitmentProcessed}},
			{{ConfirmationStatus: rpc.CommitmentFinalized}},
		},
	}

	tr := New(fetcher, 10*time.Millisecond)
	events, cancel := tr.Subscribe([]rpc.Signature{sig(2)}, rpc.CommitmentFinalized)
	defer cancel()

	select {
	case ev, ok := <-events:
		require.True(t, ok)
		assert.Equal(t, []rpc.Signature{sig(2)}, ev.Confirmed)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for eventual confirmation")
	}
}

func TestSubscribe_FailedSignatureDroppedSilently(t *testing.T) {
	fetcher := &fakeFetcher{
		plan: [][]*rpc.SignatureStatus{
			{{Err: "InstructionError"}},
		},
	}

	tr := New(fetcher, 10*time.Millisecond)
	events, cancel := tr.Subscribe([]rpc.Signature{sig(3)}, rpc.CommitmentConfirmed)
	defer cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should close without ever emitting an event")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestCommitmentMeets(t *testing.T) {
	assert.True(t, rpc.CommitmentFinalized.Meets(rpc.CommitmentProcessed))
	assert.True(t, rpc.CommitmentFinalized.Meets(rpc.CommitmentFinalized))
	assert.False(t, rpc.CommitmentProcessed.Meets(rpc.CommitmentFinalized))
	assert.True(t, rpc.CommitmentConfirmed.Meets(rpc.CommitmentConfirmed))
}
