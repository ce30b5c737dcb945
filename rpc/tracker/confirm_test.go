package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/rpc"
	"github.com/solworks/solkit/solana"
)

type fakeSubmitter struct {
	nextSig byte
	fail    map[int]bool
	sent    int
}

func (f *fakeSubmitter) SendTransaction(tx solana.Transaction, commitment rpc.Commitment) (rpc.Signature, error) {
	idx := f.sent
	f.sent++
	if f.fail[idx] {
		return rpc.Signature{}, assertErr
	}
	f.nextSig++
	return sig(f.nextSig), nil
}

var assertErr = errSendFailed{}

type errSendFailed struct{}

func (errSendFailed) Error() string { return "preflight failure" }

func TestSendAndConfirm_DropsPreflightFailuresAndConfirmsRest(t *testing.T) {
	fetcher := &fakeFetcher{
		plan: [][]*rpc.SignatureStatus{
			{{ConfirmationStatus: rpc.CommitmentFinalized}},
		},
	}
	tr := New(fetcher, 10*time.Millisecond)

	submitter := &fakeSubmitter{fail: map[int]bool{1: true}}
	txs := []solana.Transaction{{}, {}}

	confirmed, err := SendAndConfirm(tr, submitter, txs, rpc.CommitmentFinalized, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []rpc.Signature{sig(1)}, confirmed)
}

func TestSendAndConfirm_TimesOutWithPartial(t *testing.T) {
	fetcher := &fakeFetcher{} // never confirms
	tr := New(fetcher, 10*time.Millisecond)

	submitter := &fakeSubmitter{}
	txs := []solana.Transaction{{}}

	_, err := SendAndConfirm(tr, submitter, txs, rpc.CommitmentFinalized, 50*time.Millisecond)
	require.Error(t, err)

	var timeoutErr ErrTimeout
	require.ErrorAs(t, err, &timeoutErr)
}
