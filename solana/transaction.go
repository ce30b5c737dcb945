package solana

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxTransactionSize is the maximum size, in bytes, of a transaction the
// cluster will accept over the wire.
const MaxTransactionSize = 1232

// Transaction is a compiled Message plus one signature per signing key in
// its account table, in account-table order.
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles instructions against payer and blockhash, checks
// that signers exactly matches the account table's signer set, and signs
// the result. It implements the to_bytes precheck/compile/sign pipeline up
// to (but not including) wire encoding — call Marshal for that.
func NewTransaction(payer Key, blockhash Blockhash, instructions []Instruction, signers ...Keypair) (Transaction, error) {
	msg, err := Compile(payer, blockhash, instructions)
	if err != nil {
		return Transaction{}, err
	}

	if err := checkSigners(msg, signers); err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Signatures: make([]Signature, msg.Header.NumSignatures),
		Message:    msg,
	}

	if err := tx.Sign(signers...); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// checkSigners verifies the set of keys flagged signer? in msg's account
// table exactly equals the set of signers' public keys.
func checkSigners(msg Message, signers []Keypair) error {
	want := make(map[string]bool, msg.Header.NumSignatures)
	for i := 0; i < int(msg.Header.NumSignatures); i++ {
		want[string(msg.Accounts[i])] = true
	}

	have := make(map[string]bool, len(signers))
	for _, s := range signers {
		have[string(s.Public)] = true
	}

	if len(want) != len(have) {
		return ErrMismatchedSigners
	}
	for k := range want {
		if !have[k] {
			return ErrMismatchedSigners
		}
	}

	return nil
}

// Sign ed25519-signs the message bytes once per signer, placing each
// signature at that signer's index in the account table (the payer is
// always index 0).
func (t *Transaction) Sign(signers ...Keypair) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		index := indexOfKey(t.Message.Accounts, s.Public)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account table", s.Public)
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the signer range", s.Public)
		}

		copy(t.Signatures[index][:], ed25519.Sign(s.Private, messageBytes))
	}

	return nil
}

// Signature returns the payer's (first) signature, the transaction's
// canonical identifier once submitted.
func (t *Transaction) Signature() Signature {
	return t.Signatures[0]
}

// String returns a human-readable dump of the transaction, for debugging
// and CLI tooling.
func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sig := s
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, Key(sig[:])))
	}
	sb.WriteString("Message:\n")
	sb.WriteString(fmt.Sprintf("  Header: signers=%d readonly_signed=%d readonly=%d\n",
		t.Message.Header.NumSignatures, t.Message.Header.NumReadonlySigned, t.Message.Header.NumReadonly))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s\n", i, a))
	}
	sb.WriteString("  Instructions:\n")
	for i, ix := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d: program=%d accounts=%v data=%v\n", i, ix.ProgramIndex, ix.Accounts, ix.Data))
	}
	return sb.String()
}
