package solana

import (
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

// ParsedTransaction is the result of inverting a compiled Transaction: the
// wire-level Transaction itself plus the recovered pre-encoding shape
// (payer, blockhash, untyped instructions). Signer keypairs are never
// recoverable from wire bytes, only their signatures.
type ParsedTransaction struct {
	Transaction
	Payer        Key
	Blockhash    Blockhash
	Instructions []Instruction
}

// Parse inverts Marshal, yielding the wire Transaction plus its recovered
// pre-encoding fields. Any truncation, inconsistent header, or mismatched
// instruction account count produces a single ErrParse; no partial
// ParsedTransaction is observable. An instruction without data has an
// empty, non-nil Data slice.
func Parse(b []byte) (ParsedTransaction, error) {
	var tx Transaction
	if err := tx.Unmarshal(b); err != nil {
		return ParsedTransaction{}, err
	}
	if len(tx.Message.Accounts) == 0 {
		return ParsedTransaction{}, ErrParse
	}
	h := tx.Message.Header
	n := len(tx.Message.Accounts)
	if int(h.NumSignatures) > n || h.NumReadonlySigned > h.NumSignatures ||
		int(h.NumReadonly) > n-int(h.NumSignatures) || len(tx.Signatures) != int(h.NumSignatures) {
		return ParsedTransaction{}, ErrParse
	}

	instructions, err := tx.Message.Decompile()
	if err != nil {
		return ParsedTransaction{}, err
	}

	return ParsedTransaction{
		Transaction:  tx,
		Payer:        tx.Message.Accounts[0],
		Blockhash:    tx.Message.RecentBlockhash,
		Instructions: instructions,
	}, nil
}

// DecodeSignature base58-decodes s and requires exactly SignatureSize
// bytes.
func DecodeSignature(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Signature{}, errors.Wrap(ErrParse, err.Error())
	}
	return CheckSignature(b)
}

// CheckSignature requires b be exactly SignatureSize bytes and returns it
// as a Signature.
func CheckSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, errors.New("invalid signature length")
	}
	var sig Signature
	copy(sig[:], b)
	return sig, nil
}
