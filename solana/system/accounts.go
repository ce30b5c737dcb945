package system

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
)

// NonceAccountSize is the serialized size of a durable nonce account.
const NonceAccountSize = 80

const (
	nonceVersion          = 1
	nonceStateUninitialized = 0
	nonceStateInitialized   = 1
)

// FeeCalculator is the fee schedule snapshotted into a nonce account when
// it's advanced.
type FeeCalculator struct {
	LamportsPerSignature uint64
}

// NonceAccount is the parsed form of a durable nonce account's data, laid
// out as version:u32, state:u32, authority:32, blockhash:32,
// fee_calculator.lamports_per_signature:u64 — 80 bytes total.
type NonceAccount struct {
	Authority     solana.Key
	Blockhash     solana.Blockhash
	FeeCalculator FeeCalculator
}

// Marshal encodes n into the 80-byte on-chain nonce account layout.
func (n NonceAccount) Marshal() []byte {
	e := binary.NewEncoder()
	_ = e.Uint(nonceVersion, 4)
	_ = e.Uint(nonceStateInitialized, 4)
	e.RawBytes(n.Authority)
	e.RawBytes(n.Blockhash[:])
	_ = e.Uint(n.FeeCalculator.LamportsPerSignature, 8)
	return e.Bytes()
}

// Unmarshal parses b, which must be exactly NonceAccountSize bytes, into n.
func (n *NonceAccount) Unmarshal(b []byte) error {
	if len(b) != NonceAccountSize {
		return errors.Errorf("invalid nonce account size: %d (expected %d)", len(b), NonceAccountSize)
	}

	d := binary.NewDecoder(b)

	version, err := d.Uint(4)
	if err != nil {
		return err
	}
	if version != nonceVersion {
		return errors.Errorf("unsupported nonce account version: %d", version)
	}
	if _, err := d.Uint(4); err != nil { // state, unused by callers
		return err
	}

	authority, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return err
	}
	blockhashBytes, err := d.RawBytes(solana.BlockhashSize)
	if err != nil {
		return err
	}
	lamportsPerSignature, err := d.Uint(8)
	if err != nil {
		return err
	}

	var blockhash solana.Blockhash
	copy(blockhash[:], blockhashBytes)

	n.Authority = authority
	n.Blockhash = blockhash
	n.FeeCalculator = FeeCalculator{LamportsPerSignature: lamportsPerSignature}
	return nil
}

// GetNonceValueFromAccount unmarshals a nonce account's raw data into a
// NonceAccount and returns its stored blockhash. This is what callers use as the transaction blockhash when
// building a transaction against a durable nonce.
func GetNonceValueFromAccount(data []byte) (solana.Blockhash, error) {
	var n NonceAccount
	if err := n.Unmarshal(data); err != nil {
		return solana.Blockhash{}, err
	}
	return n.Blockhash, nil
}
