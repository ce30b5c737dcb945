package token

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
)

func errInvalidSize(what string, got, want int) error {
	return errors.Errorf("invalid %s size: %d (expected %d)", what, got, want)
}

// Serialized sizes of the three account views this package parses.
const (
	MintSize      = 82
	AccountSize   = 165
	MultisigSize  = 355
	maxMultisigN  = 11
	optionPrefix  = 4
)

// AccountState mirrors the on-chain token account state byte.
type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

func writeOptionalKey(e *binary.Encoder, present bool, key solana.Key) {
	if present {
		_ = e.Uint(1, optionPrefix)
		e.RawBytes(key)
	} else {
		_ = e.Uint(0, optionPrefix)
		e.RawBytes(make([]byte, solana.KeySize))
	}
}

func readOptionalKey(d *binary.Decoder) (bool, solana.Key, error) {
	present, err := d.Uint(optionPrefix)
	if err != nil {
		return false, nil, err
	}
	key, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return false, nil, err
	}
	return present == 1, key, nil
}

// Mint is the parsed view of a token mint account (82 bytes).
type Mint struct {
	MintAuthority   solana.Key
	Supply          uint64
	Decimals        byte
	Initialized     bool
	FreezeAuthority solana.Key
}

// Marshal encodes m into the 82-byte on-chain mint layout.
func (m Mint) Marshal() []byte {
	e := binary.NewEncoder()
	writeOptionalKey(e, m.MintAuthority != nil, m.MintAuthority)
	_ = e.Uint(m.Supply, 8)
	e.Byte(m.Decimals)
	e.Bool(m.Initialized)
	writeOptionalKey(e, m.FreezeAuthority != nil, m.FreezeAuthority)
	return e.Bytes()
}

// Unmarshal parses b, which must be exactly MintSize bytes, into m.
func (m *Mint) Unmarshal(b []byte) error {
	if len(b) != MintSize {
		return errInvalidSize("mint", len(b), MintSize)
	}
	d := binary.NewDecoder(b)

	hasAuthority, authority, err := readOptionalKey(d)
	if err != nil {
		return err
	}
	supply, err := d.Uint(8)
	if err != nil {
		return err
	}
	decimals, err := d.Byte()
	if err != nil {
		return err
	}
	initialized, err := d.Bool()
	if err != nil {
		return err
	}
	hasFreeze, freeze, err := readOptionalKey(d)
	if err != nil {
		return err
	}

	m.Supply = supply
	m.Decimals = decimals
	m.Initialized = initialized
	if hasAuthority {
		m.MintAuthority = authority
	}
	if hasFreeze {
		m.FreezeAuthority = freeze
	}
	return nil
}

// Account is the parsed view of a token account (165 bytes).
type Account struct {
	Mint                solana.Key
	Owner               solana.Key
	Amount              uint64
	Delegate            solana.Key
	State               AccountState
	IsNative            bool
	NativeReserve       uint64
	DelegatedAmount     uint64
	CloseAuthority      solana.Key
}

// Marshal encodes a into the 165-byte on-chain token account layout.
func (a Account) Marshal() []byte {
	e := binary.NewEncoder()
	e.RawBytes(a.Mint)
	e.RawBytes(a.Owner)
	_ = e.Uint(a.Amount, 8)
	writeOptionalKey(e, a.Delegate != nil, a.Delegate)
	e.Byte(byte(a.State))
	if a.IsNative {
		_ = e.Uint(1, optionPrefix)
	} else {
		_ = e.Uint(0, optionPrefix)
	}
	_ = e.Uint(a.NativeReserve, 8)
	_ = e.Uint(a.DelegatedAmount, 8)
	writeOptionalKey(e, a.CloseAuthority != nil, a.CloseAuthority)
	return e.Bytes()
}

// Unmarshal parses b, which must be exactly AccountSize bytes, into a.
func (a *Account) Unmarshal(b []byte) error {
	if len(b) != AccountSize {
		return errInvalidSize("token account", len(b), AccountSize)
	}
	d := binary.NewDecoder(b)

	mint, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return err
	}
	owner, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return err
	}
	amount, err := d.Uint(8)
	if err != nil {
		return err
	}
	hasDelegate, delegate, err := readOptionalKey(d)
	if err != nil {
		return err
	}
	state, err := d.Byte()
	if err != nil {
		return err
	}
	isNative, err := d.Uint(optionPrefix)
	if err != nil {
		return err
	}
	reserve, err := d.Uint(8)
	if err != nil {
		return err
	}
	delegatedAmount, err := d.Uint(8)
	if err != nil {
		return err
	}
	hasClose, closeAuthority, err := readOptionalKey(d)
	if err != nil {
		return err
	}

	a.Mint = mint
	a.Owner = owner
	a.Amount = amount
	a.State = AccountState(state)
	a.IsNative = isNative == 1
	a.NativeReserve = reserve
	a.DelegatedAmount = delegatedAmount
	if hasDelegate {
		a.Delegate = delegate
	}
	if hasClose {
		a.CloseAuthority = closeAuthority
	}
	return nil
}

// Multisig is the parsed view of a multisig account (355 bytes).
type Multisig struct {
	SignersRequired byte
	SignersTotal    byte
	Initialized     bool
	Signers         []solana.Key
}

// Marshal encodes m into the 355-byte on-chain multisig layout.
func (m Multisig) Marshal() []byte {
	e := binary.NewEncoder()
	e.Byte(m.SignersRequired)
	e.Byte(m.SignersTotal)
	e.Bool(m.Initialized)
	for i := 0; i < maxMultisigN; i++ {
		if i < len(m.Signers) {
			e.RawBytes(m.Signers[i])
		} else {
			e.RawBytes(make([]byte, solana.KeySize))
		}
	}
	return e.Bytes()
}

// Unmarshal parses b, which must be exactly MultisigSize bytes, into m.
func (m *Multisig) Unmarshal(b []byte) error {
	if len(b) != MultisigSize {
		return errInvalidSize("multisig", len(b), MultisigSize)
	}
	d := binary.NewDecoder(b)

	required, err := d.Byte()
	if err != nil {
		return err
	}
	total, err := d.Byte()
	if err != nil {
		return err
	}
	initialized, err := d.Bool()
	if err != nil {
		return err
	}

	signers := make([]solana.Key, 0, total)
	for i := 0; i < maxMultisigN; i++ {
		key, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return err
		}
		if i < int(total) {
			signers = append(signers, key)
		}
	}

	m.SignersRequired = required
	m.SignersTotal = total
	m.Initialized = initialized
	m.Signers = signers
	return nil
}
