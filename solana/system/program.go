// Package system implements the System Program's instruction set,
// including the durable-nonce subset that solana/nonce re-exports under
// friendlier names. Every builder follows the same shape: a plain
// constructor returning a solana.Instruction, and a Decompile counterpart
// that recovers the typed fields from a compiled solana.Message.
package system

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
	"github.com/solworks/solkit/solana/optvalidate"
)

// maxSeedLength mirrors solana.maxSeedLength, which is unexported and thus
// unreachable from this package.
const maxSeedLength = 32

var createAccountWithSeedSchema = optvalidate.Schema{
	Name: "system.CreateAccountWithSeed",
	Fields: []optvalidate.Field{
		{Name: "base", Kind: optvalidate.KindKey, Required: true},
		{Name: "program_id", Kind: optvalidate.KindKey, Required: true},
		{Name: "seed", Kind: optvalidate.KindCustom, Required: true, Predicate: validateSeed},
	},
}

func validateSeed(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.New("expected a string")
	}
	if len(s) == 0 || len(s) > maxSeedLength {
		return nil, errors.Errorf("seed must be 1..%d bytes, got %d", maxSeedLength, len(s))
	}
	return s, nil
}

// ProgramID is the address of the System program.
var ProgramID = mustDecode("11111111111111111111111111111111")

// Command is the 4-byte little-endian discriminant at the start of every
// System program instruction's data blob.
type Command uint32

const (
	CommandCreateAccount Command = iota
	CommandAssign
	CommandTransfer
	CommandCreateAccountWithSeed
	CommandAdvanceNonce
	CommandWithdrawNonce
	CommandInitializeNonce
	CommandAuthorizeNonce
	CommandAllocate
	CommandAllocateWithSeed
	CommandAssignWithSeed
	CommandTransferWithSeed
)

func mustDecode(s string) solana.Key {
	k, err := solana.DecodeKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// commandPrefix returns the 4-byte little-endian encoding of cmd, the
// prefix shared by every instruction this package builds.
func commandPrefix(cmd Command) []byte {
	e := binary.NewEncoder()
	_ = e.Uint(uint64(cmd), 4)
	return e.Bytes()
}

func getCommand(m solana.Message, index int) (Command, solana.CompiledInstruction, error) {
	if index < 0 || index >= len(m.Instructions) {
		return 0, solana.CompiledInstruction{}, errors.Errorf("instruction doesn't exist at index %d", index)
	}
	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !m.Accounts[i.ProgramIndex].Equal(ProgramID) {
		return 0, i, errors.New("instruction does not belong to the system program")
	}
	if len(i.Data) < 4 {
		return 0, i, errors.New("system instruction data too short for a discriminant")
	}
	d := binary.NewDecoder(i.Data[:4])
	v, err := d.Uint(4)
	if err != nil {
		return 0, i, err
	}
	return Command(v), i, nil
}

func accountAt(m solana.Message, i solana.CompiledInstruction, slot int) (solana.Key, error) {
	if slot >= len(i.Accounts) {
		return nil, errors.Errorf("instruction has no account at slot %d", slot)
	}
	idx := i.Accounts[slot]
	if int(idx) >= len(m.Accounts) {
		return nil, errors.Errorf("account index %d out of range", idx)
	}
	return m.Accounts[idx], nil
}

// SeedParams groups the optional {base, seed, program_id} trio.
// CreateAccount, Transfer, Assign, and Allocate take the same three values
// as separate pointer arguments, which must be supplied together or not
// at all; supplying some but not all returns solana.ErrMissingSeedParams.
type SeedParams struct {
	Base      solana.Key
	Seed      string
	ProgramID solana.Key
}

func seedPresence(base *solana.Key, seed *string, programID *solana.Key) (int, error) {
	n := 0
	if base != nil {
		n++
	}
	if seed != nil {
		n++
	}
	if programID != nil {
		n++
	}
	if n != 0 && n != 3 {
		return n, solana.ErrMissingSeedParams
	}
	return n, nil
}

// CreateAccount builds instruction #0, or instruction #3
// (CreateAccountWithSeed) when base, seed, and programID are all supplied.
func CreateAccount(from, newAccount solana.Key, owner solana.Key, lamports, space uint64, base *solana.Key, seed *string, programID *solana.Key) (solana.Instruction, error) {
	n, err := seedPresence(base, seed, programID)
	if err != nil {
		return solana.Instruction{}, err
	}
	if n == 0 {
		return createAccountPlain(from, newAccount, owner, lamports, space), nil
	}
	if _, err := createAccountWithSeedSchema.Validate(map[string]interface{}{
		"base":       []byte(*base),
		"program_id": []byte(*programID),
		"seed":       *seed,
	}); err != nil {
		return solana.Instruction{}, err
	}
	// programID is the program id that solana.WithSeed combines with *base
	// and *seed to derive newAccount's address; it isn't part of the
	// instruction's data tail, which only carries the account's new owner.
	_ = programID
	return createAccountWithSeed(from, newAccount, *base, *seed, owner, lamports, space), nil
}

func createAccountPlain(from, newAccount, owner solana.Key, lamports, space uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable, signer]` Funding account.
	//   1. `[writable, signer]` New account.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandCreateAccount))
	_ = e.Uint(lamports, 8)
	_ = e.Uint(space, 8)
	e.RawBytes(owner)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(newAccount, true),
	)
}

func createAccountWithSeed(from, newAccount, base solana.Key, seed string, owner solana.Key, lamports, space uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable, signer]` Funding account.
	//   1. `[writable]` Created account.
	//   2. `[signer]` Base account, only present if base != from.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandCreateAccountWithSeed))
	e.RawBytes(base)
	e.Str(seed)
	_ = e.Uint(lamports, 8)
	_ = e.Uint(space, 8)
	e.RawBytes(owner)

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(newAccount, false),
	}
	if !base.Equal(from) {
		accounts = append(accounts, solana.NewReadonlyAccountMeta(base, true))
	}

	return solana.NewInstruction(ProgramID, e.Bytes(), accounts...)
}

type DecompiledCreateAccount struct {
	From       solana.Key
	New        solana.Key
	Owner      solana.Key
	Lamports   uint64
	Space      uint64
	Base       solana.Key
	Seed       string
	SeededFrom bool
}

func DecompileCreateAccount(m solana.Message, index int) (*DecompiledCreateAccount, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandCreateAccount:
		d := binary.NewDecoder(i.Data[4:])
		lamports, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		space, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		if len(i.Accounts) != 2 {
			return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
		}
		from, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		newAccount, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		return &DecompiledCreateAccount{From: from, New: newAccount, Owner: owner, Lamports: lamports, Space: space}, nil

	case CommandCreateAccountWithSeed:
		d := binary.NewDecoder(i.Data[4:])
		base, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		seed, err := d.Str()
		if err != nil {
			return nil, err
		}
		lamports, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		space, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		if len(i.Accounts) < 2 {
			return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
		}
		from, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		newAccount, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		result := &DecompiledCreateAccount{From: from, New: newAccount, Owner: owner, Lamports: lamports, Space: space, Base: base, Seed: seed, SeededFrom: true}
		if len(i.Accounts) >= 3 {
			result.Base, err = accountAt(m, i, 2)
			if err != nil {
				return nil, err
			}
		}
		return result, nil

	default:
		return nil, errors.New("instruction is not a create-account variant")
	}
}

// Assign builds instruction #1, or instruction #10 (AssignWithSeed) when
// base, seed, and programID are all supplied.
func Assign(account, owner solana.Key, base *solana.Key, seed *string, programID *solana.Key) (solana.Instruction, error) {
	n, err := seedPresence(base, seed, programID)
	if err != nil {
		return solana.Instruction{}, err
	}
	if n == 0 {
		e := binary.NewEncoder()
		e.RawBytes(commandPrefix(CommandAssign))
		e.RawBytes(owner)
		return solana.NewInstruction(ProgramID, e.Bytes(), solana.NewAccountMeta(account, true)), nil
	}
	return assignWithSeed(account, *base, *seed, owner), nil
}

func assignWithSeed(account, base solana.Key, seed string, owner solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Assigned account.
	//   1. `[signer]` Base account.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandAssignWithSeed))
	e.RawBytes(base)
	e.Str(seed)
	e.RawBytes(owner)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(base, true),
	)
}

type DecompiledAssign struct {
	Account solana.Key
	Owner   solana.Key
	Base    solana.Key
	Seed    string
}

func DecompileAssign(m solana.Message, index int) (*DecompiledAssign, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandAssign:
		d := binary.NewDecoder(i.Data[4:])
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		account, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		return &DecompiledAssign{Account: account, Owner: owner}, nil

	case CommandAssignWithSeed:
		d := binary.NewDecoder(i.Data[4:])
		base, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		seed, err := d.Str()
		if err != nil {
			return nil, err
		}
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		account, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		return &DecompiledAssign{Account: account, Owner: owner, Base: base, Seed: seed}, nil

	default:
		return nil, errors.New("instruction is not an assign variant")
	}
}

// Transfer builds instruction #2, or instruction #11 (TransferWithSeed)
// when base, seed, and programID are all supplied.
func Transfer(from, to solana.Key, lamports uint64, base *solana.Key, seed *string, programID *solana.Key) (solana.Instruction, error) {
	n, err := seedPresence(base, seed, programID)
	if err != nil {
		return solana.Instruction{}, err
	}
	if n == 0 {
		e := binary.NewEncoder()
		e.RawBytes(commandPrefix(CommandTransfer))
		_ = e.Uint(lamports, 8)
		return solana.NewInstruction(
			ProgramID,
			e.Bytes(),
			solana.NewAccountMeta(from, true),
			solana.NewAccountMeta(to, false),
		), nil
	}
	return transferWithSeed(from, *base, *seed, *programID, to, lamports), nil
}

func transferWithSeed(from, base solana.Key, seed string, owner, to solana.Key, lamports uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Funding account (a seeded address, not a signer).
	//   1. `[signer]` Base account that derived the funding address.
	//   2. `[writable]` Recipient account.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandTransferWithSeed))
	_ = e.Uint(lamports, 8)
	e.Str(seed)
	e.RawBytes(owner)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(from, false),
		solana.NewReadonlyAccountMeta(base, true),
		solana.NewAccountMeta(to, false),
	)
}

type DecompiledTransfer struct {
	From     solana.Key
	To       solana.Key
	Lamports uint64
	Base     solana.Key
	Seed     string
	Owner    solana.Key
}

func DecompileTransfer(m solana.Message, index int) (*DecompiledTransfer, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandTransfer:
		d := binary.NewDecoder(i.Data[4:])
		lamports, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		from, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		to, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		return &DecompiledTransfer{From: from, To: to, Lamports: lamports}, nil

	case CommandTransferWithSeed:
		d := binary.NewDecoder(i.Data[4:])
		lamports, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		seed, err := d.Str()
		if err != nil {
			return nil, err
		}
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		from, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		base, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		to, err := accountAt(m, i, 2)
		if err != nil {
			return nil, err
		}
		return &DecompiledTransfer{From: from, To: to, Lamports: lamports, Base: base, Seed: seed, Owner: owner}, nil

	default:
		return nil, errors.New("instruction is not a transfer variant")
	}
}

// Allocate builds instruction #8, or instruction #9 (AllocateWithSeed)
// when base, seed, and programID are all supplied.
func Allocate(account solana.Key, space uint64, owner *solana.Key, base *solana.Key, seed *string, programID *solana.Key) (solana.Instruction, error) {
	n, err := seedPresence(base, seed, programID)
	if err != nil {
		return solana.Instruction{}, err
	}
	if n == 0 {
		e := binary.NewEncoder()
		e.RawBytes(commandPrefix(CommandAllocate))
		_ = e.Uint(space, 8)
		return solana.NewInstruction(ProgramID, e.Bytes(), solana.NewAccountMeta(account, true)), nil
	}
	if owner == nil {
		return solana.Instruction{}, errors.New("allocate-with-seed requires an owner")
	}
	return allocateWithSeed(account, *base, *seed, *owner, space), nil
}

func allocateWithSeed(account, base solana.Key, seed string, owner solana.Key, space uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Allocated account.
	//   1. `[signer]` Base account.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandAllocateWithSeed))
	e.RawBytes(base)
	e.Str(seed)
	_ = e.Uint(space, 8)
	e.RawBytes(owner)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(base, true),
	)
}

type DecompiledAllocate struct {
	Account solana.Key
	Space   uint64
	Base    solana.Key
	Seed    string
	Owner   solana.Key
}

func DecompileAllocate(m solana.Message, index int) (*DecompiledAllocate, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandAllocate:
		d := binary.NewDecoder(i.Data[4:])
		space, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		account, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		return &DecompiledAllocate{Account: account, Space: space}, nil

	case CommandAllocateWithSeed:
		d := binary.NewDecoder(i.Data[4:])
		base, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		seed, err := d.Str()
		if err != nil {
			return nil, err
		}
		space, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		owner, err := d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
		account, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		return &DecompiledAllocate{Account: account, Space: space, Base: base, Seed: seed, Owner: owner}, nil

	default:
		return nil, errors.New("instruction is not an allocate variant")
	}
}

// AdvanceNonce builds instruction #4.
func AdvanceNonce(nonce, authority solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Nonce account.
	//   1. `[]` RecentBlockhashes sysvar.
	//   2. `[signer]` Nonce authority.
	return solana.NewInstruction(
		ProgramID,
		commandPrefix(CommandAdvanceNonce),
		solana.NewAccountMeta(nonce, false),
		solana.NewReadonlyAccountMeta(RecentBlockhashesSysVar, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

type DecompiledAdvanceNonce struct {
	Nonce     solana.Key
	Authority solana.Key
}

func DecompileAdvanceNonce(m solana.Message, index int) (*DecompiledAdvanceNonce, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandAdvanceNonce {
		return nil, errors.New("instruction is not AdvanceNonce")
	}
	if len(i.Accounts) != 3 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	nonce, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	authority, err := accountAt(m, i, 2)
	if err != nil {
		return nil, err
	}
	return &DecompiledAdvanceNonce{Nonce: nonce, Authority: authority}, nil
}

// WithdrawNonce builds instruction #5.
func WithdrawNonce(nonce, to, authority solana.Key, lamports uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Nonce account.
	//   1. `[writable]` Recipient account.
	//   2. `[]` RecentBlockhashes sysvar.
	//   3. `[]` Rent sysvar.
	//   4. `[signer]` Nonce authority.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandWithdrawNonce))
	_ = e.Uint(lamports, 8)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(nonce, false),
		solana.NewAccountMeta(to, false),
		solana.NewReadonlyAccountMeta(RecentBlockhashesSysVar, false),
		solana.NewReadonlyAccountMeta(RentSysVar, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

type DecompiledWithdrawNonce struct {
	Nonce     solana.Key
	To        solana.Key
	Authority solana.Key
	Lamports  uint64
}

func DecompileWithdrawNonce(m solana.Message, index int) (*DecompiledWithdrawNonce, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandWithdrawNonce {
		return nil, errors.New("instruction is not WithdrawNonce")
	}
	if len(i.Accounts) != 5 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	d := binary.NewDecoder(i.Data[4:])
	lamports, err := d.Uint(8)
	if err != nil {
		return nil, err
	}
	nonce, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	to, err := accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	authority, err := accountAt(m, i, 4)
	if err != nil {
		return nil, err
	}
	return &DecompiledWithdrawNonce{Nonce: nonce, To: to, Authority: authority, Lamports: lamports}, nil
}

// InitializeNonce builds instruction #6.
func InitializeNonce(nonce, authority solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Nonce account.
	//   1. `[]` RecentBlockhashes sysvar.
	//   2. `[]` Rent sysvar.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandInitializeNonce))
	e.RawBytes(authority)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(nonce, false),
		solana.NewReadonlyAccountMeta(RecentBlockhashesSysVar, false),
		solana.NewReadonlyAccountMeta(RentSysVar, false),
	)
}

type DecompiledInitializeNonce struct {
	Nonce     solana.Key
	Authority solana.Key
}

func DecompileInitializeNonce(m solana.Message, index int) (*DecompiledInitializeNonce, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandInitializeNonce {
		return nil, errors.New("instruction is not InitializeNonce")
	}
	if len(i.Accounts) != 3 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	d := binary.NewDecoder(i.Data[4:])
	authority, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return nil, err
	}
	nonce, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	return &DecompiledInitializeNonce{Nonce: nonce, Authority: authority}, nil
}

// AuthorizeNonce builds instruction #7.
func AuthorizeNonce(nonce, authority, newAuthority solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` Nonce account.
	//   1. `[signer]` Current nonce authority.
	e := binary.NewEncoder()
	e.RawBytes(commandPrefix(CommandAuthorizeNonce))
	e.RawBytes(newAuthority)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(nonce, false),
		solana.NewReadonlyAccountMeta(authority, true),
	)
}

type DecompiledAuthorizeNonce struct {
	Nonce        solana.Key
	Authority    solana.Key
	NewAuthority solana.Key
}

func DecompileAuthorizeNonce(m solana.Message, index int) (*DecompiledAuthorizeNonce, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandAuthorizeNonce {
		return nil, errors.New("instruction is not AuthorizeNonce")
	}
	if len(i.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	d := binary.NewDecoder(i.Data[4:])
	newAuthority, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return nil, err
	}
	nonce, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	authority, err := accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	return &DecompiledAuthorizeNonce{Nonce: nonce, Authority: authority, NewAuthority: newAuthority}, nil
}
