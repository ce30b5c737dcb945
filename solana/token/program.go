// Package token implements the SPL Token program's instruction set:
// mint and account lifecycle, transfers (plain and "checked"), delegation,
// multisig-aware authority accounts, and freeze/thaw. Every builder is a
// constructor returning a solana.Instruction (or a short slice of them for
// multi-step setup) plus a Decompile counterpart.
package token

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
	"github.com/solworks/solkit/solana/optvalidate"
	"github.com/solworks/solkit/solana/system"
)

// ProgramID is the address of the SPL Token program.
var ProgramID = mustDecode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

func mustDecode(s string) solana.Key {
	k, err := solana.DecodeKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Command is the single-byte discriminant at the start of every SPL Token
// instruction's data blob.
type Command byte

const (
	CommandInitializeMint Command = iota
	CommandInitializeAccount
	CommandInitializeMultisig
	CommandTransfer
	CommandApprove
	CommandRevoke
	CommandSetAuthority
	CommandMintTo
	CommandBurn
	CommandCloseAccount
	CommandFreezeAccount
	CommandThawAccount
	CommandTransferChecked
	CommandApproveChecked
	CommandMintToChecked
	CommandBurnChecked
)

// AuthorityType selects which authority SetAuthority is changing.
type AuthorityType byte

const (
	AuthorityTypeMintTokens AuthorityType = iota
	AuthorityTypeFreezeAccount
	AuthorityTypeAccountHolder
	AuthorityTypeCloseAccount
)

// CheckedParams upgrades Transfer, Approve, MintTo, or Burn to their
// "checked" variant, which pins down the mint's decimals on-chain as an
// extra safety check. Supplying one with an invalid Mint fails with
// solana.ErrInvalidCheckedParams.
type CheckedParams struct {
	Decimals byte
	Mint     solana.Key
}

var checkedParamsSchema = optvalidate.Schema{
	Name: "token.CheckedParams",
	Fields: []optvalidate.Field{
		{Name: "mint", Kind: optvalidate.KindKey, Required: true},
		{Name: "decimals", Kind: optvalidate.KindBoundedInt, Min: 0, Max: 255},
	},
}

// validateCheckedParams wraps checkedParamsSchema's verdict in
// solana.ErrInvalidCheckedParams so callers can keep testing with
// errors.Is against that sentinel regardless of which field failed.
func validateCheckedParams(checked *CheckedParams) error {
	if _, err := checkedParamsSchema.Validate(map[string]interface{}{
		"mint":     []byte(checked.Mint),
		"decimals": int64(checked.Decimals),
	}); err != nil {
		return errors.Wrap(solana.ErrInvalidCheckedParams, err.Error())
	}
	return nil
}

// authorityAccounts returns the account references for an authority or
// owner. With no multiSigners, authority signs directly. With
// multiSigners, authority appears as a non-signing account followed by
// each multisig signer as a signing account, matching the on-chain
// multisig evaluation rule.
func authorityAccounts(authority solana.Key, multiSigners []solana.Key) []solana.AccountMeta {
	if len(multiSigners) == 0 {
		return []solana.AccountMeta{solana.NewReadonlyAccountMeta(authority, true)}
	}

	accounts := make([]solana.AccountMeta, 0, 1+len(multiSigners))
	accounts = append(accounts, solana.NewReadonlyAccountMeta(authority, false))
	for _, s := range multiSigners {
		accounts = append(accounts, solana.NewReadonlyAccountMeta(s, true))
	}
	return accounts
}

func getCommand(m solana.Message, index int) (Command, solana.CompiledInstruction, error) {
	if index < 0 || index >= len(m.Instructions) {
		return 0, solana.CompiledInstruction{}, errors.Errorf("instruction doesn't exist at index %d", index)
	}
	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !m.Accounts[i.ProgramIndex].Equal(ProgramID) {
		return 0, i, errors.New("instruction does not belong to the token program")
	}
	if len(i.Data) == 0 {
		return 0, i, errors.New("token instruction missing data")
	}
	return Command(i.Data[0]), i, nil
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

// InitializeMint builds instruction #0.
func InitializeMint(mint solana.Key, decimals byte, mintAuthority solana.Key, freezeAuthority *solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` The mint to initialize.
	//   1. `[]` Rent sysvar.
	e := binary.NewEncoder()
	e.Byte(byte(CommandInitializeMint))
	e.Byte(decimals)
	e.RawBytes(mintAuthority)
	if freezeAuthority != nil {
		e.Byte(1)
		e.RawBytes(*freezeAuthority)
	} else {
		e.Byte(0)
	}

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

type DecompiledInitializeMint struct {
	Mint            solana.Key
	Decimals        byte
	MintAuthority   solana.Key
	FreezeAuthority solana.Key
}

func DecompileInitializeMint(m solana.Message, index int) (*DecompiledInitializeMint, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandInitializeMint {
		return nil, errors.New("instruction is not InitializeMint")
	}
	d := binary.NewDecoder(i.Data[1:])
	decimals, err := d.Byte()
	if err != nil {
		return nil, err
	}
	mintAuthority, err := d.RawBytes(solana.KeySize)
	if err != nil {
		return nil, err
	}
	hasFreeze, err := d.Byte()
	if err != nil {
		return nil, err
	}
	result := &DecompiledInitializeMint{Decimals: decimals, MintAuthority: mintAuthority}
	if hasFreeze == 1 {
		result.FreezeAuthority, err = d.RawBytes(solana.KeySize)
		if err != nil {
			return nil, err
		}
	}
	result.Mint, err = accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InitializeAccount builds instruction #1.
func InitializeAccount(account, mint, owner solana.Key) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[writable]` The account to initialize.
	//   1. `[]` The mint this account will be associated with.
	//   2. `[]` The new account's owner.
	//   3. `[]` Rent sysvar.
	return solana.NewInstruction(
		ProgramID,
		[]byte{byte(CommandInitializeAccount)},
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(owner, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

type DecompiledInitializeAccount struct {
	Account solana.Key
	Mint    solana.Key
	Owner   solana.Key
}

func DecompileInitializeAccount(m solana.Message, index int) (*DecompiledInitializeAccount, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandInitializeAccount {
		return nil, errors.New("instruction is not InitializeAccount")
	}
	if len(i.Accounts) != 4 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	account, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	mint, err := accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	owner, err := accountAt(m, i, 2)
	if err != nil {
		return nil, err
	}
	return &DecompiledInitializeAccount{Account: account, Mint: mint, Owner: owner}, nil
}

var initializeMultisigSchema = optvalidate.Schema{
	Name: "token.InitializeMultisig",
	Fields: []optvalidate.Field{
		{Name: "required_signers", Kind: optvalidate.KindBoundedInt, Min: 1, Max: maxMultisigN},
		{Name: "signers", Kind: optvalidate.KindListOfKey, Required: true},
	},
}

// InitializeMultisig builds instruction #2. requiredSigners and the number
// of signers must each be in 1..=11, and requiredSigners can't exceed the
// number of signers supplied.
func InitializeMultisig(account solana.Key, requiredSigners byte, signers ...solana.Key) (solana.Instruction, error) {
	signerBytes := make([][]byte, len(signers))
	for i, s := range signers {
		signerBytes[i] = []byte(s)
	}
	if _, err := initializeMultisigSchema.Validate(map[string]interface{}{
		"required_signers": int64(requiredSigners),
		"signers":          signerBytes,
	}); err != nil {
		return solana.Instruction{}, err
	}
	if len(signers) > maxMultisigN {
		return solana.Instruction{}, errors.Errorf("too many signers: %d (max %d)", len(signers), maxMultisigN)
	}
	if int(requiredSigners) > len(signers) {
		return solana.Instruction{}, errors.Errorf("required signers %d exceeds supplied signers %d", requiredSigners, len(signers))
	}

	// Accounts expected by this instruction:
	//   0. `[writable]` The multisignature account to initialize.
	//   1. `[]` Rent sysvar.
	//   2..2+N. `[]` N signer accounts, 1 <= N <= 11.
	accounts := make([]solana.AccountMeta, 2+len(signers))
	accounts[0] = solana.NewAccountMeta(account, false)
	accounts[1] = solana.NewReadonlyAccountMeta(system.RentSysVar, false)
	for i, s := range signers {
		accounts[2+i] = solana.NewReadonlyAccountMeta(s, false)
	}

	return solana.NewInstruction(
		ProgramID,
		[]byte{byte(CommandInitializeMultisig), requiredSigners},
		accounts...,
	), nil
}

// Transfer builds instruction #3, or #12 (TransferChecked) when checked
// is non-nil.
func Transfer(source, dest, authority solana.Key, amount uint64, checked *CheckedParams, multiSigners []solana.Key) (solana.Instruction, error) {
	// Accounts expected by this instruction:
	//   0. `[writable]` The source account.
	//   1. (checked only) `[]` The token mint.
	//   2. `[writable]` The destination account.
	//   3.. authority or multisig authority accounts.
	if checked != nil {
		if err := validateCheckedParams(checked); err != nil {
			return solana.Instruction{}, err
		}
		e := binary.NewEncoder()
		e.Byte(byte(CommandTransferChecked))
		_ = e.Uint(amount, 8)
		e.Byte(checked.Decimals)

		accounts := []solana.AccountMeta{
			solana.NewAccountMeta(source, false),
			solana.NewReadonlyAccountMeta(checked.Mint, false),
			solana.NewAccountMeta(dest, false),
		}
		accounts = append(accounts, authorityAccounts(authority, multiSigners)...)
		return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
	}

	e := binary.NewEncoder()
	e.Byte(byte(CommandTransfer))
	_ = e.Uint(amount, 8)

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(source, false),
		solana.NewAccountMeta(dest, false),
	}
	accounts = append(accounts, authorityAccounts(authority, multiSigners)...)
	return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
}

type DecompiledTransfer struct {
	Source      solana.Key
	Mint        solana.Key
	Destination solana.Key
	Authority   solana.Key
	Amount      uint64
	Decimals    byte
	Checked     bool
}

func DecompileTransfer(m solana.Message, index int) (*DecompiledTransfer, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	switch cmd {
	case CommandTransfer:
		if len(i.Accounts) < 3 {
			return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
		}
		d := binary.NewDecoder(i.Data[1:])
		amount, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		source, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		dest, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		authority, err := accountAt(m, i, 2)
		if err != nil {
			return nil, err
		}
		return &DecompiledTransfer{Source: source, Destination: dest, Authority: authority, Amount: amount}, nil

	case CommandTransferChecked:
		if len(i.Accounts) < 4 {
			return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
		}
		d := binary.NewDecoder(i.Data[1:])
		amount, err := d.Uint(8)
		if err != nil {
			return nil, err
		}
		decimals, err := d.Byte()
		if err != nil {
			return nil, err
		}
		source, err := accountAt(m, i, 0)
		if err != nil {
			return nil, err
		}
		mint, err := accountAt(m, i, 1)
		if err != nil {
			return nil, err
		}
		dest, err := accountAt(m, i, 2)
		if err != nil {
			return nil, err
		}
		authority, err := accountAt(m, i, 3)
		if err != nil {
			return nil, err
		}
		return &DecompiledTransfer{Source: source, Mint: mint, Destination: dest, Authority: authority, Amount: amount, Decimals: decimals, Checked: true}, nil

	default:
		return nil, errors.New("instruction is not a transfer variant")
	}
}

// Approve builds instruction #4, or #13 (ApproveChecked) when checked is
// non-nil.
func Approve(source, delegate, owner solana.Key, amount uint64, checked *CheckedParams, multiSigners []solana.Key) (solana.Instruction, error) {
	if checked != nil {
		if err := validateCheckedParams(checked); err != nil {
			return solana.Instruction{}, err
		}
		e := binary.NewEncoder()
		e.Byte(byte(CommandApproveChecked))
		_ = e.Uint(amount, 8)
		e.Byte(checked.Decimals)

		accounts := []solana.AccountMeta{
			solana.NewAccountMeta(source, false),
			solana.NewReadonlyAccountMeta(checked.Mint, false),
			solana.NewReadonlyAccountMeta(delegate, false),
		}
		accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
		return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
	}

	e := binary.NewEncoder()
	e.Byte(byte(CommandApprove))
	_ = e.Uint(amount, 8)

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(source, false),
		solana.NewReadonlyAccountMeta(delegate, false),
	}
	accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
	return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
}

// Revoke builds instruction #5.
func Revoke(source, owner solana.Key, multiSigners []solana.Key) solana.Instruction {
	accounts := []solana.AccountMeta{solana.NewAccountMeta(source, false)}
	accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
	return solana.NewInstruction(ProgramID, []byte{byte(CommandRevoke)}, accounts...)
}

// SetAuthority builds instruction #6.
func SetAuthority(account, currentAuthority solana.Key, newAuthority *solana.Key, authorityType AuthorityType, multiSigners []solana.Key) solana.Instruction {
	data := []byte{byte(CommandSetAuthority), byte(authorityType), 0}
	if newAuthority != nil {
		data[2] = 1
		data = append(data, *newAuthority...)
	}

	accounts := []solana.AccountMeta{solana.NewAccountMeta(account, false)}
	accounts = append(accounts, authorityAccounts(currentAuthority, multiSigners)...)
	return solana.NewInstruction(ProgramID, data, accounts...)
}

type DecompiledSetAuthority struct {
	Account          solana.Key
	CurrentAuthority solana.Key
	NewAuthority     solana.Key
	Type             AuthorityType
}

func DecompileSetAuthority(m solana.Message, index int) (*DecompiledSetAuthority, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandSetAuthority {
		return nil, errors.New("instruction is not SetAuthority")
	}
	if len(i.Accounts) < 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) < 3 {
		return nil, errors.Errorf("invalid data size: %d (expect at least 3)", len(i.Data))
	}

	account, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	authority, err := accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}

	result := &DecompiledSetAuthority{Account: account, CurrentAuthority: authority, Type: AuthorityType(i.Data[1])}
	if i.Data[2] == 1 {
		if len(i.Data) != 3+solana.KeySize {
			return nil, errors.Errorf("invalid data size: %d (expect %d)", len(i.Data), 3+solana.KeySize)
		}
		result.NewAuthority = i.Data[3 : 3+solana.KeySize]
	}
	return result, nil
}

// MintTo builds instruction #7, or #14 (MintToChecked) when checked is
// non-nil.
func MintTo(mint, account, mintAuthority solana.Key, amount uint64, checked *CheckedParams, multiSigners []solana.Key) (solana.Instruction, error) {
	if checked != nil {
		if err := validateCheckedParams(checked); err != nil {
			return solana.Instruction{}, err
		}
		e := binary.NewEncoder()
		e.Byte(byte(CommandMintToChecked))
		_ = e.Uint(amount, 8)
		e.Byte(checked.Decimals)

		accounts := []solana.AccountMeta{
			solana.NewAccountMeta(mint, false),
			solana.NewAccountMeta(account, false),
		}
		accounts = append(accounts, authorityAccounts(mintAuthority, multiSigners)...)
		return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
	}

	e := binary.NewEncoder()
	e.Byte(byte(CommandMintTo))
	_ = e.Uint(amount, 8)

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(mint, false),
		solana.NewAccountMeta(account, false),
	}
	accounts = append(accounts, authorityAccounts(mintAuthority, multiSigners)...)
	return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
}

type DecompiledMintTo struct {
	Mint          solana.Key
	Account       solana.Key
	MintAuthority solana.Key
	Amount        uint64
	Decimals      byte
	Checked       bool
}

func DecompileMintTo(m solana.Message, index int) (*DecompiledMintTo, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}

	checked := cmd == CommandMintToChecked
	if cmd != CommandMintTo && !checked {
		return nil, errors.New("instruction is not a mint-to variant")
	}
	if len(i.Accounts) < 3 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	d := binary.NewDecoder(i.Data[1:])
	amount, err := d.Uint(8)
	if err != nil {
		return nil, err
	}
	result := &DecompiledMintTo{Amount: amount, Checked: checked}
	if checked {
		result.Decimals, err = d.Byte()
		if err != nil {
			return nil, err
		}
	}
	result.Mint, err = accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	result.Account, err = accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	result.MintAuthority, err = accountAt(m, i, 2)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Burn builds instruction #8, or #15 (BurnChecked) when checked is
// non-nil.
func Burn(account, mint, owner solana.Key, amount uint64, checked *CheckedParams, multiSigners []solana.Key) (solana.Instruction, error) {
	if checked != nil {
		if err := validateCheckedParams(checked); err != nil {
			return solana.Instruction{}, err
		}
		e := binary.NewEncoder()
		e.Byte(byte(CommandBurnChecked))
		_ = e.Uint(amount, 8)
		e.Byte(checked.Decimals)

		accounts := []solana.AccountMeta{
			solana.NewAccountMeta(account, false),
			solana.NewAccountMeta(checked.Mint, false),
		}
		accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
		return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
	}

	e := binary.NewEncoder()
	e.Byte(byte(CommandBurn))
	_ = e.Uint(amount, 8)

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(mint, false),
	}
	accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
	return solana.NewInstruction(ProgramID, e.Bytes(), accounts...), nil
}

// CloseAccount builds instruction #9.
func CloseAccount(account, dest, owner solana.Key, multiSigners []solana.Key) solana.Instruction {
	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(dest, false),
	}
	accounts = append(accounts, authorityAccounts(owner, multiSigners)...)
	return solana.NewInstruction(ProgramID, []byte{byte(CommandCloseAccount)}, accounts...)
}

type DecompiledCloseAccount struct {
	Account     solana.Key
	Destination solana.Key
	Owner       solana.Key
}

func DecompileCloseAccount(m solana.Message, index int) (*DecompiledCloseAccount, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandCloseAccount {
		return nil, errors.New("instruction is not CloseAccount")
	}
	if len(i.Accounts) < 3 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	account, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	dest, err := accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	owner, err := accountAt(m, i, 2)
	if err != nil {
		return nil, err
	}
	return &DecompiledCloseAccount{Account: account, Destination: dest, Owner: owner}, nil
}

// FreezeAccount builds instruction #10.
func FreezeAccount(account, mint, authority solana.Key, multiSigners []solana.Key) solana.Instruction {
	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(mint, false),
	}
	accounts = append(accounts, authorityAccounts(authority, multiSigners)...)
	return solana.NewInstruction(ProgramID, []byte{byte(CommandFreezeAccount)}, accounts...)
}

// ThawAccount builds instruction #11.
func ThawAccount(account, mint, authority solana.Key, multiSigners []solana.Key) solana.Instruction {
	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(account, false),
		solana.NewReadonlyAccountMeta(mint, false),
	}
	accounts = append(accounts, authorityAccounts(authority, multiSigners)...)
	return solana.NewInstruction(ProgramID, []byte{byte(CommandThawAccount)}, accounts...)
}

// InitTokenAccount emits the two-instruction sequence that allocates and
// initializes a token account: a CreateAccount of AccountSize bytes owned
// by the token program, followed by InitializeAccount.
func InitTokenAccount(payer, account, mint, owner solana.Key, lamports uint64) ([]solana.Instruction, error) {
	create, err := system.CreateAccount(payer, account, ProgramID, lamports, AccountSize, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{
		create,
		InitializeAccount(account, mint, owner),
	}, nil
}

// InitMint emits the two-instruction sequence that allocates and
// initializes a mint: a CreateAccount of MintSize bytes owned by the token
// program, followed by InitializeMint.
func InitMint(payer, mint solana.Key, decimals byte, mintAuthority solana.Key, freezeAuthority *solana.Key, lamports uint64) ([]solana.Instruction, error) {
	create, err := system.CreateAccount(payer, mint, ProgramID, lamports, MintSize, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{
		create,
		InitializeMint(mint, decimals, mintAuthority, freezeAuthority),
	}, nil
}

// InitMultisig emits the two-instruction sequence that allocates and
// initializes a multisig account: a CreateAccount of MultisigSize bytes
// owned by the token program, followed by InitializeMultisig.
func InitMultisig(payer, account solana.Key, requiredSigners byte, lamports uint64, signers ...solana.Key) ([]solana.Instruction, error) {
	create, err := system.CreateAccount(payer, account, ProgramID, lamports, MultisigSize, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	init, err := InitializeMultisig(account, requiredSigners, signers...)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{create, init}, nil
}
