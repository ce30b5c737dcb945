// Package tokenswap implements the instruction set of the SPL
// Token Swap program: pool initialization (fee schedule and curve
// configuration) and the swap/deposit/withdraw operations that move
// tokens through a pool.
//
// Account layouts and discriminants are drawn from the upstream
// token-swap program; the builder/Decompile shape follows the same
// pattern as the rest of solkit's program packages.
package tokenswap

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
	"github.com/solworks/solkit/solana/optvalidate"
)

// ProgramID is the address of the Token Swap program.
var ProgramID = mustDecode("SwapsVeCiPHMUAtzQWZw7RjsKjgCjhwU55QGu4U1Szw")

func mustDecode(s string) solana.Key {
	k, err := solana.DecodeKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// AccountSize is the serialized size of a pool's swap account.
const AccountSize = 324

// Command is the single-byte discriminant at the start of every
// token-swap instruction's data blob.
type Command byte

const (
	CommandInitialize Command = iota
	CommandSwap
	CommandDeposit
	CommandWithdraw
)

// CurveType selects the pricing curve a pool uses.
type CurveType byte

const (
	CurveConstantProduct CurveType = iota
	CurveConstantPrice
	CurveStable
	CurveOffset
)

// Fee is a numerator/denominator pair, e.g. trade fee or owner fee.
type Fee struct {
	Numerator   uint64
	Denominator uint64
}

func (f Fee) encode(e *binary.Encoder) {
	_ = e.Uint(f.Numerator, 8)
	_ = e.Uint(f.Denominator, 8)
}

func decodeFee(d *binary.Decoder) (Fee, error) {
	num, err := d.Uint(8)
	if err != nil {
		return Fee{}, err
	}
	den, err := d.Uint(8)
	if err != nil {
		return Fee{}, err
	}
	return Fee{Numerator: num, Denominator: den}, nil
}

// Curve names the pricing curve and carries its 32-byte parameter block,
// whose layout is curve-type specific (e.g. constant-price stores the
// fixed token B price in the first 8 bytes).
type Curve struct {
	Type       CurveType
	Parameters [32]byte
}

// FeeSchedule bundles every fee a pool charges.
type FeeSchedule struct {
	TradeFee           Fee
	OwnerTradeFee       Fee
	OwnerWithdrawFee    Fee
	HostFee             Fee
}

var initializeSchema = optvalidate.Schema{
	Name: "tokenswap.Initialize",
	Fields: []optvalidate.Field{
		{Name: "curve_type", Kind: optvalidate.KindBoundedInt, Min: int64(CurveConstantProduct), Max: int64(CurveOffset)},
		{Name: "trade_fee", Kind: optvalidate.KindCustom, Predicate: validateFee},
		{Name: "owner_trade_fee", Kind: optvalidate.KindCustom, Predicate: validateFee},
		{Name: "owner_withdraw_fee", Kind: optvalidate.KindCustom, Predicate: validateFee},
		{Name: "host_fee", Kind: optvalidate.KindCustom, Predicate: validateFee},
	},
}

// validateFee rejects a fee whose numerator exceeds its denominator, or
// whose denominator is zero while its numerator is not (an unpayable fee).
func validateFee(v interface{}) (interface{}, error) {
	f, ok := v.(Fee)
	if !ok {
		return nil, errors.New("expected a Fee")
	}
	if f.Denominator == 0 && f.Numerator != 0 {
		return nil, errors.New("denominator is zero but numerator is not")
	}
	if f.Denominator != 0 && f.Numerator > f.Denominator {
		return nil, errors.New("numerator exceeds denominator")
	}
	return f, nil
}

// Initialize builds the pool-initialization instruction.
func Initialize(swap, authority, tokenA, tokenB, poolMint, feeAccount, destination solana.Key, fees FeeSchedule, curve Curve) (solana.Instruction, error) {
	// Accounts expected by this instruction:
	//   0. `[writable]` The swap pool account.
	//   1. `[]` The pool's derived authority.
	//   2. `[]` Token A reserve account, owned by the authority.
	//   3. `[]` Token B reserve account, owned by the authority.
	//   4. `[writable]` Pool token mint.
	//   5. `[writable]` Fee collection account.
	//   6. `[writable]` Destination account for the initial pool tokens.
	if _, err := initializeSchema.Validate(map[string]interface{}{
		"curve_type":         int64(curve.Type),
		"trade_fee":          fees.TradeFee,
		"owner_trade_fee":    fees.OwnerTradeFee,
		"owner_withdraw_fee": fees.OwnerWithdrawFee,
		"host_fee":           fees.HostFee,
	}); err != nil {
		return solana.Instruction{}, err
	}

	e := binary.NewEncoder()
	e.Byte(byte(CommandInitialize))
	fees.TradeFee.encode(e)
	fees.OwnerTradeFee.encode(e)
	fees.OwnerWithdrawFee.encode(e)
	fees.HostFee.encode(e)
	e.Byte(byte(curve.Type))
	e.RawBytes(curve.Parameters[:])

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewAccountMeta(swap, false),
		solana.NewReadonlyAccountMeta(authority, false),
		solana.NewReadonlyAccountMeta(tokenA, false),
		solana.NewReadonlyAccountMeta(tokenB, false),
		solana.NewAccountMeta(poolMint, false),
		solana.NewAccountMeta(feeAccount, false),
		solana.NewAccountMeta(destination, false),
	), nil
}

type DecompiledInitialize struct {
	Swap        solana.Key
	Authority   solana.Key
	TokenA      solana.Key
	TokenB      solana.Key
	PoolMint    solana.Key
	FeeAccount  solana.Key
	Destination solana.Key
	Fees        FeeSchedule
	Curve       Curve
}

func DecompileInitialize(m solana.Message, index int) (*DecompiledInitialize, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandInitialize {
		return nil, errors.New("instruction is not Initialize")
	}
	if len(i.Accounts) != 7 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	d := binary.NewDecoder(i.Data[1:])
	tradeFee, err := decodeFee(d)
	if err != nil {
		return nil, err
	}
	ownerTradeFee, err := decodeFee(d)
	if err != nil {
		return nil, err
	}
	ownerWithdrawFee, err := decodeFee(d)
	if err != nil {
		return nil, err
	}
	hostFee, err := decodeFee(d)
	if err != nil {
		return nil, err
	}
	curveType, err := d.Byte()
	if err != nil {
		return nil, err
	}
	params, err := d.RawBytes(32)
	if err != nil {
		return nil, err
	}

	result := &DecompiledInitialize{
		Fees: FeeSchedule{
			TradeFee:         tradeFee,
			OwnerTradeFee:    ownerTradeFee,
			OwnerWithdrawFee: ownerWithdrawFee,
			HostFee:          hostFee,
		},
		Curve: Curve{Type: CurveType(curveType)},
	}
	copy(result.Curve.Parameters[:], params)

	result.Swap, err = accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	result.Authority, err = accountAt(m, i, 1)
	if err != nil {
		return nil, err
	}
	result.TokenA, err = accountAt(m, i, 2)
	if err != nil {
		return nil, err
	}
	result.TokenB, err = accountAt(m, i, 3)
	if err != nil {
		return nil, err
	}
	result.PoolMint, err = accountAt(m, i, 4)
	if err != nil {
		return nil, err
	}
	result.FeeAccount, err = accountAt(m, i, 5)
	if err != nil {
		return nil, err
	}
	result.Destination, err = accountAt(m, i, 6)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Swap builds the swap instruction: amountIn of the source token for at
// least minimumAmountOut of the destination token.
func Swap(swap, authority, userTransferAuthority, userSource, poolSource, poolDestination, userDestination, poolMint, feeAccount solana.Key, amountIn, minimumAmountOut uint64) solana.Instruction {
	// Accounts expected by this instruction:
	//   0. `[]` Swap pool account.
	//   1. `[]` Pool's derived authority.
	//   2. `[signer]` User's transfer authority (delegate over userSource).
	//   3. `[writable]` User's source token account.
	//   4. `[writable]` Pool's reserve account for the source token.
	//   5. `[writable]` Pool's reserve account for the destination token.
	//   6. `[writable]` User's destination token account.
	//   7. `[writable]` Pool mint.
	//   8. `[writable]` Fee collection account.
	e := binary.NewEncoder()
	e.Byte(byte(CommandSwap))
	_ = e.Uint(amountIn, 8)
	_ = e.Uint(minimumAmountOut, 8)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewReadonlyAccountMeta(swap, false),
		solana.NewReadonlyAccountMeta(authority, false),
		solana.NewReadonlyAccountMeta(userTransferAuthority, true),
		solana.NewAccountMeta(userSource, false),
		solana.NewAccountMeta(poolSource, false),
		solana.NewAccountMeta(poolDestination, false),
		solana.NewAccountMeta(userDestination, false),
		solana.NewAccountMeta(poolMint, false),
		solana.NewAccountMeta(feeAccount, false),
	)
}

type DecompiledSwap struct {
	Swap              solana.Key
	UserSource        solana.Key
	UserDestination   solana.Key
	AmountIn          uint64
	MinimumAmountOut  uint64
}

func DecompileSwap(m solana.Message, index int) (*DecompiledSwap, error) {
	cmd, i, err := getCommand(m, index)
	if err != nil {
		return nil, err
	}
	if cmd != CommandSwap {
		return nil, errors.New("instruction is not Swap")
	}
	if len(i.Accounts) != 9 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	d := binary.NewDecoder(i.Data[1:])
	amountIn, err := d.Uint(8)
	if err != nil {
		return nil, err
	}
	minOut, err := d.Uint(8)
	if err != nil {
		return nil, err
	}
	swap, err := accountAt(m, i, 0)
	if err != nil {
		return nil, err
	}
	userSource, err := accountAt(m, i, 3)
	if err != nil {
		return nil, err
	}
	userDestination, err := accountAt(m, i, 6)
	if err != nil {
		return nil, err
	}
	return &DecompiledSwap{Swap: swap, UserSource: userSource, UserDestination: userDestination, AmountIn: amountIn, MinimumAmountOut: minOut}, nil
}

// Deposit builds a deposit-all-token-types instruction: depositing up to
// maximumTokenA/maximumTokenB in exchange for poolTokenAmount pool tokens.
func Deposit(swap, authority, userTransferAuthority, userTokenA, userTokenB, poolTokenA, poolTokenB, poolMint, userPoolToken solana.Key, poolTokenAmount, maximumTokenA, maximumTokenB uint64) solana.Instruction {
	e := binary.NewEncoder()
	e.Byte(byte(CommandDeposit))
	_ = e.Uint(poolTokenAmount, 8)
	_ = e.Uint(maximumTokenA, 8)
	_ = e.Uint(maximumTokenB, 8)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewReadonlyAccountMeta(swap, false),
		solana.NewReadonlyAccountMeta(authority, false),
		solana.NewReadonlyAccountMeta(userTransferAuthority, true),
		solana.NewAccountMeta(userTokenA, false),
		solana.NewAccountMeta(userTokenB, false),
		solana.NewAccountMeta(poolTokenA, false),
		solana.NewAccountMeta(poolTokenB, false),
		solana.NewAccountMeta(poolMint, false),
		solana.NewAccountMeta(userPoolToken, false),
	)
}

// Withdraw builds a withdraw-all-token-types instruction: burning
// poolTokenAmount pool tokens for at least minimumTokenA/minimumTokenB.
func Withdraw(swap, authority, userTransferAuthority, poolMint, userPoolToken, poolTokenA, poolTokenB, userTokenA, userTokenB, feeAccount solana.Key, poolTokenAmount, minimumTokenA, minimumTokenB uint64) solana.Instruction {
	e := binary.NewEncoder()
	e.Byte(byte(CommandWithdraw))
	_ = e.Uint(poolTokenAmount, 8)
	_ = e.Uint(minimumTokenA, 8)
	_ = e.Uint(minimumTokenB, 8)

	return solana.NewInstruction(
		ProgramID,
		e.Bytes(),
		solana.NewReadonlyAccountMeta(swap, false),
		solana.NewReadonlyAccountMeta(authority, false),
		solana.NewReadonlyAccountMeta(userTransferAuthority, true),
		solana.NewAccountMeta(poolMint, false),
		solana.NewAccountMeta(userPoolToken, false),
		solana.NewAccountMeta(poolTokenA, false),
		solana.NewAccountMeta(poolTokenB, false),
		solana.NewAccountMeta(userTokenA, false),
		solana.NewAccountMeta(userTokenB, false),
		solana.NewAccountMeta(feeAccount, false),
	)
}

func getCommand(m solana.Message, index int) (Command, solana.CompiledInstruction, error) {
	if index < 0 || index >= len(m.Instructions) {
		return 0, solana.CompiledInstruction{}, errors.Errorf("instruction doesn't exist at index %d", index)
	}
	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !m.Accounts[i.ProgramIndex].Equal(ProgramID) {
		return 0, i, errors.New("instruction does not belong to the token-swap program")
	}
	if len(i.Data) == 0 {
		return 0, i, errors.New("token-swap instruction missing data")
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
