package tokenswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/solana"
)

func generateKeys(t *testing.T, n int) []solana.Key {
	out := make([]solana.Key, n)
	for i := range out {
		kp, err := solana.GenerateKeypair()
		require.NoError(t, err)
		out[i] = kp.Public
	}
	return out
}

func compileSingle(t *testing.T, payer solana.Key, i solana.Instruction) solana.Message {
	var bh solana.Blockhash
	bh[0] = 9
	msg, err := solana.Compile(payer, bh, []solana.Instruction{i})
	require.NoError(t, err)
	return msg
}

func TestInitialize_RoundTrip(t *testing.T) {
	keys := generateKeys(t, 7)
	swap, authority, tokenA, tokenB, poolMint, feeAccount, dest := keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6]

	fees := FeeSchedule{
		TradeFee:         Fee{Numerator: 1, Denominator: 1000},
		OwnerTradeFee:    Fee{Numerator: 2, Denominator: 1000},
		OwnerWithdrawFee: Fee{Numerator: 3, Denominator: 1000},
		HostFee:          Fee{Numerator: 4, Denominator: 1000},
	}
	curve := Curve{Type: CurveConstantProduct}

	instr, err := Initialize(swap, authority, tokenA, tokenB, poolMint, feeAccount, dest, fees, curve)
	require.NoError(t, err)
	msg := compileSingle(t, authority, instr)

	decompiled, err := DecompileInitialize(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, swap, decompiled.Swap)
	assert.Equal(t, authority, decompiled.Authority)
	assert.Equal(t, tokenA, decompiled.TokenA)
	assert.Equal(t, tokenB, decompiled.TokenB)
	assert.Equal(t, poolMint, decompiled.PoolMint)
	assert.Equal(t, feeAccount, decompiled.FeeAccount)
	assert.Equal(t, dest, decompiled.Destination)
	assert.Equal(t, fees, decompiled.Fees)
	assert.Equal(t, CurveConstantProduct, decompiled.Curve.Type)
}

func TestSwap_RoundTrip(t *testing.T) {
	keys := generateKeys(t, 9)
	swap, authority, userAuth, userSource, poolSource, poolDest, userDest, poolMint, feeAccount :=
		keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], keys[7], keys[8]

	instr := Swap(swap, authority, userAuth, userSource, poolSource, poolDest, userDest, poolMint, feeAccount, 1000, 990)
	msg := compileSingle(t, userAuth, instr)

	decompiled, err := DecompileSwap(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, swap, decompiled.Swap)
	assert.Equal(t, userSource, decompiled.UserSource)
	assert.Equal(t, userDest, decompiled.UserDestination)
	assert.EqualValues(t, 1000, decompiled.AmountIn)
	assert.EqualValues(t, 990, decompiled.MinimumAmountOut)
}

func TestDeposit_BuildsExpectedAccountShape(t *testing.T) {
	keys := generateKeys(t, 9)
	instr := Deposit(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], keys[7], keys[8], 500, 100, 200)

	require.Len(t, instr.Accounts, 9)
	assert.True(t, instr.Accounts[2].IsSigner)
	assert.Equal(t, ProgramID, instr.Program)
}

func TestWithdraw_BuildsExpectedAccountShape(t *testing.T) {
	keys := generateKeys(t, 10)
	instr := Withdraw(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], keys[7], keys[8], keys[9], 500, 100, 200)

	require.Len(t, instr.Accounts, 10)
	assert.True(t, instr.Accounts[2].IsSigner)
}

func TestDecompileInitialize_WrongProgram(t *testing.T) {
	keys := generateKeys(t, 7)
	instr, err := Initialize(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], FeeSchedule{}, Curve{})
	require.NoError(t, err)
	instr.Program = keys[0]

	msg := compileSingle(t, keys[1], instr)
	_, err = DecompileInitialize(msg, 0)
	assert.Error(t, err)
}

func TestInitialize_InvalidCurveType(t *testing.T) {
	keys := generateKeys(t, 7)
	_, err := Initialize(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], FeeSchedule{}, Curve{Type: CurveType(99)})
	assert.Error(t, err)
}

func TestInitialize_InvalidFee(t *testing.T) {
	keys := generateKeys(t, 7)
	fees := FeeSchedule{TradeFee: Fee{Numerator: 10, Denominator: 5}}
	_, err := Initialize(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], fees, Curve{Type: CurveConstantProduct})
	assert.Error(t, err)
}
