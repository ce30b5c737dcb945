package associatedtoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/solana"
)

func TestFindAddress_RejectsOffCurveOwner(t *testing.T) {
	mint, _, err := solana.FindAddress([][]byte{[]byte("mint")}, ProgramID)
	require.NoError(t, err)

	pda, _, err := solana.FindAddress([][]byte{[]byte("owner")}, ProgramID)
	require.NoError(t, err)
	require.False(t, pda.IsOnCurve())

	_, _, err = FindAddress(mint, pda)
	assert.ErrorIs(t, err, solana.ErrInvalidSeeds)
}

func TestFindAddress_Deterministic(t *testing.T) {
	mint, _, err := solana.FindAddress([][]byte{[]byte("mint")}, ProgramID)
	require.NoError(t, err)

	kp, err := solana.GenerateKeypair()
	require.NoError(t, err)

	addr1, bump1, err := FindAddress(mint, kp.Public)
	require.NoError(t, err)
	addr2, bump2, err := FindAddress(mint, kp.Public)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)
	assert.False(t, addr1.IsOnCurve())
}

func TestCreateInstruction_RoundTrip(t *testing.T) {
	payerKp, err := solana.GenerateKeypair()
	require.NoError(t, err)
	ownerKp, err := solana.GenerateKeypair()
	require.NoError(t, err)
	mint, _, err := solana.FindAddress([][]byte{[]byte("mint")}, ProgramID)
	require.NoError(t, err)

	instr, addr, err := CreateInstruction(payerKp.Public, ownerKp.Public, mint)
	require.NoError(t, err)

	wantAddr, _, err := FindAddress(mint, ownerKp.Public)
	require.NoError(t, err)
	assert.Equal(t, wantAddr, addr)

	bh := solana.Blockhash{1}
	msg, err := solana.Compile(payerKp.Public, bh, []solana.Instruction{instr})
	require.NoError(t, err)

	decompiled, err := DecompileCreateInstruction(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, payerKp.Public, decompiled.Payer)
	assert.Equal(t, addr, decompiled.Addr)
	assert.Equal(t, ownerKp.Public, decompiled.Owner)
	assert.Equal(t, mint, decompiled.Mint)
}
