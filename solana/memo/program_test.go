package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/solana"
)

func TestInstruction_RoundTrip(t *testing.T) {
	kp, err := solana.GenerateKeypair()
	require.NoError(t, err)

	instr := Instruction("hello solkit")
	assert.Empty(t, instr.Accounts)

	bh := solana.Blockhash{1}
	msg, err := solana.Compile(kp.Public, bh, []solana.Instruction{instr})
	require.NoError(t, err)

	decompiled, err := DecompileMemo(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello solkit", decompiled.Data)
}

func TestDecompileMemo_WrongProgram(t *testing.T) {
	kp, err := solana.GenerateKeypair()
	require.NoError(t, err)

	instr := solana.NewInstruction(kp.Public, []byte("not a memo"))

	bh := solana.Blockhash{1}
	msg, err := solana.Compile(kp.Public, bh, []solana.Instruction{instr})
	require.NoError(t, err)

	_, err = DecompileMemo(msg, 0)
	assert.Error(t, err)
}
