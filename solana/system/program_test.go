package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/binary"
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

func compileSingle(t *testing.T, payer solana.Key, blockhash solana.Blockhash, i solana.Instruction) solana.Message {
	msg, err := solana.Compile(payer, blockhash, []solana.Instruction{i})
	require.NoError(t, err)
	return msg
}

func TestCreateAccount_Plain(t *testing.T) {
	keys := generateKeys(t, 3)
	from, newAccount, owner := keys[0], keys[1], keys[2]

	instr, err := CreateAccount(from, newAccount, owner, 12345, 67890, nil, nil, nil)
	require.NoError(t, err)

	d := binary.NewDecoder(instr.Data[4:])
	lamports, err := d.Uint(8)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, lamports)
	space, err := d.Uint(8)
	require.NoError(t, err)
	assert.EqualValues(t, 67890, space)
	ownerOut, err := d.RawBytes(solana.KeySize)
	require.NoError(t, err)
	assert.Equal(t, owner, solana.Key(ownerOut))

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, from, bh, instr)

	decompiled, err := DecompileCreateAccount(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, from, decompiled.From)
	assert.Equal(t, newAccount, decompiled.New)
	assert.Equal(t, owner, decompiled.Owner)
	assert.EqualValues(t, 12345, decompiled.Lamports)
	assert.EqualValues(t, 67890, decompiled.Space)
	assert.False(t, decompiled.SeededFrom)
}

func TestCreateAccount_MissingSeedParams(t *testing.T) {
	keys := generateKeys(t, 3)
	base := keys[2]

	_, err := CreateAccount(keys[0], keys[1], keys[2], 1, 1, &base, nil, nil)
	assert.ErrorIs(t, err, solana.ErrMissingSeedParams)
}

func TestCreateAccount_WithSeed(t *testing.T) {
	keys := generateKeys(t, 4)
	from, newAccount, owner, program := keys[0], keys[1], keys[2], keys[3]
	base := from
	seed := "account-seed"

	instr, err := CreateAccount(from, newAccount, owner, 5, 10, &base, &seed, &program)
	require.NoError(t, err)
	// base == from, so the base account isn't duplicated in the list.
	assert.Len(t, instr.Accounts, 2)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, from, bh, instr)

	decompiled, err := DecompileCreateAccount(msg, 0)
	require.NoError(t, err)
	assert.True(t, decompiled.SeededFrom)
	assert.Equal(t, seed, decompiled.Seed)
	assert.Equal(t, base, decompiled.Base)

	otherBase := keys[3]
	instr2, err := CreateAccount(from, newAccount, owner, 5, 10, &otherBase, &seed, &program)
	require.NoError(t, err)
	assert.Len(t, instr2.Accounts, 3)
}

func TestTransfer_PlainAndSeeded(t *testing.T) {
	keys := generateKeys(t, 4)
	from, to, base, program := keys[0], keys[1], keys[2], keys[3]

	plain, err := Transfer(from, to, 500, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, plain.Accounts, 2)

	seed := "xfer"
	seeded, err := Transfer(from, to, 500, &base, &seed, &program)
	require.NoError(t, err)
	assert.Len(t, seeded.Accounts, 3)
	assert.True(t, seeded.Accounts[1].IsSigner)
	assert.False(t, seeded.Accounts[1].IsWritable)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, from, bh, seeded)
	decompiled, err := DecompileTransfer(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, seed, decompiled.Seed)
	assert.EqualValues(t, 500, decompiled.Lamports)
}

func TestAssign_MissingSeedParams(t *testing.T) {
	keys := generateKeys(t, 2)
	seed := "s"
	_, err := Assign(keys[0], keys[1], nil, &seed, nil)
	assert.ErrorIs(t, err, solana.ErrMissingSeedParams)
}

func TestAllocate_PlainAndSeeded(t *testing.T) {
	keys := generateKeys(t, 3)
	account, base, owner := keys[0], keys[1], keys[2]

	plain, err := Allocate(account, 128, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, plain.Accounts, 1)

	seed := "alloc"
	seeded, err := Allocate(account, 128, &owner, &base, &seed, &owner)
	require.NoError(t, err)
	assert.Len(t, seeded.Accounts, 2)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, account, bh, seeded)
	decompiled, err := DecompileAllocate(msg, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 128, decompiled.Space)
	assert.Equal(t, owner, decompiled.Owner)
}

func TestAdvanceNonce(t *testing.T) {
	keys := generateKeys(t, 2)
	nonce, authority := keys[0], keys[1]

	instr := AdvanceNonce(nonce, authority)
	require.Len(t, instr.Accounts, 3)
	assert.Equal(t, RecentBlockhashesSysVar, instr.Accounts[1].PublicKey)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, nonce, bh, instr)
	decompiled, err := DecompileAdvanceNonce(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, nonce, decompiled.Nonce)
	assert.Equal(t, authority, decompiled.Authority)
}

func TestWithdrawNonceRoundTrip(t *testing.T) {
	keys := generateKeys(t, 3)
	nonce, to, authority := keys[0], keys[1], keys[2]

	instr := WithdrawNonce(nonce, to, authority, 999)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, nonce, bh, instr)
	decompiled, err := DecompileWithdrawNonce(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, nonce, decompiled.Nonce)
	assert.Equal(t, to, decompiled.To)
	assert.Equal(t, authority, decompiled.Authority)
	assert.EqualValues(t, 999, decompiled.Lamports)
}

func TestInitializeNonceRoundTrip(t *testing.T) {
	keys := generateKeys(t, 2)
	nonce, authority := keys[0], keys[1]

	instr := InitializeNonce(nonce, authority)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, nonce, bh, instr)
	decompiled, err := DecompileInitializeNonce(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, nonce, decompiled.Nonce)
	assert.Equal(t, authority, decompiled.Authority)
}

func TestAuthorizeNonceRoundTrip(t *testing.T) {
	keys := generateKeys(t, 3)
	nonce, authority, newAuthority := keys[0], keys[1], keys[2]

	instr := AuthorizeNonce(nonce, authority, newAuthority)

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, nonce, bh, instr)
	decompiled, err := DecompileAuthorizeNonce(msg, 0)
	require.NoError(t, err)
	assert.Equal(t, nonce, decompiled.Nonce)
	assert.Equal(t, authority, decompiled.Authority)
	assert.Equal(t, newAuthority, decompiled.NewAuthority)
}

func TestDecompileWrongProgram(t *testing.T) {
	keys := generateKeys(t, 3)
	instr, err := CreateAccount(keys[0], keys[1], keys[2], 1, 1, nil, nil, nil)
	require.NoError(t, err)
	instr.Program = keys[2]

	var bh solana.Blockhash
	bh[0] = 1
	msg := compileSingle(t, keys[0], bh, instr)
	_, err = DecompileCreateAccount(msg, 0)
	assert.Error(t, err)
}

func TestNonceAccount_MarshalUnmarshal(t *testing.T) {
	keys := generateKeys(t, 1)
	var bh solana.Blockhash
	bh[5] = 42

	n := NonceAccount{
		Authority:     keys[0],
		Blockhash:     bh,
		FeeCalculator: FeeCalculator{LamportsPerSignature: 5000},
	}

	encoded := n.Marshal()
	assert.Len(t, encoded, NonceAccountSize)

	var decoded NonceAccount
	require.NoError(t, decoded.Unmarshal(encoded))
	assert.Equal(t, n.Authority, decoded.Authority)
	assert.Equal(t, n.Blockhash, decoded.Blockhash)
	assert.Equal(t, n.FeeCalculator, decoded.FeeCalculator)

	value, err := GetNonceValueFromAccount(encoded)
	require.NoError(t, err)
	assert.Equal(t, bh, value)

	var tooShort NonceAccount
	assert.Error(t, tooShort.Unmarshal([]byte{1, 2, 3}))
}
