package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solworks/solkit/solana"
)

func TestMint_MarshalUnmarshalRoundTrip(t *testing.T) {
	keys := generateKeys(t, 2)
	m := Mint{
		MintAuthority:   keys[0],
		Supply:          1_000_000,
		Decimals:        6,
		Initialized:     true,
		FreezeAuthority: keys[1],
	}

	b := m.Marshal()
	require.Len(t, b, MintSize)

	var out Mint
	require.NoError(t, out.Unmarshal(b))
	assert.Equal(t, m.MintAuthority, out.MintAuthority)
	assert.Equal(t, m.Supply, out.Supply)
	assert.Equal(t, m.Decimals, out.Decimals)
	assert.Equal(t, m.Initialized, out.Initialized)
	assert.Equal(t, m.FreezeAuthority, out.FreezeAuthority)
}

func TestMint_NoAuthoritiesRoundTrip(t *testing.T) {
	m := Mint{Supply: 0, Decimals: 9, Initialized: false}

	var out Mint
	require.NoError(t, out.Unmarshal(m.Marshal()))
	assert.Nil(t, out.MintAuthority)
	assert.Nil(t, out.FreezeAuthority)
}

func TestMint_UnmarshalWrongSize(t *testing.T) {
	var m Mint
	assert.Error(t, m.Unmarshal([]byte{1, 2, 3}))
}

func TestAccount_MarshalUnmarshalRoundTrip(t *testing.T) {
	keys := generateKeys(t, 4)
	a := Account{
		Mint:            keys[0],
		Owner:           keys[1],
		Amount:          42,
		Delegate:        keys[2],
		State:           AccountStateFrozen,
		IsNative:        true,
		NativeReserve:   7,
		DelegatedAmount: 3,
		CloseAuthority:  keys[3],
	}

	b := a.Marshal()
	require.Len(t, b, AccountSize)

	var out Account
	require.NoError(t, out.Unmarshal(b))
	assert.Equal(t, a.Mint, out.Mint)
	assert.Equal(t, a.Owner, out.Owner)
	assert.Equal(t, a.Amount, out.Amount)
	assert.Equal(t, a.Delegate, out.Delegate)
	assert.Equal(t, a.State, out.State)
	assert.True(t, out.IsNative)
	assert.Equal(t, a.NativeReserve, out.NativeReserve)
	assert.Equal(t, a.DelegatedAmount, out.DelegatedAmount)
	assert.Equal(t, a.CloseAuthority, out.CloseAuthority)
}

func TestAccount_UnmarshalWrongSize(t *testing.T) {
	var a Account
	assert.Error(t, a.Unmarshal(make([]byte, AccountSize-1)))
}

func TestMultisig_MarshalUnmarshalRoundTrip(t *testing.T) {
	keys := generateKeys(t, 3)
	m := Multisig{SignersRequired: 2, SignersTotal: 3, Initialized: true, Signers: keys}

	b := m.Marshal()
	require.Len(t, b, MultisigSize)

	var out Multisig
	require.NoError(t, out.Unmarshal(b))
	assert.Equal(t, m.SignersRequired, out.SignersRequired)
	assert.Equal(t, m.SignersTotal, out.SignersTotal)
	assert.True(t, out.Initialized)
	assert.Equal(t, keys, out.Signers)
}

func TestMultisig_UnmarshalWrongSize(t *testing.T) {
	var m Multisig
	assert.Error(t, m.Unmarshal([]byte{1}))
}

func TestMultisig_PaddingIgnoredBeyondTotal(t *testing.T) {
	keys := generateKeys(t, 1)
	m := Multisig{SignersRequired: 1, SignersTotal: 1, Initialized: true, Signers: keys}

	var out Multisig
	require.NoError(t, out.Unmarshal(m.Marshal()))
	assert.Len(t, out.Signers, 1)
	assert.Equal(t, solana.Key(keys[0]), out.Signers[0])
}
