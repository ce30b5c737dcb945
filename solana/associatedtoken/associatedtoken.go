// Package associatedtoken implements the Associated Token Account
// program: deriving the canonical token account address for a
// (wallet, mint) pair and the single instruction that creates it.
package associatedtoken

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/system"
	"github.com/solworks/solkit/solana/token"
)

// ProgramID is the address of the Associated Token Account program.
var ProgramID = mustDecode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

func mustDecode(s string) solana.Key {
	k, err := solana.DecodeKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// FindAddress derives the associated token account address for owner's
// holdings of mint. owner must be a wallet (an on-curve key), not another
// program-derived address: a PDA can't be handed the private key needed to
// directly control a token account, so the on-curve check catches a class
// of caller mistake the underlying PDA derivation wouldn't otherwise
// reject.
func FindAddress(mint, owner solana.Key) (solana.Key, uint8, error) {
	if !owner.IsOnCurve() {
		return nil, 0, errors.Wrap(solana.ErrInvalidSeeds, "owner must be an on-curve wallet address")
	}
	return solana.FindAddress([][]byte{owner, token.ProgramID, mint}, ProgramID)
}

// CreateInstruction builds the single instruction (data: the one byte 0)
// that creates the associated token account for owner's holdings of mint,
// funded by payer. It returns the instruction and the derived account
// address.
func CreateInstruction(payer, owner, mint solana.Key) (solana.Instruction, solana.Key, error) {
	addr, _, err := FindAddress(mint, owner)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	instr := solana.NewInstruction(
		ProgramID,
		[]byte{0},
		solana.NewAccountMeta(payer, true),
		solana.NewAccountMeta(addr, false),
		solana.NewReadonlyAccountMeta(owner, false),
		solana.NewReadonlyAccountMeta(mint, false),
		solana.NewReadonlyAccountMeta(system.ProgramID, false),
		solana.NewReadonlyAccountMeta(token.ProgramID, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
	return instr, addr, nil
}

type DecompiledCreate struct {
	Payer solana.Key
	Addr  solana.Key
	Owner solana.Key
	Mint  solana.Key
}

func DecompileCreateInstruction(m solana.Message, index int) (*DecompiledCreate, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at index %d", index)
	}
	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !m.Accounts[i.ProgramIndex].Equal(ProgramID) {
		return nil, errors.New("instruction does not belong to the associated token program")
	}
	if len(i.Accounts) != 7 {
		return nil, errors.Errorf("invalid number of accounts: %d (expected 7)", len(i.Accounts))
	}
	if !m.Accounts[i.Accounts[4]].Equal(system.ProgramID) {
		return nil, errors.New("system program key mismatch")
	}
	if !m.Accounts[i.Accounts[5]].Equal(token.ProgramID) {
		return nil, errors.New("token program key mismatch")
	}
	if !m.Accounts[i.Accounts[6]].Equal(system.RentSysVar) {
		return nil, errors.New("rent sysvar mismatch")
	}

	return &DecompiledCreate{
		Payer: m.Accounts[i.Accounts[0]],
		Addr:  m.Accounts[i.Accounts[1]],
		Owner: m.Accounts[i.Accounts[2]],
		Mint:  m.Accounts[i.Accounts[3]],
	}, nil
}
