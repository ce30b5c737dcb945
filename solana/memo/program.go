// Package memo implements the Memo program's single instruction: attach
// an arbitrary UTF-8 string to a transaction for off-chain indexing.
package memo

import (
	"github.com/pkg/errors"

	"github.com/solworks/solkit/solana"
)

// ProgramID is the address of the Memo program.
var ProgramID = mustDecode("Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo")

func mustDecode(s string) solana.Key {
	k, err := solana.DecodeKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Instruction attaches data to the enclosing transaction. The memo
// program has no accounts of its own; the data is the instruction's
// entire payload, unescaped UTF-8.
func Instruction(data string) solana.Instruction {
	return solana.NewInstruction(ProgramID, []byte(data))
}

type DecompiledMemo struct {
	Data string
}

func DecompileMemo(m solana.Message, index int) (*DecompiledMemo, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at index %d", index)
	}
	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !m.Accounts[i.ProgramIndex].Equal(ProgramID) {
		return nil, errors.New("instruction does not belong to the memo program")
	}
	return &DecompiledMemo{Data: string(i.Data)}, nil
}
