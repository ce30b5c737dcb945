package solana

import "sort"

// Compile turns payer, blockhash, and an instruction list into a Message:
// a resolved account table plus instructions referencing it by index. It
// does not check the transaction's signers against a signer set, sign
// anything, or produce wire bytes — see NewTransaction and Marshal.
func Compile(payer Key, blockhash Blockhash, instructions []Instruction) (Message, error) {
	if len(payer) == 0 {
		return Message{}, ErrNoPayer
	}
	if blockhash == (Blockhash{}) {
		return Message{}, ErrNoBlockhash
	}
	if len(instructions) == 0 {
		return Message{}, ErrNoInstructions
	}
	for idx, ix := range instructions {
		if len(ix.Program) == 0 {
			return Message{}, ErrNoProgram{Index: idx}
		}
	}

	accounts := compileAccountTable(payer, instructions)

	var m Message
	m.Accounts = make([]Key, len(accounts))
	for i, a := range accounts {
		m.Accounts[i] = a.key

		switch {
		case a.isSigner:
			m.Header.NumSignatures++
			if !a.isWritable {
				m.Header.NumReadonlySigned++
			}
		case !a.isWritable:
			m.Header.NumReadonly++
		}
	}
	m.RecentBlockhash = blockhash

	for _, ix := range instructions {
		ci := CompiledInstruction{
			ProgramIndex: byte(indexOfKey(m.Accounts, ix.Program)),
			Data:         ix.Data,
		}
		for _, a := range ix.Accounts {
			ci.Accounts = append(ci.Accounts, byte(indexOfKey(m.Accounts, a.PublicKey)))
		}
		m.Instructions = append(m.Instructions, ci)
	}

	return m, nil
}

type accountEntry struct {
	key        Key
	isSigner   bool
	isWritable bool
}

// compileAccountTable flattens each instruction to its program (as a
// readonly non-signer) followed by its accounts, drops entries equal to
// the payer, stable-sorts by (signer DESC, writable DESC) — the four-range
// partition the wire header records — then de-duplicates by key keeping
// the first occurrence. Because the sort already ran, "first occurrence"
// is the strongest flag combination seen for that key across every
// instruction. The payer is prepended as signer+writable.
func compileAccountTable(payer Key, instructions []Instruction) []accountEntry {
	var flattened []accountEntry
	for _, ix := range instructions {
		flattened = append(flattened, accountEntry{key: ix.Program})
		for _, a := range ix.Accounts {
			flattened = append(flattened, accountEntry{key: a.PublicKey, isSigner: a.IsSigner, isWritable: a.IsWritable})
		}
	}

	filtered := make([]accountEntry, 0, len(flattened))
	for _, e := range flattened {
		if !e.key.Equal(payer) {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].isSigner != filtered[j].isSigner {
			return filtered[i].isSigner
		}
		if filtered[i].isWritable != filtered[j].isWritable {
			return filtered[i].isWritable
		}
		return false
	})

	result := make([]accountEntry, 0, len(filtered)+1)
	result = append(result, accountEntry{key: payer, isSigner: true, isWritable: true})

	seen := map[string]bool{string(payer): true}
	for _, e := range filtered {
		k := string(e.key)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, e)
	}

	return result
}

func indexOfKey(accounts []Key, key Key) int {
	for i, a := range accounts {
		if a.Equal(key) {
			return i
		}
	}
	return -1
}

// accountFlags derives the (signer?, writable?) pair for the account at
// index purely from the header's range boundaries, the inverse of the
// partition compileAccountTable produced. Used by Decompile to recover
// AccountMeta flags without persisting them on the wire.
func (m Message) accountFlags(index int) (isSigner, isWritable bool) {
	numSigners := int(m.Header.NumSignatures)
	numReadonlySigned := int(m.Header.NumReadonlySigned)
	numReadonly := int(m.Header.NumReadonly)

	if index < numSigners {
		isSigner = true
		isWritable = index < numSigners-numReadonlySigned
		return
	}

	nonSignerIndex := index - numSigners
	nonSignerCount := len(m.Accounts) - numSigners
	isWritable = nonSignerIndex < nonSignerCount-numReadonly
	return
}

// Decompile recovers the untyped Instruction list from a compiled
// Message, re-resolving account indices to keys and flags. This is the
// generic counterpart to the per-program Decompile* functions in
// solana/system, solana/token, and solana/associatedtoken, which recover
// typed parameters on top of this.
func (m Message) Decompile() ([]Instruction, error) {
	out := make([]Instruction, 0, len(m.Instructions))
	for _, ci := range m.Instructions {
		if int(ci.ProgramIndex) >= len(m.Accounts) {
			return nil, ErrParse
		}

		ix := Instruction{
			Program: m.Accounts[ci.ProgramIndex],
			Data:    append([]byte{}, ci.Data...),
		}
		for _, idx := range ci.Accounts {
			if int(idx) >= len(m.Accounts) {
				return nil, ErrParse
			}
			signer, writable := m.accountFlags(int(idx))
			ix.Accounts = append(ix.Accounts, AccountMeta{
				PublicKey:  m.Accounts[idx],
				IsSigner:   signer,
				IsWritable: writable,
			})
		}
		out = append(out, ix)
	}
	return out, nil
}
