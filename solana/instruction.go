package solana

// AccountMeta is an account reference scoped to a single instruction: a
// key plus whether the runtime requires it to sign the enclosing
// transaction and whether the runtime may mutate it.
type AccountMeta struct {
	PublicKey  Key
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta returns a writable account reference.
func NewAccountMeta(pub Key, isSigner bool) AccountMeta {
	return AccountMeta{PublicKey: pub, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta returns a readonly account reference.
func NewReadonlyAccountMeta(pub Key, isSigner bool) AccountMeta {
	return AccountMeta{PublicKey: pub, IsSigner: isSigner, IsWritable: false}
}

// Instruction is an untyped call into a program: a program id, an ordered
// list of account references, and an opaque data blob whose layout is
// program-specific (see solana/system, solana/token, ...).
type Instruction struct {
	Program  Key
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction builds an Instruction from a program id, data, and an
// ordered list of account references.
func NewInstruction(program Key, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{Program: program, Data: data, Accounts: accounts}
}

// CompiledInstruction is an Instruction with its program id and accounts
// replaced by their index into the enclosing Message's account table.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
