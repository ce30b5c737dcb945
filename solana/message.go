package solana

const (
	// SignatureSize is the length in bytes of an ed25519 signature.
	SignatureSize = 64
	// BlockhashSize is the length in bytes of a blockhash (a sha256 digest).
	BlockhashSize = 32
)

// Signature is a single ed25519 signature over a compiled message.
type Signature [SignatureSize]byte

// Blockhash is a recent blockhash, or a nonce account's stored nonce when
// the transaction is signed with a durable nonce.
type Blockhash [BlockhashSize]byte

// Header records the three boundaries partitioning a Message's account
// table into signer+writable, signer+readonly, non-signer+writable, and
// non-signer+readonly ranges.
type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadonly       byte
}

// Message is the canonical, address-resolved body of a transaction: the
// account table, the blockhash it was built against, and the compiled
// instruction list referencing that table by index.
type Message struct {
	Header          Header
	Accounts        []Key
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}
