// Package nonce gives the durable-nonce subset of the System program a
// name of its own. It re-exports solana/system's four nonce builders
// under the names a caller managing durable nonces actually reaches for,
// without duplicating any encoding logic.
package nonce

import (
	"github.com/solworks/solkit/solana"
	"github.com/solworks/solkit/solana/system"
)

// Init emits the InitializeNonce instruction, seeding the account's
// authority.
func Init(account, authority solana.Key) solana.Instruction {
	return system.InitializeNonce(account, authority)
}

// Authorize emits the AuthorizeNonce instruction, handing control of the
// account to newAuthority.
func Authorize(account, authority, newAuthority solana.Key) solana.Instruction {
	return system.AuthorizeNonce(account, authority, newAuthority)
}

// Advance emits the AdvanceNonce instruction, rotating the account's
// stored blockhash.
func Advance(account, authority solana.Key) solana.Instruction {
	return system.AdvanceNonce(account, authority)
}

// Withdraw emits the WithdrawNonce instruction, moving lamports out of the
// account.
func Withdraw(account, to, authority solana.Key, lamports uint64) solana.Instruction {
	return system.WithdrawNonce(account, to, authority, lamports)
}

// Account is the parsed view of a durable nonce account.
type Account = system.NonceAccount

// AccountSize is the serialized size of a durable nonce account.
const AccountSize = system.NonceAccountSize
