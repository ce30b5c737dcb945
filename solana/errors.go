package solana

import (
	"fmt"

	"github.com/pkg/errors"
)

// Local validation errors returned by the key, compiler, and decompile
// paths. These are sentinel values so callers can errors.Is against them.
var (
	ErrInvalidKey           = errors.New("invalid key")
	ErrInvalidSeeds         = errors.New("invalid seeds")
	ErrNoNonce              = errors.New("no bump seed produced an off-curve address")
	ErrNoPayer              = errors.New("transaction has no payer")
	ErrNoBlockhash          = errors.New("transaction has no blockhash")
	ErrNoInstructions       = errors.New("transaction has no instructions")
	ErrMismatchedSigners    = errors.New("signer set does not match account table's signer flags")
	ErrParse                = errors.New("failed to parse transaction")
	ErrInvalidCheckedParams = errors.New("checked instruction requires decimals and a mint account")
	ErrMissingSeedParams    = errors.New("seed variant requires base, seed, and program_id together")
)

// ErrNoProgram reports that the instruction at index idx has no program id.
type ErrNoProgram struct {
	Index int
}

func (e ErrNoProgram) Error() string {
	return fmt.Sprintf("instruction %d has no program id", e.Index)
}
