package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

// KeySize is the length in bytes of a public key, program-derived address,
// or seeded address. Signatures are twice this size and are handled as
// their own Signature type in message.go.
const KeySize = ed25519.PublicKeySize

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

// Key is an opaque 32-byte value: a public key, a program-derived address,
// or a seeded address. It is validated only by length; whether it can sign
// (lies on the ed25519 curve) is a separate question answered by IsOnCurve.
type Key []byte

// Keypair is an ed25519 secret/public pair sampled from OS randomness. It
// is never mutated after generation.
type Keypair struct {
	Public  Key
	Private ed25519.PrivateKey
}

// GenerateKeypair samples 32 bytes of entropy and derives the matching
// ed25519 public key.
func GenerateKeypair() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, errors.Wrap(err, "failed to generate keypair")
	}
	return Keypair{Public: Key(pub), Private: priv}, nil
}

// DecodeKey base58-decodes s and requires the result be exactly KeySize
// bytes.
func DecodeKey(s string) (Key, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	if err := CheckKey(b); err != nil {
		return nil, err
	}
	return Key(b), nil
}

// CheckKey succeeds iff b is exactly KeySize bytes.
func CheckKey(b []byte) error {
	if len(b) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// String returns the base58 encoding of k.
func (k Key) String() string {
	return base58.Encode(k)
}

// Equal reports whether k and other refer to the same bytes.
func (k Key) Equal(other Key) bool {
	return bytes.Equal(k, other)
}

// IsOnCurve reports whether k decompresses to a valid point on the
// ed25519 curve, i.e. whether a private key could exist for it.
func (k Key) IsOnCurve() bool {
	if len(k) != KeySize {
		return false
	}
	var p [32]byte
	copy(p[:], k)
	var A edwards25519.ExtendedGroupElement
	return A.FromBytes(&p)
}

// WithSeed computes sha256(base || seed || programID) and returns that
// digest as a Key. Unlike DeriveAddress, the result is not checked against
// the ed25519 curve: it's a deterministic alias for base, not a program
// address.
func WithSeed(base Key, seed string, programID Key) (Key, error) {
	if err := CheckKey(base); err != nil {
		return nil, errors.Wrap(err, "invalid base key")
	}
	if err := CheckKey(programID); err != nil {
		return nil, errors.Wrap(err, "invalid program id")
	}

	h := sha256.New()
	h.Write(base)
	h.Write([]byte(seed))
	h.Write(programID)
	return Key(h.Sum(nil)), nil
}

// DeriveAddress computes D = sha256(seeds[0] || ... || programID ||
// "ProgramDerivedAddress") and returns it, failing with ErrInvalidSeeds if
// D lies on the ed25519 curve (in which case a private key could exist for
// it, defeating the purpose of a program-derived address).
func DeriveAddress(seeds [][]byte, programID Key) (Key, error) {
	if len(seeds) > maxSeeds {
		return nil, errors.Wrap(ErrInvalidSeeds, "too many seeds")
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, errors.Wrap(ErrInvalidSeeds, "max seed length exceeded")
		}
		h.Write(s)
	}
	h.Write(programID)
	h.Write([]byte("ProgramDerivedAddress"))

	digest := h.Sum(nil)
	key := Key(digest)
	if key.IsOnCurve() {
		return nil, ErrInvalidSeeds
	}
	return key, nil
}

// FindAddress iterates the bump seed from 255 down to 1, returning the
// first bump for which DeriveAddress(seeds+[bump], programID) succeeds.
// Bump 0 is never tried; the search direction (high to low) matches the
// reference implementation and is load-bearing for callers that expect a
// specific bump for a given seed set.
func FindAddress(seeds [][]byte, programID Key) (Key, uint8, error) {
	bump := byte(math.MaxUint8)
	for bump > 0 {
		candidate, err := DeriveAddress(append(append([][]byte{}, seeds...), []byte{bump}), programID)
		if err == nil {
			return candidate, bump, nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return nil, 0, err
		}
		bump--
	}
	return nil, 0, ErrNoNonce
}
