// Package curve provides the field and group arithmetic (component C1)
// used throughout the fingerprinting protocol: scalars in F_q and points
// in the prime-order group G, both backed by BN254 (the curve the
// Ethereum precompile ecosystem, and this spec, call "BN256").
package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ScalarSize is the fixed-width big-endian encoding size of a scalar.
const ScalarSize = fr.Bytes

// Scalar is an element of F_q, the BN254 scalar field. The zero value is
// the field element 0; it is not a valid blinding factor or share index,
// but is otherwise a normal, reduced value.
type Scalar struct {
	v fr.Element
}

// NewScalar returns the zero scalar.
func NewScalar() Scalar {
	return Scalar{}
}

// NewScalarFromUint64 returns the scalar representing n.
func NewScalarFromUint64(n uint64) Scalar {
	var s Scalar
	s.v.SetUint64(n)
	return s
}

// RandomScalar draws a uniform element of F_q using a cryptographically
// secure source. It never returns the zero scalar, so callers that need
// F_q \ {0} (blinding factors, share indices, polynomial coefficients
// that must not vanish) can use it directly without an extra rejection
// loop of their own.
func RandomScalar() (Scalar, error) {
	for {
		var s Scalar
		if _, err := s.v.SetRandom(); err != nil {
			return Scalar{}, fmt.Errorf("curve: sampling scalar: %w", err)
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Equal reports whether s and other represent the same field element.
func (s Scalar) Equal(other Scalar) bool {
	return s.v.Equal(&other.v)
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	var out Scalar
	out.v.Add(&s.v, &other.v)
	return out
}

// Sub returns s - other.
func (s Scalar) Sub(other Scalar) Scalar {
	var out Scalar
	out.v.Sub(&s.v, &other.v)
	return out
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	var out Scalar
	out.v.Mul(&s.v, &other.v)
	return out
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	var out Scalar
	out.v.Neg(&s.v)
	return out
}

// Inverse returns s^-1. Calling it on the zero scalar is a programmer
// error (every call site that can reach zero here — Lagrange
// denominators, the blinding-factor inverse — has already excluded zero
// upstream), so it panics rather than returning a silently wrong zero.
func (s Scalar) Inverse() Scalar {
	if s.IsZero() {
		panic("curve: inverse of zero scalar")
	}
	var out Scalar
	out.v.Inverse(&s.v)
	return out
}

// Bytes returns the big-endian canonical encoding of s.
func (s Scalar) Bytes() [ScalarSize]byte {
	return s.v.Bytes()
}

// SetBytes reduces the big-endian bytes mod q and stores the result in s,
// returning s. Unlike ScalarFromCanonicalBytes, it never rejects input —
// use it only where reduction-on-overflow is an acceptable (non-wire)
// internal convenience, such as folding a hash output into F_q.
func (s Scalar) SetBytes(b []byte) Scalar {
	var out Scalar
	out.v.SetBytes(b)
	return out
}

// ScalarFromCanonicalBytes decodes a big-endian 32-byte encoding,
// rejecting values >= q (non-canonical encodings). This is the strict
// wire-format decoder; Base58 share/secret decoding funnels through it.
func ScalarFromCanonicalBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("curve: scalar must be %d bytes, got %d", ScalarSize, len(b))
	}
	bi := new(big.Int).SetBytes(b)
	if bi.Cmp(fr.Modulus()) >= 0 {
		return Scalar{}, errors.New("curve: scalar encoding >= field modulus")
	}
	var out Scalar
	out.v.SetBigInt(bi)
	return out, nil
}

// NewScalarFromBigInt reduces n mod q and returns the resulting scalar.
// Unlike ScalarFromCanonicalBytes it never rejects input, mirroring
// SetBytes's reduce-don't-reject convention; callers that need strict
// canonical-encoding checks should use ScalarFromCanonicalBytes instead.
func NewScalarFromBigInt(n *big.Int) Scalar {
	var out Scalar
	out.v.SetBigInt(n)
	return out
}

// BigInt returns the scalar as a non-negative big.Int in [0, q).
func (s Scalar) BigInt() *big.Int {
	var bi big.Int
	s.v.BigInt(&bi)
	return &bi
}

func (s Scalar) String() string {
	return s.v.String()
}
