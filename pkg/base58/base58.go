// Package base58 provides the Bitcoin-alphabet, no-checksum encoding
// shared by share/secret serialization (component C5) and fingerprint
// output formatting (component C9). spec.md leaves the Base58 alphabet
// as an open question; this repo pins the Bitcoin alphabet via
// btcsuite's btcutil/base58, the alphabet the retrieved corpus's
// coinjoin tooling standardizes on.
package base58

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

// Encode returns the Base58 encoding of raw bytes.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode reverses Encode. It rejects strings containing characters
// outside the Bitcoin alphabet.
func Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && s != "" {
		return nil, fmt.Errorf("base58: %q is not valid base58", s)
	}
	return decoded, nil
}

// EncodeScalar encodes a scalar's canonical 32-byte big-endian form as
// Base58, the wire format used for share values and the reconstructed
// secret.
func EncodeScalar(s curve.Scalar) string {
	b := s.Bytes()
	return Encode(b[:])
}

// DecodeScalar reverses EncodeScalar, rejecting non-canonical (>= q)
// encodings the same way ScalarFromCanonicalBytes does.
func DecodeScalar(s string) (curve.Scalar, error) {
	raw, err := Decode(s)
	if err != nil {
		return curve.Scalar{}, err
	}
	if len(raw) < curve.ScalarSize {
		padded := make([]byte, curve.ScalarSize)
		copy(padded[curve.ScalarSize-len(raw):], raw)
		raw = padded
	}
	return curve.ScalarFromCanonicalBytes(raw)
}

// EncodeFingerprint encodes an arbitrary-length fingerprint digest
// (the Poseidon sponge's squeezed output) as a display string.
func EncodeFingerprint(digest []byte) string {
	return Encode(digest)
}

// DecodeFingerprint reverses EncodeFingerprint.
func DecodeFingerprint(s string) ([]byte, error) {
	return Decode(s)
}
