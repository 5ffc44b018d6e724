package fingerprint

import (
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/base58"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/hashtocurve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/poseidon"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// HashToPoint runs §4.2+§4.3: canonicalize T, absorb it into a fresh
// Poseidon sponge, and map the resulting pre-hash scalar into G. This is
// the C4->C2->C3 leg of the data flow, shared identically by both the
// Naive and Cooperative engines.
func HashToPoint(t txn.Transaction) curve.Point {
	elements := txn.Canonicalize(t)
	h := poseidon.Hash(elements...)
	return hashtocurve.Map(h)
}

// PointToFieldElements implements spec.md §4.6's point_to_field_elements:
// fold Q's affine (x, y) into two F_q elements, in that order, feed them
// to a freshly initialized sponge, and squeeze 32 bytes.
func PointToFieldElements(q curve.Point) []byte {
	x, y := q.CoordinateScalars()
	s := poseidon.New()
	s.Absorb(x, y)
	return s.SqueezeBytes(32)
}

// EncodeDigest is component C9: Base58 of the 32-byte squeeze, the same
// alphabet as the share/secret codec.
func EncodeDigest(digest []byte) string {
	return base58.EncodeFingerprint(digest)
}
