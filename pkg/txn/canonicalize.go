package txn

import (
	"encoding/binary"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

// domainPrefix is the canonicalizer's own 8-byte domain-separation tag
// (named T_s in spec.md §4.4 rule 1, distinct from the Poseidon sponge's
// own capacity-side T_s initialization in pkg/poseidon — both exist so
// that canonicalization output is tied to this protocol's domain even
// before it reaches the sponge). Fixed at the value 1; changing it
// would invalidate every previously issued fingerprint.
var domainPrefix = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// fieldGroupSize is the byte-packing group size: 31 bytes leaves the
// high byte of every 32-byte field-element buffer zero, so every packed
// group is trivially canonical (well below the ~254-bit BN254 scalar
// field modulus).
const fieldGroupSize = 31

// Canonicalize produces the exact byte sequence of spec.md §4.4 rules
// 1-6, then packs it into 31-byte groups and returns the corresponding
// sequence of field elements ready for Poseidon absorption.
func Canonicalize(t Transaction) []curve.Scalar {
	buf := make([]byte, 0, 64)

	buf = append(buf, domainPrefix[:]...)

	bic := make([]byte, 16)
	copy(bic, t.BIC)
	buf = append(buf, bic...)

	var amountBase, amountAtto [8]byte
	binary.LittleEndian.PutUint64(amountBase[:], t.Amount.AmountBase)
	binary.LittleEndian.PutUint64(amountAtto[:], t.Amount.AmountAtto)
	buf = append(buf, amountBase[:]...)
	buf = append(buf, amountAtto[:]...)

	currency := make([]byte, 4)
	copy(currency, t.Amount.Currency)
	buf = append(buf, currency...)

	var seconds [8]byte
	var nanos [8]byte
	binary.LittleEndian.PutUint64(seconds[:], t.DateTime.Seconds)
	binary.LittleEndian.PutUint64(nanos[:], uint64(t.DateTime.Nanos))
	buf = append(buf, seconds[:]...)
	buf = append(buf, nanos[:]...)

	var year [2]byte
	binary.LittleEndian.PutUint16(year[:], t.WWD.Year)
	buf = append(buf, year[:]...)
	buf = append(buf, t.WWD.Month, t.WWD.Day)

	return packFieldElements(buf)
}

// packFieldElements splits buf into fieldGroupSize-byte groups (the
// final group zero-padded if short) and embeds each group as the low
// bytes of a canonical field element.
func packFieldElements(buf []byte) []curve.Scalar {
	n := (len(buf) + fieldGroupSize - 1) / fieldGroupSize
	out := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		start := i * fieldGroupSize
		end := start + fieldGroupSize
		if end > len(buf) {
			end = len(buf)
		}
		group := make([]byte, curve.ScalarSize)
		copy(group[curve.ScalarSize-fieldGroupSize:], buf[start:end])
		out[i] = curve.Scalar{}.SetBytes(group)
	}
	return out
}
