// Package wire implements component A2: the hand-wired gRPC transport
// for FingerprintService and CooperationService (spec.md §6). Protoc
// codegen is explicitly out of scope (spec.md §1), so the two services
// are registered by hand via grpc.ServiceDesc with a CBOR
// encoding.Codec standing in for generated protobuf marshaling.
package wire

import (
	"fmt"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// Money mirrors spec.md §6's Money message.
type Money struct {
	AmountBase uint64 `cbor:"amount_base"`
	AmountAtto uint64 `cbor:"amount_atto"`
	Currency   string `cbor:"currency"`
}

// Timestamp mirrors spec.md §6's Timestamp message.
type Timestamp struct {
	Seconds uint64 `cbor:"seconds"`
	Nanos   uint32 `cbor:"nanos"`
}

// Date mirrors spec.md §6's Date message.
type Date struct {
	Year  uint16 `cbor:"year"`
	Month uint8  `cbor:"month"`
	Day   uint8  `cbor:"day"`
}

// TransactionFingerprintData mirrors spec.md §6's request message for
// FingerprintService.GenerateFingerprint.
type TransactionFingerprintData struct {
	BIC      string    `cbor:"bic"`
	Amount   Money     `cbor:"amount"`
	DateTime Timestamp `cbor:"date_time"`
	WWD      Date      `cbor:"wwd"`
}

// ToTransaction converts the wire message into the domain type C4
// operates on.
func (m TransactionFingerprintData) ToTransaction() txn.Transaction {
	return txn.Transaction{
		BIC: m.BIC,
		Amount: txn.Money{
			AmountBase: m.Amount.AmountBase,
			AmountAtto: m.Amount.AmountAtto,
			Currency:   m.Amount.Currency,
		},
		DateTime: txn.Timestamp{Seconds: m.DateTime.Seconds, Nanos: m.DateTime.Nanos},
		WWD:      txn.Date{Year: m.WWD.Year, Month: m.WWD.Month, Day: m.WWD.Day},
	}
}

// FromTransaction converts a domain Transaction into its wire form.
func FromTransaction(t txn.Transaction) TransactionFingerprintData {
	return TransactionFingerprintData{
		BIC: t.BIC,
		Amount: Money{
			AmountBase: t.Amount.AmountBase,
			AmountAtto: t.Amount.AmountAtto,
			Currency:   t.Amount.Currency,
		},
		DateTime: Timestamp{Seconds: t.DateTime.Seconds, Nanos: t.DateTime.Nanos},
		WWD:      Date{Year: t.WWD.Year, Month: t.WWD.Month, Day: t.WWD.Day},
	}
}

// Fingerprint mirrors spec.md §6's response message: Base58 of the
// 32-byte squeeze.
type Fingerprint struct {
	Value string `cbor:"value"`
}

// CurvePoint mirrors spec.md §6's CurvePoint message: uncompressed
// affine bytes, x||y, big-endian (64 bytes, the same format
// curve.Point.MarshalBinary produces).
type CurvePoint struct {
	Bytes []byte `cbor:"bytes"`
}

// ToPoint decodes the wire bytes, rejecting off-curve or malformed
// input (§4.1/§4.6's parsing boundary).
func (c CurvePoint) ToPoint() (curve.Point, error) {
	var p curve.Point
	if err := p.UnmarshalBinary(c.Bytes); err != nil {
		return curve.Point{}, fmt.Errorf("wire: decoding curve point: %w", err)
	}
	return p, nil
}

// FromPoint encodes a point into its wire form.
func FromPoint(p curve.Point) (CurvePoint, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return CurvePoint{}, err
	}
	return CurvePoint{Bytes: b}, nil
}
