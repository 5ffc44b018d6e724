package fingerprint

import (
	"context"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// NaiveEngine holds the master secret directly and computes fingerprints
// single-handedly, per spec.md §4.6's Naive mode. Intended for
// development only; a deployed agent never configures this mode with a
// real master secret.
type NaiveEngine struct {
	secret curve.Scalar
}

// NewNaiveEngine returns an Engine that reconstructs fingerprints with
// secret held directly, with no cooperating peers.
func NewNaiveEngine(secret curve.Scalar) *NaiveEngine {
	return &NaiveEngine{secret: secret}
}

// Fingerprint implements Engine.
func (e *NaiveEngine) Fingerprint(_ context.Context, t txn.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", newErr(KindInvalidInput, err)
	}
	p := HashToPoint(t)
	y := p.Act(e.secret)
	digest := PointToFieldElements(y)
	return EncodeDigest(digest), nil
}
