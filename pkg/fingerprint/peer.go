package fingerprint

import (
	"errors"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

var (
	errNotOnCurve    = errors.New("fingerprint: input point is not on the curve")
	errIdentityPoint = errors.New("fingerprint: input point is the identity")
)

// Peer implements the cooperating-peer side of spec.md §4.6: given an
// incoming blinded point B, return E_i = [s_i] B. It holds only the
// immutable share s_i; it never retains B or E_i across calls, and
// never learns (or needs) the initiator's identity for correctness.
type Peer struct {
	share curve.Scalar
}

// NewPeer returns a Peer that evaluates with the given immutable share.
func NewPeer(share curve.Scalar) *Peer {
	return &Peer{share: share}
}

// ComputeExponent implements CooperationService.ComputeExponent: reject
// malformed/off-curve input, then return [s_i] b. b has already been
// curve-validated by the wire decoder before reaching here; IsOnCurve is
// re-checked defensively since Peer may also be called directly by
// in-process callers (internal/localnet) that bypass the wire codec.
func (p *Peer) ComputeExponent(b curve.Point) (curve.Point, error) {
	if !b.IsOnCurve() {
		return curve.Point{}, newErr(KindInvalidInput, errNotOnCurve)
	}
	if b.IsIdentity() {
		return curve.Point{}, newErr(KindInvalidInput, errIdentityPoint)
	}
	return b.Act(p.share), nil
}
