package fingerprint

import (
	"context"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/math/polynomial"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// Coordinator is the interface the Cooperative engine needs from
// component C7: choosing the cooperating set per the §4.6 step-3
// selection policy, and fanning out a blinded point to gather partial
// evaluations. pkg/coordinator.Pool is the production implementation;
// tests substitute an in-process fake.
type Coordinator interface {
	// ChooseCooperatingSet returns a set S with |S| = threshold and
	// self in S, per the selection policy of spec.md §4.6 step 3.
	ChooseCooperatingSet(threshold int) (party.IDSlice, error)
	// Gather sends b to every peer in cooperating (which must exclude
	// self) and returns each peer's partial evaluation E_i, keyed by
	// ID. It must return an error (KindQuorumLost or KindTimeout) if
	// fewer than len(cooperating) peers respond before ctx is done.
	Gather(ctx context.Context, b curve.Point, cooperating party.IDSlice) (map[party.ID]curve.Point, error)
}

// CooperativeEngine is the initiator side of spec.md §4.6's Cooperative
// mode: it holds this agent's own share and delegates peer fan-out to a
// Coordinator.
type CooperativeEngine struct {
	self      party.ID
	selfShare curve.Scalar
	threshold int
	coord     Coordinator
}

// NewCooperativeEngine returns an Engine that reconstructs fingerprints
// by cooperating with threshold-1 peers through coord.
func NewCooperativeEngine(self party.ID, selfShare curve.Scalar, threshold int, coord Coordinator) *CooperativeEngine {
	return &CooperativeEngine{self: self, selfShare: selfShare, threshold: threshold, coord: coord}
}

// Fingerprint implements Engine, walking the state machine of spec.md
// §4.6 exactly: New -> Hashing -> Mapping -> Blinding -> Gathering ->
// {Combining -> Finalizing -> Done | Failed}.
func (e *CooperativeEngine) Fingerprint(ctx context.Context, t txn.Transaction) (string, error) {
	m := newMachine()

	if err := t.Validate(); err != nil {
		return "", newErr(KindInvalidInput, err)
	}
	m.advance(StateHashing)

	p := HashToPoint(t)
	m.advance(StateMapping)

	r, err := curve.RandomScalar()
	if err != nil {
		return "", newErr(KindInternal, err)
	}
	b := p.Act(r)

	cooperating, err := e.coord.ChooseCooperatingSet(e.threshold)
	if err != nil {
		return "", newErr(KindQuorumLost, err)
	}
	if !cooperating.Contains(e.self) {
		return "", newErrf(KindInternal, "cooperating set %v does not contain self %q", cooperating, e.self)
	}
	m.advance(StateBlinding)

	eSelf := b.Act(e.selfShare)

	others := make(party.IDSlice, 0, len(cooperating)-1)
	for _, id := range cooperating {
		if id != e.self {
			others = append(others, id)
		}
	}

	m.advance(StateGathering)
	partials, err := e.coord.Gather(ctx, b, others)
	if err != nil {
		m.advance(StateFailed)
		return "", err
	}
	partials[e.self] = eSelf
	m.advance(StateCombining)

	// The coordinator may have substituted a replacement peer for one
	// in the originally proposed `cooperating` (spec.md §4.7); the
	// Lagrange set must match who actually contributed, so it is
	// derived from partials' keys rather than trusted from the
	// pre-replacement proposal.
	actual := make(party.IDSlice, 0, len(partials))
	for id := range partials {
		actual = append(actual, id)
	}

	y, err := combine(actual, partials)
	if err != nil {
		return "", newErr(KindInternal, err)
	}
	y = y.Act(r.Inverse())
	m.advance(StateFinalizing)

	digest := PointToFieldElements(y)
	m.advance(StateDone)

	return EncodeDigest(digest), nil
}

// combine implements spec.md §4.6 step 6: Y_blinded = sum_i [lambda_i] E_i
// over the cooperating set S, using the Lagrange-at-zero coefficients.
func combine(cooperating party.IDSlice, partials map[party.ID]curve.Point) (curve.Point, error) {
	coeffs := polynomial.Lagrange(cooperating)
	sum := curve.Identity()
	for _, id := range cooperating {
		e, ok := partials[id]
		if !ok {
			return curve.Point{}, newErrf(KindInternal, "missing partial evaluation from %q", id)
		}
		sum = sum.Add(e.Act(coeffs[id]))
	}
	return sum, nil
}
