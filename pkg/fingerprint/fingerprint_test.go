package fingerprint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/math/polynomial"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/shamir"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/txn"
)

// fakeCoordinator runs every cooperating peer's ComputeExponent
// in-process, rather than over a real transport, so these tests focus
// on the protocol engine's logic and not on internal/wire or
// pkg/coordinator.
type fakeCoordinator struct {
	self    party.ID
	members party.IDSlice
	peers   map[party.ID]*fingerprint.Peer
}

func (f *fakeCoordinator) ChooseCooperatingSet(threshold int) (party.IDSlice, error) {
	set := make(party.IDSlice, 0, threshold)
	set = append(set, f.self)
	for _, id := range f.members {
		if len(set) == threshold {
			break
		}
		if id != f.self {
			set = append(set, id)
		}
	}
	return set, nil
}

func (f *fakeCoordinator) Gather(_ context.Context, b curve.Point, cooperating party.IDSlice) (map[party.ID]curve.Point, error) {
	out := make(map[party.ID]curve.Point, len(cooperating))
	for _, id := range cooperating {
		e, err := f.peers[id].ComputeExponent(b)
		if err != nil {
			return nil, err
		}
		out[id] = e
	}
	return out, nil
}

func sampleTransaction() txn.Transaction {
	return txn.Transaction{
		BIC:    "BCEELU21",
		Amount: txn.Money{AmountBase: 1000, AmountAtto: 0, Currency: "EUR"},
		DateTime: txn.Timestamp{
			Seconds: 1700000000,
			Nanos:   0,
		},
		WWD: txn.Date{Year: 2023, Month: 11, Day: 14},
	}
}

func buildCooperative(t *testing.T, shares shamir.Shares, threshold int, self party.ID) *fingerprint.CooperativeEngine {
	t.Helper()
	members := make(party.IDSlice, len(shares.Parts))
	peers := make(map[party.ID]*fingerprint.Peer, len(shares.Parts))
	var selfShare curve.Scalar
	for i, s := range shares.Parts {
		members[i] = s.ID
		peers[s.ID] = fingerprint.NewPeer(s.Value)
		if s.ID == self {
			selfShare = s.Value
		}
	}
	coord := &fakeCoordinator{self: self, members: members, peers: peers}
	return fingerprint.NewCooperativeEngine(self, selfShare, threshold, coord)
}

// TestNaiveVsCooperativeEquality is scenario 1 of spec.md §8: with each
// of the five agents as initiator, the cooperative result matches the
// naive reference computed from the same secret. fakeCoordinator pairs
// the initiator with the first other members in list order, so the
// cooperating sets exercised are {1,2,3}, {1,2,4} and {1,2,5}.
func TestNaiveVsCooperativeEquality(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)

	naive := fingerprint.NewNaiveEngine(shares.Secret)
	want, err := naive.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)

	allIDs := make(party.IDSlice, len(shares.Parts))
	for i, s := range shares.Parts {
		allIDs[i] = s.ID
	}

	for _, self := range allIDs {
		coop := buildCooperative(t, shares, 3, self)
		got, err := coop.Fingerprint(context.Background(), sampleTransaction())
		require.NoError(t, err)
		assert.Equal(t, want, got, "cooperative result for initiator %q must match naive", self)
	}
}

// TestDeterminismAcrossRuns is scenario 2: repeated runs with fresh
// blinding factors all agree.
func TestDeterminismAcrossRuns(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)
	coop := buildCooperative(t, shares, 3, shares.Parts[0].ID)

	first, err := coop.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		got, err := coop.Fingerprint(context.Background(), sampleTransaction())
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

// TestCollisionFreedom is scenario 3: a single differing field changes
// the fingerprint.
func TestCollisionFreedom(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)
	naive := fingerprint.NewNaiveEngine(shares.Secret)

	t0 := sampleTransaction()
	t1 := sampleTransaction()
	t1.Amount.AmountBase++

	f0, err := naive.Fingerprint(context.Background(), t0)
	require.NoError(t, err)
	f1, err := naive.Fingerprint(context.Background(), t1)
	require.NoError(t, err)
	assert.NotEqual(t, f0, f1)
}

// TestBICLengthProducesDistinctFingerprints covers the §8 boundary
// behavior: an 8-char and an 11-char BIC must not collide.
func TestBICLengthProducesDistinctFingerprints(t *testing.T) {
	secret, err := curve.RandomScalar()
	require.NoError(t, err)
	naive := fingerprint.NewNaiveEngine(secret)

	short := sampleTransaction()
	short.BIC = "BCEELU21"
	long := sampleTransaction()
	long.BIC = "BCEELU21XXX"

	fShort, err := naive.Fingerprint(context.Background(), short)
	require.NoError(t, err)
	fLong, err := naive.Fingerprint(context.Background(), long)
	require.NoError(t, err)
	assert.NotEqual(t, fShort, fLong)
}

// TestThresholdDegeneratesToNaive is the t=1 boundary: the cooperating
// set is just {self}, and the result still matches naive.
func TestThresholdDegeneratesToNaive(t *testing.T) {
	shares, err := shamir.GenerateShares(1, 4)
	require.NoError(t, err)
	naive := fingerprint.NewNaiveEngine(shares.Secret)
	want, err := naive.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)

	coop := buildCooperative(t, shares, 1, shares.Parts[0].ID)
	got, err := coop.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestInvalidTransactionIsRejected exercises the InvalidInput error kind.
func TestInvalidTransactionIsRejected(t *testing.T) {
	secret, err := curve.RandomScalar()
	require.NoError(t, err)
	naive := fingerprint.NewNaiveEngine(secret)

	bad := sampleTransaction()
	bad.BIC = "short"
	_, err = naive.Fingerprint(context.Background(), bad)
	require.Error(t, err)
	kind, ok := fingerprint.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fingerprint.KindInvalidInput, kind)
}

// TestPeerMisbehaviorCorruptsOutput documents spec.md §8 scenario 6 and
// §1's Non-goal: a peer returning a wrong partial evaluation is not
// detected, and the resulting fingerprint silently differs from the
// honest reference. Detecting this is explicitly out of scope.
func TestPeerMisbehaviorCorruptsOutput(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)
	naive := fingerprint.NewNaiveEngine(shares.Secret)
	honest, err := naive.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)

	self := shares.Parts[0].ID
	members := make(party.IDSlice, len(shares.Parts))
	peers := make(map[party.ID]*fingerprint.Peer, len(shares.Parts))
	var selfShare curve.Scalar
	for i, s := range shares.Parts {
		members[i] = s.ID
		peers[s.ID] = fingerprint.NewPeer(s.Value)
		if s.ID == self {
			selfShare = s.Value
		}
	}
	coord := &misbehavingCoordinator{fakeCoordinator: fakeCoordinator{self: self, members: members, peers: peers}, misbehaving: members[1]}
	coop := fingerprint.NewCooperativeEngine(self, selfShare, 3, coord)

	corrupted, err := coop.Fingerprint(context.Background(), sampleTransaction())
	require.NoError(t, err)
	assert.NotEqual(t, honest, corrupted)
}

// misbehavingCoordinator wraps fakeCoordinator, perturbing one peer's
// partial evaluation by adding the generator point to it (a stand-in for
// spec.md §8 scenario 6's "[s_i + 1] B").
type misbehavingCoordinator struct {
	fakeCoordinator
	misbehaving party.ID
}

func (m *misbehavingCoordinator) Gather(ctx context.Context, b curve.Point, cooperating party.IDSlice) (map[party.ID]curve.Point, error) {
	out, err := m.fakeCoordinator.Gather(ctx, b, cooperating)
	if err != nil {
		return nil, err
	}
	if e, ok := out[m.misbehaving]; ok {
		out[m.misbehaving] = e.Add(curve.Generator())
	}
	return out, nil
}

// TestPeerRejectsIdentityInput covers the ComputeExponent boundary: the
// identity point is reported as InvalidInput, never silently accepted.
func TestPeerRejectsIdentityInput(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	peer := fingerprint.NewPeer(share)

	_, err = peer.ComputeExponent(curve.Identity())
	require.Error(t, err)
	kind, ok := fingerprint.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fingerprint.KindInvalidInput, kind)
}

// TestLagrangeCombineMatchesManualReconstruction cross-checks combine's
// use of polynomial.Lagrange directly (invariant 2 restated at the
// exponent level).
func TestLagrangeCombineMatchesManualReconstruction(t *testing.T) {
	shares, err := shamir.GenerateShares(3, 5)
	require.NoError(t, err)

	ids := party.IDSlice{shares.Parts[0].ID, shares.Parts[2].ID, shares.Parts[4].ID}
	vals := map[party.ID]curve.Scalar{}
	for _, s := range shares.Parts {
		vals[s.ID] = s.Value
	}
	coeffs := polynomial.Lagrange(ids)
	reconstructed := curve.NewScalar()
	for _, id := range ids {
		reconstructed = reconstructed.Add(vals[id].Mul(coeffs[id]))
	}
	assert.True(t, reconstructed.Equal(shares.Secret))
}
