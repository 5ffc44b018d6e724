package fingerprint_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/shamir"
)

func TestFingerprint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Fingerprint Protocol Engine Suite")
}

var _ = Describe("Cooperative engine", func() {
	var shares shamir.Shares

	BeforeEach(func() {
		var err error
		shares, err = shamir.GenerateShares(3, 5)
		Expect(err).NotTo(HaveOccurred())
	})

	It("produces a different blinded point on every invocation (spec.md §8 invariant 4)", func() {
		p := fingerprint.HashToPoint(sampleTransaction())
		seen := map[string]bool{}
		for i := 0; i < 10; i++ {
			r, err := curve.RandomScalar()
			Expect(err).NotTo(HaveOccurred())
			b := p.Act(r)
			bytes, err := b.MarshalBinary()
			Expect(err).NotTo(HaveOccurred())
			seen[string(bytes)] = true
		}
		Expect(len(seen)).To(Equal(10), "all 10 blinded points should be distinct")
	})

	It("returns the same partial evaluation for the same blinded point (partial-evaluation purity)", func() {
		peer := fingerprint.NewPeer(shares.Parts[0].Value)
		p := fingerprint.HashToPoint(sampleTransaction())
		r, err := curve.RandomScalar()
		Expect(err).NotTo(HaveOccurred())
		b := p.Act(r)

		e1, err := peer.ComputeExponent(b)
		Expect(err).NotTo(HaveOccurred())
		e2, err := peer.ComputeExponent(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(e1.Equal(e2)).To(BeTrue(), "ComputeExponent must depend only on b and the peer's own share")
	})

	It("every ComputeExponent output lies on the curve (spec.md §8 invariant 7)", func() {
		peer := fingerprint.NewPeer(shares.Parts[0].Value)
		p := fingerprint.HashToPoint(sampleTransaction())
		r, err := curve.RandomScalar()
		Expect(err).NotTo(HaveOccurred())
		b := p.Act(r)

		e, err := peer.ComputeExponent(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.IsOnCurve()).To(BeTrue())
	})

	It("surfaces QuorumLost when the coordinator cannot assemble a live set", func() {
		self := shares.Parts[0].ID
		coord := &alwaysFailCoordinator{}
		coop := fingerprint.NewCooperativeEngine(self, shares.Parts[0].Value, 3, coord)

		_, err := coop.Fingerprint(context.Background(), sampleTransaction())
		Expect(err).To(HaveOccurred())
		kind, ok := fingerprint.KindOf(err)
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(fingerprint.KindQuorumLost))
	})
})

type alwaysFailCoordinator struct{}

var errNoQuorum = errors.New("no healthy peers available")

func (alwaysFailCoordinator) ChooseCooperatingSet(threshold int) (party.IDSlice, error) {
	return nil, errNoQuorum
}

func (alwaysFailCoordinator) Gather(ctx context.Context, b curve.Point, cooperating party.IDSlice) (map[party.ID]curve.Point, error) {
	return nil, errNoQuorum
}
