// Package shamir implements component C5's share-generation step: given
// a threshold and an agent count, sample a master secret and the
// polynomial evaluations each agent receives.
package shamir

import (
	"fmt"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/math/polynomial"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

// Share is one agent's point on the sharing polynomial.
type Share struct {
	ID    party.ID
	Value curve.Scalar
}

// Shares is a dealer's full output: the master secret and every agent's
// share. Secret is populated only in the setting that produced it (the
// share-gen CLI); a deployed agent never holds more than its own Share.
type Shares struct {
	Secret curve.Scalar
	Parts  []Share
}

// Zeroize overwrites the secret and every share value, the lifetime
// discipline spec.md §3 requires of the share-gen CLI's address space
// before exit.
func (s *Shares) Zeroize() {
	s.Secret = curve.NewScalar()
	for i := range s.Parts {
		s.Parts[i].Value = curve.NewScalar()
	}
}

// GenerateShares samples a fresh master secret k in F_q \ {0} and a
// degree-(threshold-1) polynomial P with P(0) = k, returning P(1)..P(n)
// for agent IDs "1".."n". It reports the configuration failure modes
// spec.md §4.5 names: threshold < 1, threshold > agents, agents < 1.
func GenerateShares(threshold, agents int) (Shares, error) {
	if agents < 1 {
		return Shares{}, fmt.Errorf("shamir: agents must be >= 1, got %d", agents)
	}
	if threshold < 1 {
		return Shares{}, fmt.Errorf("shamir: threshold must be >= 1, got %d", threshold)
	}
	if threshold > agents {
		return Shares{}, fmt.Errorf("shamir: threshold %d exceeds agent count %d", threshold, agents)
	}

	secret, err := curve.RandomScalar()
	if err != nil {
		return Shares{}, fmt.Errorf("shamir: sampling secret: %w", err)
	}
	poly, err := polynomial.NewPolynomial(threshold, secret)
	if err != nil {
		return Shares{}, fmt.Errorf("shamir: sampling polynomial: %w", err)
	}
	defer poly.Zeroize()

	parts := make([]Share, agents)
	for i := 0; i < agents; i++ {
		id := party.ID(fmt.Sprintf("%d", i+1))
		parts[i] = Share{ID: id, Value: poly.Evaluate(id.Scalar())}
	}

	return Shares{Secret: secret, Parts: parts}, nil
}

// ValidateMembers reports the configuration failure modes spec.md §4.5
// and §6 name for a deployed set of share indices: duplicate or zero
// index, or a cooperating set smaller than the declared threshold.
func ValidateMembers(ids party.IDSlice, threshold int) error {
	seen := make(map[party.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("shamir: duplicate agent id %q", id)
		}
		seen[id] = true
		if err := id.Validate(); err != nil {
			return err
		}
	}
	if len(ids) < threshold {
		return fmt.Errorf("shamir: cooperating set size %d is below threshold %d", len(ids), threshold)
	}
	return nil
}
