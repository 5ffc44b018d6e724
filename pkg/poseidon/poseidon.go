// Package poseidon implements the fixed-parameter Poseidon sponge
// (component C2) used for both the transaction pre-hash and the final
// fingerprint squeeze. Every parameter here is part of the wire format:
// changing Width, FullRounds, PartialRounds, or the capacity
// initialization would silently invalidate every previously issued
// fingerprint, so they are declared as constants rather than
// configuration.
package poseidon

import (
	"math/big"
	"sync"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

const (
	// Width is the sponge's state size in field elements.
	Width = 3
	// Rate is the number of elements absorbed/squeezed per permutation call.
	Rate = Width - Capacity
	// Capacity is the number of state elements never exposed directly to
	// absorbed input or squeezed output.
	Capacity = 1
	// FullRounds is the total number of full S-box rounds, split evenly
	// before and after the partial-round block.
	FullRounds = 8
	// PartialRounds is the number of rounds applying the S-box to only
	// the first state element.
	PartialRounds = 57
	// SchemeVersion identifies this fixed parameter set and capacity
	// placement. A future incompatible change ships as SchemeVersion = 2
	// with its own sponge parameters, never by mutating this one.
	SchemeVersion = 1
)

var (
	schedule     constantSchedule
	scheduleOnce sync.Once
)

func getSchedule() constantSchedule {
	scheduleOnce.Do(func() {
		schedule = generateConstants()
	})
	return schedule
}

// capacityTag is T_s = 2^64, the value written into the capacity lane
// before any input is absorbed (spec.md §4.2's versioned scheme). It
// domain-separates this sponge's capacity initialization from a
// zero-initialized one.
func capacityTag() curve.Scalar {
	tag := new(big.Int).Lsh(big.NewInt(1), 64)
	return curve.NewScalarFromBigInt(tag)
}

// Sponge is a Poseidon sponge instance over F_q. The zero value is not
// usable; construct with New.
type Sponge struct {
	state        [Width]curve.Scalar
	sched        constantSchedule
	rateIndex    int // next free slot in the rate portion during absorption
	everPermuted bool
	squeezed     bool
}

// New returns a fresh sponge with the capacity lane initialized to
// capacityTag() and the rate lanes zeroed.
func New() *Sponge {
	s := &Sponge{sched: getSchedule()}
	s.state[Width-1] = capacityTag()
	return s
}

func (s *Sponge) permute() {
	s.everPermuted = true
	rcs := s.sched.roundConstants
	mds := s.sched.mds
	halfFull := FullRounds / 2

	applyFull := func(round int) {
		for i := 0; i < Width; i++ {
			s.state[i] = s.state[i].Add(rcs[round][i])
		}
		for i := 0; i < Width; i++ {
			s.state[i] = pow5(s.state[i])
		}
		s.mix(mds)
	}
	applyPartial := func(round int) {
		for i := 0; i < Width; i++ {
			s.state[i] = s.state[i].Add(rcs[round][i])
		}
		s.state[0] = pow5(s.state[0])
		s.mix(mds)
	}

	round := 0
	for i := 0; i < halfFull; i++ {
		applyFull(round)
		round++
	}
	for i := 0; i < PartialRounds; i++ {
		applyPartial(round)
		round++
	}
	for i := 0; i < halfFull; i++ {
		applyFull(round)
		round++
	}
}

func (s *Sponge) mix(mds [Width][Width]curve.Scalar) {
	var next [Width]curve.Scalar
	for i := 0; i < Width; i++ {
		acc := curve.NewScalar()
		for j := 0; j < Width; j++ {
			acc = acc.Add(mds[i][j].Mul(s.state[j]))
		}
		next[i] = acc
	}
	s.state = next
}

func pow5(x curve.Scalar) curve.Scalar {
	x2 := x.Mul(x)
	x4 := x2.Mul(x2)
	return x4.Mul(x)
}

// Absorb feeds field elements into the sponge, permuting whenever the
// rate portion fills. Absorb must not be called after Finalize or
// SqueezeBytes.
func (s *Sponge) Absorb(elements ...curve.Scalar) {
	if s.squeezed {
		panic("poseidon: Absorb called after squeezing has started")
	}
	for _, e := range elements {
		s.state[s.rateIndex] = s.state[s.rateIndex].Add(e)
		s.rateIndex++
		if s.rateIndex == Rate {
			s.permute()
			s.rateIndex = 0
		}
	}
}

// Finalize permutes any pending partial block (padding the remaining
// rate lanes with nothing further, per the fixed-length framing used
// throughout this protocol — every caller absorbs a statically known
// number of elements) and returns the first rate lane as a single
// field-element digest.
func (s *Sponge) Finalize() curve.Scalar {
	if !s.squeezed {
		if s.rateIndex != 0 || !s.everPermuted {
			s.permute()
			s.rateIndex = 0
		}
		s.squeezed = true
	}
	return s.state[0]
}

// SqueezeBytes returns n bytes of sponge output, concatenating each rate
// lane's canonical big-endian encoding and permuting between groups as
// needed. Call Finalize first if a single field-element digest is all
// that is required; SqueezeBytes is for C9's display-length fingerprint
// output.
func (s *Sponge) SqueezeBytes(n int) []byte {
	if !s.squeezed {
		s.Finalize()
	}
	out := make([]byte, 0, n)
	lane := 0
	for len(out) < n {
		if lane == Rate {
			s.permute()
			lane = 0
		}
		b := s.state[lane].Bytes()
		out = append(out, b[:]...)
		lane++
	}
	return out[:n]
}

// Hash is a convenience one-shot helper: absorb elements and return the
// single-element digest.
func Hash(elements ...curve.Scalar) curve.Scalar {
	s := New()
	s.Absorb(elements...)
	return s.Finalize()
}
