package poseidon

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

// grainLFSR reproduces the Grain-style self-shrinking linear feedback
// shift register the Poseidon reference paper uses to derive round
// constants and MDS matrices without shipping a static constant table.
// It is the same 80-bit feedback register family used by the Grain
// stream cipher (feedback taps 13, 23, 38, 51, 62, 80), seeded here from
// the permutation's own parameters so every process derives identical
// output.
type grainLFSR struct {
	state [80]uint8
}

func newGrainLFSR(fieldBits, sboxTag, width, fullRounds, partialRounds int) *grainLFSR {
	g := &grainLFSR{}
	bits := make([]uint8, 0, 80)
	pushBits := func(v, n int) {
		for i := n - 1; i >= 0; i-- {
			bits = append(bits, uint8((v>>uint(i))&1))
		}
	}
	pushBits(fieldTypePrime, 2) // field type: prime field
	pushBits(sboxTag, 4)       // S-box identifier
	pushBits(fieldBits, 12)    // field size in bits
	pushBits(width, 12)        // state width t
	pushBits(fullRounds, 10)   // R_F
	pushBits(partialRounds, 10) // R_P
	for len(bits) < 80 {
		bits = append(bits, 1)
	}
	copy(g.state[:], bits[:80])
	// Discard the first 160 generated bits, as the reference generator
	// does, so the initial header does not leak directly into output.
	for i := 0; i < 160; i++ {
		g.step()
	}
	return g
}

func (g *grainLFSR) step() uint8 {
	feedback := g.state[0] ^ g.state[13] ^ g.state[23] ^ g.state[38] ^ g.state[51] ^ g.state[62]
	out := g.state[79]
	copy(g.state[:79], g.state[1:])
	g.state[79] = feedback
	return out
}

// nextBit applies the reference generator's self-shrinking decorrelation:
// clock the register twice, and only emit the second bit when the first
// equals 1.
func (g *grainLFSR) nextBit() uint8 {
	for {
		first := g.step()
		second := g.step()
		if first == 1 {
			return second
		}
	}
}

func (g *grainLFSR) nextFieldElement(modulus *big.Int) curve.Scalar {
	for {
		bi := new(big.Int)
		for i := 0; i < modulus.BitLen(); i++ {
			bi.Lsh(bi, 1)
			if g.nextBit() == 1 {
				bi.SetBit(bi, 0, 1)
			}
		}
		if bi.Cmp(modulus) < 0 {
			return curve.NewScalarFromBigInt(bi)
		}
	}
}

type constantSchedule struct {
	roundConstants [][Width]curve.Scalar
	mds            [Width][Width]curve.Scalar
}

// fieldTypePrime and sboxTagPow5 name the grain-header fields used above;
// kept as constants purely for readability at the call site.
const (
	fieldTypePrime = 1
	sboxTagPow5    = 0
)

func generateConstants() constantSchedule {
	modulus := fr.Modulus()
	lfsr := newGrainLFSR(modulus.BitLen(), sboxTagPow5, Width, FullRounds, PartialRounds)

	totalRounds := FullRounds + PartialRounds
	rcs := make([][Width]curve.Scalar, totalRounds)
	for r := 0; r < totalRounds; r++ {
		for i := 0; i < Width; i++ {
			rcs[r][i] = lfsr.nextFieldElement(modulus)
		}
	}

	// MDS matrix via the Cauchy construction: pick 2*Width distinct field
	// elements x_0..x_{t-1}, y_0..y_{t-1} and set M[i][j] = 1/(x_i+y_j).
	// Cauchy matrices are provably MDS, the standard choice the Poseidon
	// paper itself recommends.
	xs := make([]curve.Scalar, Width)
	ys := make([]curve.Scalar, Width)
	seen := map[string]bool{}
	distinct := func() curve.Scalar {
		for {
			c := lfsr.nextFieldElement(modulus)
			if !seen[c.String()] {
				seen[c.String()] = true
				return c
			}
		}
	}
	for i := 0; i < Width; i++ {
		xs[i] = distinct()
	}
	for i := 0; i < Width; i++ {
		ys[i] = distinct()
	}

	var mds [Width][Width]curve.Scalar
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			mds[i][j] = xs[i].Add(ys[j]).Inverse()
		}
	}

	return constantSchedule{roundConstants: rcs, mds: mds}
}
