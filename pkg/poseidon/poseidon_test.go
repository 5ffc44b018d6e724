package poseidon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/poseidon"
)

func TestHashIsDeterministic(t *testing.T) {
	a := curve.NewScalarFromUint64(11)
	b := curve.NewScalarFromUint64(22)

	h1 := poseidon.Hash(a, b)
	h2 := poseidon.Hash(a, b)
	assert.True(t, h1.Equal(h2))
}

func TestHashDistinguishesInputs(t *testing.T) {
	a := curve.NewScalarFromUint64(11)
	b := curve.NewScalarFromUint64(22)
	c := curve.NewScalarFromUint64(33)

	assert.False(t, poseidon.Hash(a, b).Equal(poseidon.Hash(a, c)))
	assert.False(t, poseidon.Hash(a, b).Equal(poseidon.Hash(b, a)))
}

func TestHashOfEmptyInputIsMixed(t *testing.T) {
	empty := poseidon.Hash()
	assert.False(t, empty.IsZero())
}

func TestFinalizeIsIdempotent(t *testing.T) {
	s := poseidon.New()
	s.Absorb(curve.NewScalarFromUint64(1), curve.NewScalarFromUint64(2))
	first := s.Finalize()
	second := s.Finalize()
	assert.True(t, first.Equal(second))
}

func TestAbsorbAfterFinalizePanics(t *testing.T) {
	s := poseidon.New()
	s.Finalize()
	assert.Panics(t, func() {
		s.Absorb(curve.NewScalarFromUint64(1))
	})
}

func TestSqueezeBytesLengthAndDeterminism(t *testing.T) {
	mk := func() []byte {
		s := poseidon.New()
		s.Absorb(curve.NewScalarFromUint64(7), curve.NewScalarFromUint64(99))
		return s.SqueezeBytes(40)
	}
	out1 := mk()
	out2 := mk()
	assert.Len(t, out1, 40)
	assert.Equal(t, out1, out2)
}

func TestSqueezeBytesSpansMultiplePermutations(t *testing.T) {
	s := poseidon.New()
	s.Absorb(curve.NewScalarFromUint64(5))
	out := s.SqueezeBytes(curve.ScalarSize*3 + 7)
	assert.Len(t, out, curve.ScalarSize*3+7)
}

func TestMultiBlockAbsorption(t *testing.T) {
	vals := make([]curve.Scalar, poseidon.Rate*3+1)
	for i := range vals {
		vals[i] = curve.NewScalarFromUint64(uint64(i + 1))
	}
	h1 := poseidon.Hash(vals...)
	h2 := poseidon.Hash(vals...)
	assert.True(t, h1.Equal(h2))
}
