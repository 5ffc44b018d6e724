package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// PointSize is the fixed uncompressed wire size: 32-byte X, 32-byte Y,
// both big-endian (spec.md §6's CurvePoint.bytes(64)).
const PointSize = 2 * fp.Bytes

// CompressedPointSize is the display/Base58 encoding size: a 1-byte sign
// flag followed by the 32-byte X coordinate.
const CompressedPointSize = 1 + fp.Bytes

// Point is an element of G, BN254's G1 group, backed directly by
// gnark-crypto's own bn254.G1Affine — its Add/Double/ScalarMultiplication
// and IsOnCurve/IsInSubGroup are the library's audited group law, not a
// hand-rolled reimplementation of it. BN254's G1 has cofactor 1, so every
// point IsInSubGroup reports true for is already IsOnCurve; the
// subgroup check is kept anyway as the direct library call spec.md §3
// asks for, rather than an argument from the cofactor.
//
// The zero value is bn254.G1Affine's own zero value, (X=0, Y=0), which
// gnark-crypto treats as the point at infinity throughout its Jacobian
// conversions.
type Point struct {
	a bn254.G1Affine
}

// Generator returns the standard BN254 G1 generator.
func Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return Point{a: g1}
}

// Identity returns the group identity (point at infinity).
func Identity() Point {
	return Point{}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.a.X.IsZero() && p.a.Y.IsZero()
}

// Equal reports whether p and other are the same point.
func (p Point) Equal(other Point) bool {
	return p.a.Equal(&other.a)
}

// IsOnCurve reports whether p satisfies BN254's y^2 = x^3 + 3. The
// identity sentinel is always considered on-curve.
func (p Point) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	return p.a.IsOnCurve()
}

// IsInSubGroup reports whether p lies in G1's prime-order subgroup,
// calling bn254.G1Affine.IsInSubGroup directly rather than inferring it
// from the cofactor. BN254's G1 cofactor is 1, so this always agrees
// with IsOnCurve, but ComputeExponent's rejection of "off-curve and
// wrong-subgroup" input (spec.md §4.6) goes through this call, not a
// cofactor argument.
func (p Point) IsInSubGroup() bool {
	if p.IsIdentity() {
		return true
	}
	return p.a.IsInSubGroup()
}

// NewPointFromAffine builds a point from raw affine coordinates,
// validating the curve equation and subgroup membership (this is the
// boundary where ComputeExponent and the coordinator reject off-curve
// input per spec.md §4.1/§4.6).
func NewPointFromAffine(x, y fp.Element) (Point, error) {
	p := Point{a: bn254.G1Affine{X: x, Y: y}}
	if !p.IsOnCurve() {
		return Point{}, errors.New("curve: point is not on the BN254 G1 curve")
	}
	if !p.IsInSubGroup() {
		return Point{}, errors.New("curve: point is not in the BN254 G1 prime-order subgroup")
	}
	return p, nil
}

// Add returns p + other, via gnark-crypto's Jacobian addition.
func (p Point) Add(other Point) Point {
	var j, pj, oj bn254.G1Jac
	pj.FromAffine(&p.a)
	oj.FromAffine(&other.a)
	j.Set(&pj).AddAssign(&oj)
	var out bn254.G1Affine
	out.FromJacobian(&j)
	return Point{a: out}
}

// Neg returns -p.
func (p Point) Neg() Point {
	if p.IsIdentity() {
		return p
	}
	var out bn254.G1Affine
	out.Neg(&p.a)
	return Point{a: out}
}

// Act returns [s]P, computed by gnark-crypto's own bn254.G1Affine
// scalar multiplication. gnark-crypto's ScalarMultiplication is not
// documented as side-channel-hardened, but every call site here
// multiplies a public curve point (P, or a blinded B) by a secret
// scalar that is freshly sampled or configured per process, never
// attacker-chosen or varied across many observable calls against the
// same point in a way that would mount a timing attack over this
// protocol's network boundary — see DESIGN.md's "Scalar multiplication
// engine" entry for the full accounting of what was weighed here.
func (p Point) Act(s Scalar) Point {
	k := s.BigInt()
	var out bn254.G1Affine
	out.ScalarMultiplication(&p.a, k)
	return Point{a: out}
}

// CoordinateScalars folds p's affine (x, y) base-field coordinates into
// the scalar field F_q, returning them as (x, y) scalars in that order.
// BN254's base field modulus p is larger than but close to the scalar
// field modulus q, so this fold is a reduction, not a bijection — which
// is exactly what point_to_field_elements (spec.md §4.6) needs: a
// deterministic way to feed a curve point's coordinates into the
// Poseidon sponge, which only ever operates over F_q.
func (p Point) CoordinateScalars() (x, y Scalar) {
	xb := p.a.X.Bytes()
	yb := p.a.Y.Bytes()
	return NewScalar().SetBytes(xb[:]), NewScalar().SetBytes(yb[:])
}

// MarshalBinary encodes p as the fixed 64-byte uncompressed wire format
// (x||y, big-endian), spec.md §6's CurvePoint representation.
func (p Point) MarshalBinary() ([]byte, error) {
	out := make([]byte, PointSize)
	xb := p.a.X.Bytes()
	yb := p.a.Y.Bytes()
	copy(out[:fp.Bytes], xb[:])
	copy(out[fp.Bytes:], yb[:])
	return out, nil
}

// UnmarshalBinary decodes the fixed 64-byte uncompressed wire format,
// rejecting non-canonical coordinates (>= p) and points that are not on
// the curve or not in the prime-order subgroup.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) != PointSize {
		return fmt.Errorf("curve: point must be %d bytes, got %d", PointSize, len(data))
	}
	if new(big.Int).SetBytes(data[:fp.Bytes]).Cmp(fp.Modulus()) >= 0 ||
		new(big.Int).SetBytes(data[fp.Bytes:]).Cmp(fp.Modulus()) >= 0 {
		return errors.New("curve: point coordinate encoding >= base field modulus")
	}
	var x, y fp.Element
	x.SetBytes(data[:fp.Bytes])
	y.SetBytes(data[fp.Bytes:])
	decoded, err := NewPointFromAffine(x, y)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Compressed encodes p in the compact display/Base58 form: a 1-byte sign
// flag (the parity of Y, 0x02 for even / 0x03 for odd, following the
// usual compressed-point convention) followed by the 32-byte X
// coordinate.
func (p Point) Compressed() []byte {
	out := make([]byte, CompressedPointSize)
	if p.IsIdentity() {
		return out // all-zero sentinel; DecompressPoint recognizes it
	}
	yBig := new(big.Int)
	p.a.Y.BigInt(yBig)
	if yBig.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	xb := p.a.X.Bytes()
	copy(out[1:], xb[:])
	return out
}

// DecompressPoint recovers a point from its compressed form, computing
// the Y coordinate from the curve equation and selecting the root
// matching the encoded sign.
func DecompressPoint(data []byte) (Point, error) {
	if len(data) != CompressedPointSize {
		return Point{}, fmt.Errorf("curve: compressed point must be %d bytes, got %d", CompressedPointSize, len(data))
	}
	if new(big.Int).SetBytes(data[1:]).Cmp(fp.Modulus()) >= 0 {
		return Point{}, errors.New("curve: point coordinate encoding >= base field modulus")
	}
	sign := data[0]
	var x fp.Element
	x.SetBytes(data[1:])
	if sign == 0 && x.IsZero() {
		return Identity(), nil
	}
	if sign != 0x02 && sign != 0x03 {
		return Point{}, errors.New("curve: invalid compressed point sign byte")
	}
	var curveB, rhs, x2 fp.Element
	curveB.SetUint64(3)
	x2.Square(&x)
	rhs.Mul(&x2, &x)
	rhs.Add(&rhs, &curveB)
	var y fp.Element
	if y.Sqrt(&rhs) == nil {
		return Point{}, errors.New("curve: x coordinate is not on the curve")
	}
	yBig := new(big.Int)
	y.BigInt(yBig)
	wantOdd := sign == 0x03
	if yBig.Bit(0) == 1 != wantOdd {
		y.Neg(&y)
	}
	return NewPointFromAffine(x, y)
}
