// Package polynomial implements the secret-sharing polynomials and
// Lagrange-at-zero interpolation coefficients used by component C5
// (Shamir share generation) and the reconstruction-in-the-exponent step
// of C6 (Cooperative Engine combination).
package polynomial

import (
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

// Polynomial is f(x) = coefficients[0] + coefficients[1]*x + ... over
// F_q, stored lowest-degree-first so coefficients[0] is always the
// constant term (the shared secret).
type Polynomial struct {
	coefficients []curve.Scalar
}

// NewPolynomial returns a random degree-(threshold-1) polynomial whose
// constant term is secret, as spec.md §4.5 requires: f(0) = secret, and
// the remaining threshold-1 coefficients are drawn uniformly from F_q \
// {0} so no coefficient degenerates the polynomial's degree.
func NewPolynomial(threshold int, secret curve.Scalar) (Polynomial, error) {
	if threshold < 1 {
		threshold = 1
	}
	coeffs := make([]curve.Scalar, threshold)
	coeffs[0] = secret
	for i := 1; i < threshold; i++ {
		c, err := curve.RandomScalar()
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i] = c
	}
	return Polynomial{coefficients: coeffs}, nil
}

// Constant returns the polynomial's constant term, f(0).
func (p Polynomial) Constant() curve.Scalar {
	return p.coefficients[0]
}

// Degree returns the polynomial's degree, one less than the sharing
// threshold.
func (p Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Evaluate computes f(x) using Horner's method, evaluating from the
// highest-degree coefficient down.
func (p Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	result := curve.NewScalar()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// Zeroize overwrites every coefficient with the zero scalar, so a
// polynomial holding the fingerprinting secret does not outlive the
// dealer call that produced the shares (spec.md §5's lifetime
// discipline).
func (p *Polynomial) Zeroize() {
	for i := range p.coefficients {
		p.coefficients[i] = curve.NewScalar()
	}
}
