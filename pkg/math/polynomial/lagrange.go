package polynomial

import (
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

// Lagrange computes, for every ID in ids, the Lagrange basis coefficient
// evaluated at x=0:
//
//	L_i(0) = prod_{j != i} ( x_j / (x_j - x_i) )
//
// spec.md §4.6's Combining step sums E_i^{L_i(0)} over the cooperating
// set; this is the scalar half of that computation, shared by both the
// plaintext-secret reconstruction path (dealer verification, tests) and
// the reconstruction-in-the-exponent path (pkg/fingerprint).
func Lagrange(ids party.IDSlice) map[party.ID]curve.Scalar {
	coeffs := make(map[party.ID]curve.Scalar, len(ids))
	for _, i := range ids {
		xi := i.Scalar()
		num := curve.NewScalarFromUint64(1)
		den := curve.NewScalarFromUint64(1)
		for _, j := range ids {
			if j == i {
				continue
			}
			xj := j.Scalar()
			num = num.Mul(xj)
			den = den.Mul(xj.Sub(xi))
		}
		coeffs[i] = num.Mul(den.Inverse())
	}
	return coeffs
}
