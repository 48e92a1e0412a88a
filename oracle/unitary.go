package oracle

import "gonum.org/v1/gonum/mat"

// numpy allclose defaults; entries of a permutation matrix are exactly 0 or 1
// so these leave comfortable slack.
const (
	atol = 1e-8
	rtol = 1e-5
)

// IsUnitary reports whether m is unitary within a fixed floating-point
// tolerance, i.e. whether m times its conjugate transpose is the identity.
// All matrices in this module are real-valued, so the conjugate transpose is
// the plain transpose. Non-square matrices are not unitary.
func IsUnitary(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	var prod mat.Dense
	prod.Mul(m, m.T())
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			var want float64
			if i == j {
				want = 1
			}
			diff := prod.At(i, j) - want
			if diff < 0 {
				diff = -diff
			}
			if diff > atol+rtol*want {
				return false
			}
		}
	}
	return true
}
