// Package gf2 solves the linear system of Simon's algorithm: given sampled
// row vectors y with y·s = 0 (mod 2), recover the mask s once the rows span
// an (n-1)-dimensional space.
package gf2

import "github.com/bits-and-blooms/bitset"

// Solver accumulates GF(2) row vectors of width n, keeping an independent
// basis in reduced row-echelon form. Bit i of a row is the coefficient of
// bit i of the mask, with bit 0 the most significant bitstring position.
type Solver struct {
	n    int
	rows []*bitset.BitSet // sorted by pivot, fully reduced
}

// NewSolver returns a solver for width-n masks.
func NewSolver(n int) *Solver {
	return &Solver{n: n}
}

// AddRow folds a sampled row into the basis. It reports whether the row was
// independent of the rows seen so far; zero and dependent rows are dropped.
func (s *Solver) AddRow(row *bitset.BitSet) bool {
	r := row.Clone()
	for _, b := range s.rows {
		p, _ := b.NextSet(0)
		if r.Test(p) {
			r.InPlaceSymmetricDifference(b)
		}
	}
	pivot, ok := r.NextSet(0)
	if !ok || pivot >= uint(s.n) {
		return false
	}
	// keep the basis fully reduced: clear the new pivot column everywhere
	for _, b := range s.rows {
		if b.Test(pivot) {
			b.InPlaceSymmetricDifference(r)
		}
	}
	at := len(s.rows)
	for i, b := range s.rows {
		p, _ := b.NextSet(0)
		if pivot < p {
			at = i
			break
		}
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[at+1:], s.rows[at:])
	s.rows[at] = r
	return true
}

// Rank returns the rank of the accumulated rows.
func (s *Solver) Rank() int {
	return len(s.rows)
}

// Mask returns the unique nonzero solution of rows·s = 0 once the rank is
// n-1, and false while the system is still underdetermined.
func (s *Solver) Mask() (*bitset.BitSet, bool) {
	if len(s.rows) != s.n-1 {
		return nil, false
	}
	pivots := bitset.New(uint(s.n))
	for _, b := range s.rows {
		p, _ := b.NextSet(0)
		pivots.Set(p)
	}
	free, ok := pivots.NextClear(0)
	if !ok || free >= uint(s.n) {
		return nil, false
	}
	// in reduced form each row reads s[pivot] = row[free] * s[free]
	mask := bitset.New(uint(s.n))
	mask.Set(free)
	for _, b := range s.rows {
		if b.Test(free) {
			p, _ := b.NextSet(0)
			mask.Set(p)
		}
	}
	return mask, true
}
