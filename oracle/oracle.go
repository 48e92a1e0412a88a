// Package oracle builds the unitary matrix of a quantum oracle from the truth
// table of a boolean function f: {0,1}^n -> {0,1}^n.
//
// A classical function is in general not reversible, so it cannot be a unitary
// by itself. Build embeds f into a permutation matrix on n+1 qubits, where the
// extra (scratch) qubit absorbs the collisions of a two-to-one function. The
// function must be one-to-one, or two-to-one with a single nonzero mask s such
// that f(x) = f(x xor s) for all x; anything else is rejected.
package oracle

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/mat"

	"github.com/consensys/simon/bitstring"
	"github.com/consensys/simon/logger"
)

var (
	// ErrShape is returned when the mapping table length is not a power of
	// two, or when an output entry does not have width n.
	ErrShape = errors.New("oracle: mapping table must hold 2^n outputs of width n")

	// ErrInvalidMapping is returned when the function is neither one-to-one
	// nor two-to-one.
	ErrInvalidMapping = errors.New("oracle: function must be one-to-one or two-to-one")
)

// Build returns the unitary matrix of the oracle for the function described
// by mappings; mappings[j] is f(j), with j read as a big-endian bitstring.
//
// The result is a 2^(n+1) x 2^(n+1) permutation matrix acting on the scratch
// qubit (most significant index bit) followed by the n input qubits. Column
// x with scratch 0 is routed to f(x), with the scratch output bit
// distinguishing the two preimages of a colliding output. It assumes the
// scratch qubit starts in |0>: the columns only reachable with scratch 1 are
// filled purely to complete the permutation.
func Build(mappings []string) (*mat.Dense, error) {
	size := len(mappings)
	if size == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: got %d outputs", ErrShape, size)
	}
	n := bits.TrailingZeros(uint(size))

	log := logger.Logger()

	dim := 2 * size
	u := mat.NewDense(dim, dim, nil)

	// counts[i] is the number of inputs routed to output i so far; pending
	// tracks the outputs that still have at least one free row.
	counts := make([]int, size)
	pending := bitset.New(uint(size))
	pending.FlipRange(0, uint(size))

	distinct := 0
	for j, s := range mappings {
		if len(s) != n {
			return nil, fmt.Errorf("%w: output %d has width %d, want %d", ErrShape, j, len(s), n)
		}
		i, err := bitstring.ToInt(s)
		if err != nil {
			return nil, err
		}
		counts[i]++
		switch counts[i] {
		case 1:
			distinct++
			u.Set(int(i), j, 1)
		case 2:
			// both rows of output i are now taken; the colliding input
			// lands on the shifted row, scratch bit 1
			pending.Clear(uint(i))
			u.Set(int(i)+size, j, 1)
		default:
			return nil, fmt.Errorf("%w: output %q used %d times", ErrInvalidMapping, s, counts[i])
		}
	}

	switch distinct {
	case size:
		// one-to-one: the top-left block is already a permutation matrix,
		// the scratch qubit is not needed
		var out mat.Dense
		out.Kronecker(identity(2), u.Slice(0, size, 0, size))
		log.Debug().Int("n", n).Int("distinct", distinct).Msg("built one-to-one oracle")
		return &out, nil
	case size / 2:
		// two-to-one: every output left pending was never produced by f.
		// Its two rows (scratch 0 and 1) and two of the scratch-1 input
		// columns are still empty; pair them off in increasing output
		// order to complete the permutation.
		lower := size
		for i, ok := pending.NextSet(0); ok; i, ok = pending.NextSet(i + 1) {
			u.Set(int(i), lower, 1)
			u.Set(int(i)+size, lower+1, 1)
			lower += 2
		}
		log.Debug().Int("n", n).Int("distinct", distinct).Msg("built two-to-one oracle")
		return u, nil
	default:
		return nil, fmt.Errorf("%w: %d distinct outputs for %d inputs", ErrInvalidMapping, distinct, size)
	}
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
