// Package statevector implements the dense state-vector kernel backing the
// local backend. It executes exactly the gate set the circuit builders emit;
// it is not a general-purpose simulator.
package statevector

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrQubit = errors.New("statevector: qubit index out of range")
	ErrGate  = errors.New("statevector: gate dimension does not match target count")
)

// Vector is the amplitude vector of an n-qubit register, initialized to
// |0...0>. Qubit q maps to bit q of the basis index.
type Vector struct {
	amps []complex128
	n    int
}

// New returns an n-qubit register in the all-zero basis state.
func New(n int) *Vector {
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &Vector{amps: amps, n: n}
}

// NewBasis returns an n-qubit register prepared in basis state idx.
func NewBasis(n int, idx uint64) *Vector {
	amps := make([]complex128, 1<<uint(n))
	amps[idx] = 1
	return &Vector{amps: amps, n: n}
}

// NumQubits returns the register width.
func (v *Vector) NumQubits() int {
	return v.n
}

// Amplitude returns the amplitude of basis state idx.
func (v *Vector) Amplitude(idx uint64) complex128 {
	return v.amps[idx]
}

// Apply applies the 2^k x 2^k real gate matrix g to the listed target qubits,
// k = len(targets). targets[0] is the most significant index bit of g, which
// matches the operand order of circuit instructions.
func (v *Vector) Apply(g mat.Matrix, targets ...int) error {
	k := len(targets)
	dim := 1 << uint(k)
	if r, c := g.Dims(); r != dim || c != dim {
		return fmt.Errorf("%w: %dx%d gate on %d qubits", ErrGate, r, c, k)
	}
	seen := make(map[int]struct{}, k)
	for _, q := range targets {
		if q < 0 || q >= v.n {
			return fmt.Errorf("%w: %d", ErrQubit, q)
		}
		if _, dup := seen[q]; dup {
			return fmt.Errorf("%w: duplicate target %d", ErrQubit, q)
		}
		seen[q] = struct{}{}
	}

	out := make([]complex128, len(v.amps))
	for idx, amp := range v.amps {
		if amp == 0 {
			continue
		}
		// gather the gate-local column index from the target qubit bits
		col := 0
		for pos, q := range targets {
			if idx>>uint(q)&1 == 1 {
				col |= 1 << uint(k-1-pos)
			}
		}
		for row := 0; row < dim; row++ {
			gij := g.At(row, col)
			if gij == 0 {
				continue
			}
			// scatter onto the basis state with the target bits replaced
			nidx := idx
			for pos, q := range targets {
				if row>>uint(k-1-pos)&1 == 1 {
					nidx |= 1 << uint(q)
				} else {
					nidx &^= 1 << uint(q)
				}
			}
			out[nidx] += complex(gij, 0) * amp
		}
	}
	v.amps = out
	return nil
}

// Sample draws a basis state index from the measurement distribution.
func (v *Vector) Sample(rng *rand.Rand) uint64 {
	r := rng.Float64()
	var acc float64
	for idx, amp := range v.amps {
		re, im := real(amp), imag(amp)
		acc += re*re + im*im
		if r < acc {
			return uint64(idx)
		}
	}
	return uint64(len(v.amps) - 1)
}

// Hadamard is the 2x2 Hadamard gate.
func Hadamard() *mat.Dense {
	const s = 0.7071067811865476 // 1/sqrt(2)
	return mat.NewDense(2, 2, []float64{s, s, s, -s})
}

// CNOT is the controlled-NOT gate; the first target qubit is the control.
func CNOT() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})
}
