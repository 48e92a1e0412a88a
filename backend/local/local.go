// Package local implements backend.Runner in-process on a dense state
// vector. It executes only the gate set the circuit builders emit (H, CNOT
// and gates defined by the program); anything else is rejected rather than
// simulated.
package local

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/consensys/simon/backend"
	"github.com/consensys/simon/circuit"
	"github.com/consensys/simon/internal/statevector"
	"github.com/consensys/simon/logger"
)

var (
	// ErrUnknownGate is returned when a program references a gate the
	// backend cannot execute.
	ErrUnknownGate = errors.New("local: unknown gate")

	// ErrShots is returned for a non-positive shot count.
	ErrShots = errors.New("local: shot count must be positive")
)

// Backend is an in-process Runner. The zero value is not usable; call New.
type Backend struct {
	mu   sync.Mutex
	next uint32
}

var _ backend.Runner = (*Backend)(nil)

// New returns a fresh backend with an empty qubit space.
func New() *Backend {
	return &Backend{}
}

// Alloc reserves the next qubit.
func (b *Backend) Alloc() circuit.Qubit {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := circuit.Qubit(b.next)
	b.next++
	return q
}

// RunAndMeasure executes the program once, then samples the measurement
// distribution shots times. Sampling is spread across workers.
func (b *Backend) RunAndMeasure(ctx context.Context, p *circuit.Program, qubits []circuit.Qubit, shots int) ([][]int, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrShots, shots)
	}

	b.mu.Lock()
	width := int(b.next)
	b.mu.Unlock()
	for _, inst := range p.Insts {
		for _, q := range inst.Qubits {
			if int(q) >= width {
				width = int(q) + 1
			}
		}
	}
	for _, q := range qubits {
		if int(q) >= width {
			width = int(q) + 1
		}
	}

	v := statevector.New(width)
	if err := runProgram(ctx, v, p); err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Debug().Int("qubits", width).Int("shots", shots).Msg("sampling measurement outcomes")

	results := make([][]int, shots)
	g, ctx := errgroup.WithContext(ctx)
	nbWorkers := min(runtime.NumCPU(), shots)
	chunk := (shots + nbWorkers - 1) / nbWorkers
	for w := 0; w < nbWorkers; w++ {
		start, end := w*chunk, min((w+1)*chunk, shots)
		if start >= end {
			break
		}
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				idx := v.Sample(rng)
				row := make([]int, len(qubits))
				for k, q := range qubits {
					row[k] = int(idx >> uint(q) & 1)
				}
				results[i] = row
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runProgram applies every instruction of p to v in sequence order.
func runProgram(ctx context.Context, v *statevector.Vector, p *circuit.Program) error {
	for _, inst := range p.Insts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := apply(v, p, inst); err != nil {
			return err
		}
	}
	return nil
}

func apply(v *statevector.Vector, p *circuit.Program, inst circuit.Instruction) error {
	targets := make([]int, len(inst.Qubits))
	for i, q := range inst.Qubits {
		targets[i] = int(q)
	}
	switch inst.Gate {
	case circuit.GateH:
		if len(targets) != 1 {
			return fmt.Errorf("%w: H takes one qubit, got %d", ErrUnknownGate, len(targets))
		}
		return v.Apply(statevector.Hadamard(), targets...)
	case circuit.GateCNOT:
		if len(targets) != 2 {
			return fmt.Errorf("%w: CNOT takes two qubits, got %d", ErrUnknownGate, len(targets))
		}
		return v.Apply(statevector.CNOT(), targets...)
	default:
		def, ok := p.Def(inst.Gate)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGate, inst.Gate)
		}
		return v.Apply(def.Matrix, targets...)
	}
}
