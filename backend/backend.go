// Package backend defines the execution-service interface the circuit
// builders target. A backend owns qubit allocation and runs finished
// programs; the core packages only produce instruction sequences.
package backend

import (
	"context"

	"github.com/consensys/simon/circuit"
)

// Runner executes programs against a (possibly remote) quantum device or
// simulator.
type Runner interface {
	// Alloc reserves a fresh qubit. Handles are opaque to callers.
	Alloc() circuit.Qubit

	// RunAndMeasure runs the program shots times and measures the given
	// qubits after each run. It returns one row per shot, each holding the
	// measured bit of every requested qubit, in request order.
	RunAndMeasure(ctx context.Context, p *circuit.Program, qubits []circuit.Qubit, shots int) ([][]int, error)
}
