package circuit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/consensys/simon/logger"
	"github.com/consensys/simon/oracle"
)

var (
	// ErrNotUnitary is returned when the oracle matrix fails the unitarity check.
	ErrNotUnitary = errors.New("circuit: oracle gate must be unitary")

	// ErrRegister is returned when the qubit registers do not match the
	// oracle gate dimension.
	ErrRegister = errors.New("circuit: register does not match gate dimension")
)

// Oracle builds the instruction sequence implementing
//
//	|x>|y> -> |x>|f(x) xor y>
//
// from the oracle unitary u on len(inputs)+1 qubits. The forward gate
// computes f(x) in place on (scratch, inputs...), a CNOT row copies the
// result into the ancilla register, and the inverse gate restores the
// input and scratch qubits to their pre-oracle state.
func Oracle(u *mat.Dense, inputs, ancillas []Qubit, scratch Qubit) (*Program, error) {
	if !oracle.IsUnitary(u) {
		return nil, ErrNotUnitary
	}
	if len(inputs) != len(ancillas) {
		return nil, fmt.Errorf("%w: %d inputs, %d ancillas", ErrRegister, len(inputs), len(ancillas))
	}
	if r, _ := u.Dims(); r != 1<<uint(len(inputs)+1) {
		return nil, fmt.Errorf("%w: gate dimension %d, want %d", ErrRegister, r, 1<<uint(len(inputs)+1))
	}

	var inv mat.Dense
	if err := inv.Inverse(u); err != nil {
		return nil, fmt.Errorf("circuit: invert oracle gate: %w", err)
	}

	operands := make([]Qubit, 0, len(inputs)+1)
	operands = append(operands, scratch)
	operands = append(operands, inputs...)

	p := NewProgram()
	p.DefGate(GateFunct, u)
	p.DefGate(GateFunctInv, &inv)
	p.Inst(GateFunct, operands...)
	for k := range inputs {
		p.Inst(GateCNOT, inputs[k], ancillas[k])
	}
	p.Inst(GateFunctInv, operands...)

	log := logger.Logger()
	log.Debug().Int("qubits", len(inputs)+1).Int("instructions", len(p.Insts)).Msg("built oracle program")
	return p, nil
}

// Simon wraps the oracle program with the Hadamard layers of Simon's
// algorithm: H on every input qubit, the oracle, H on every input qubit
// again.
func Simon(orc *Program, inputs []Qubit) (*Program, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no input qubits", ErrRegister)
	}
	p := NewProgram()
	for _, q := range inputs {
		p.Inst(GateH, q)
	}
	p.Append(orc)
	for _, q := range inputs {
		p.Inst(GateH, q)
	}
	return p, nil
}
