// Package circuit models an ordered quantum instruction sequence (a program)
// and builds the oracle and Simon programs from an oracle unitary.
//
// A Program is a list of gate applications plus the definitions of any named
// gates those applications reference; instructions execute in sequence order.
// The package never allocates qubits: it receives opaque Qubit handles owned
// by the execution backend.
package circuit

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Qubit is an opaque handle into the execution backend's qubit space.
type Qubit uint32

// Builtin gate names understood by every backend.
const (
	GateH    = "H"
	GateCNOT = "CNOT"
)

// Names of the gates defined by Oracle.
const (
	GateFunct    = "FUNCT"
	GateFunctInv = "FUNCT-INV"
)

// GateDef associates a name with a unitary matrix so that instructions can
// reference the gate by name.
type GateDef struct {
	Name   string
	Matrix *mat.Dense
}

// Instruction applies a gate to an ordered tuple of qubits. The first qubit
// is the most significant index bit of the gate matrix.
type Instruction struct {
	Gate   string
	Qubits []Qubit
}

// Program is an ordered, appendable instruction sequence.
type Program struct {
	Defs  []GateDef
	Insts []Instruction
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{}
}

// DefGate records a named gate definition. Redefining a name keeps the first
// definition and ignores the rest.
func (p *Program) DefGate(name string, m *mat.Dense) *Program {
	for _, d := range p.Defs {
		if d.Name == name {
			return p
		}
	}
	p.Defs = append(p.Defs, GateDef{Name: name, Matrix: m})
	return p
}

// Inst appends a gate application.
func (p *Program) Inst(gate string, qubits ...Qubit) *Program {
	p.Insts = append(p.Insts, Instruction{Gate: gate, Qubits: qubits})
	return p
}

// Append concatenates q onto p, preserving instruction order. Concatenation
// is associative.
func (p *Program) Append(q *Program) *Program {
	for _, d := range q.Defs {
		p.DefGate(d.Name, d.Matrix)
	}
	p.Insts = append(p.Insts, q.Insts...)
	return p
}

// Def returns the definition of the named gate, if any.
func (p *Program) Def(name string) (GateDef, bool) {
	for _, d := range p.Defs {
		if d.Name == name {
			return d, true
		}
	}
	return GateDef{}, false
}

// String renders the program as Quil-style text: gate definitions first,
// then one instruction per line.
func (p *Program) String() string {
	var sb strings.Builder
	for _, d := range p.Defs {
		fmt.Fprintf(&sb, "DEFGATE %s:\n", d.Name)
		r, c := d.Matrix.Dims()
		for i := 0; i < r; i++ {
			sb.WriteString("    ")
			for j := 0; j < c; j++ {
				if j > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%g", d.Matrix.At(i, j))
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	for _, inst := range p.Insts {
		sb.WriteString(inst.Gate)
		for _, q := range inst.Qubits {
			fmt.Fprintf(&sb, " %d", q)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
