package circuit

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gonum.org/v1/gonum/mat"
)

// serialization mirrors; mat.Dense is stored as its flattened row-major data
type programData struct {
	Defs  []gateDefData `cbor:"1,keyasint"`
	Insts []instData    `cbor:"2,keyasint"`
}

type gateDefData struct {
	Name string    `cbor:"1,keyasint"`
	Dim  int       `cbor:"2,keyasint"`
	Data []float64 `cbor:"3,keyasint"`
}

type instData struct {
	Gate   string  `cbor:"1,keyasint"`
	Qubits []Qubit `cbor:"2,keyasint"`
}

// ToBytes serializes the program with deterministic CBOR encoding.
func (p *Program) ToBytes() ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	data := programData{
		Defs:  make([]gateDefData, len(p.Defs)),
		Insts: make([]instData, len(p.Insts)),
	}
	for i, d := range p.Defs {
		r, c := d.Matrix.Dims()
		if r != c {
			return nil, fmt.Errorf("circuit: gate %q is not square", d.Name)
		}
		raw := make([]float64, 0, r*c)
		for row := 0; row < r; row++ {
			raw = append(raw, d.Matrix.RawRowView(row)...)
		}
		data.Defs[i] = gateDefData{Name: d.Name, Dim: r, Data: raw}
	}
	for i, inst := range p.Insts {
		data.Insts[i] = instData{Gate: inst.Gate, Qubits: inst.Qubits}
	}
	return enc.Marshal(data)
}

// FromBytes deserializes a program produced by ToBytes, replacing the
// receiver's contents.
func (p *Program) FromBytes(buf []byte) error {
	var data programData
	if err := cbor.Unmarshal(buf, &data); err != nil {
		return err
	}
	defs := make([]GateDef, len(data.Defs))
	for i, d := range data.Defs {
		if d.Dim <= 0 || len(d.Data) != d.Dim*d.Dim {
			return errors.New("circuit: malformed gate definition")
		}
		defs[i] = GateDef{Name: d.Name, Matrix: mat.NewDense(d.Dim, d.Dim, d.Data)}
	}
	insts := make([]Instruction, len(data.Insts))
	for i, inst := range data.Insts {
		insts[i] = Instruction{Gate: inst.Gate, Qubits: inst.Qubits}
	}
	p.Defs = defs
	p.Insts = insts
	return nil
}
