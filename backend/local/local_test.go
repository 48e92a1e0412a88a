package local_test

import (
	"context"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/consensys/simon/backend/local"
	"github.com/consensys/simon/bitstring"
	"github.com/consensys/simon/circuit"
	"github.com/consensys/simon/internal/gf2"
	"github.com/consensys/simon/internal/statevector"
	"github.com/consensys/simon/oracle"
)

// twoToOneMappings is f(00)=00, f(01)=10, f(10)=10, f(11)=00: mask 10.
var twoToOneMappings = []string{"00", "10", "10", "00"}

func setup(t *testing.T, mappings []string, n int) (*local.Backend, *circuit.Program, *circuit.Program, []circuit.Qubit) {
	t.Helper()

	u, err := oracle.Build(mappings)
	require.NoError(t, err)

	b := local.New()
	inputs := make([]circuit.Qubit, n)
	ancillas := make([]circuit.Qubit, n)
	for i := range inputs {
		inputs[i] = b.Alloc()
	}
	for i := range ancillas {
		ancillas[i] = b.Alloc()
	}
	scratch := b.Alloc()

	orc, err := circuit.Oracle(u, inputs, ancillas, scratch)
	require.NoError(t, err)
	full, err := circuit.Simon(orc, inputs)
	require.NoError(t, err)
	return b, orc, full, inputs
}

// embed returns the basis index with the big-endian bits of x on the input
// register and the big-endian bits of y on the ancilla register.
func embed(x, y uint64, n int) uint64 {
	var idx uint64
	for k := 0; k < n; k++ {
		idx |= x >> uint(n-1-k) & 1 << uint(k)
		idx |= y >> uint(n-1-k) & 1 << uint(n+k)
	}
	return idx
}

func TestOracleProgramComputesF(t *testing.T) {
	cases := []struct {
		name     string
		n        int
		mappings []string
	}{
		{"n=2 mask=10", 2, twoToOneMappings},
		// mask 011: f(x) == f(x xor 011) for all x
		{"n=3 mask=011", 3, []string{"101", "000", "000", "101", "110", "010", "010", "110"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testOracleProgramComputesF(t, tc.mappings, tc.n)
		})
	}
}

func testOracleProgramComputesF(t *testing.T, mappings []string, n int) {
	assert := require.New(t)

	_, orc, _, _ := setup(t, mappings, n)

	for x := uint64(0); x < 1<<uint(n); x++ {
		fx, err := bitstring.ToInt(mappings[x])
		assert.NoError(err)

		// |x>|y> -> |x>|f(x) xor y> exactly for every ancilla value y,
		// scratch restored to 0
		for y := uint64(0); y < 1<<uint(n); y++ {
			v := statevector.NewBasis(2*n+1, embed(x, y, n))
			assert.NoError(local.RunProgram(context.Background(), v, orc))

			want := embed(x, fx^y, n)
			for idx := uint64(0); idx < 1<<(2*n+1); idx++ {
				amp := v.Amplitude(idx)
				if idx == want {
					assert.InDelta(1, real(amp), 1e-9, "x=%d y=%d idx=%d", x, y, idx)
				} else {
					assert.InDelta(0, real(amp), 1e-9, "x=%d y=%d idx=%d", x, y, idx)
				}
				assert.InDelta(0, imag(amp), 1e-9)
			}
		}
	}
}

func TestRunAndMeasureOrthogonality(t *testing.T) {
	assert := require.New(t)

	const n = 2
	b, _, full, inputs := setup(t, twoToOneMappings, n)

	results, err := b.RunAndMeasure(context.Background(), full, inputs, 64)
	assert.NoError(err)
	assert.Len(results, 64)

	// every outcome y satisfies y . s = 0 (mod 2) for the mask s = 10
	for _, row := range results {
		assert.Len(row, n)
		assert.Equal(0, row[0], "outcome %v not orthogonal to mask 10", row)
	}
}

func TestMaskRecovery(t *testing.T) {
	assert := require.New(t)

	const n = 2
	b, _, full, inputs := setup(t, twoToOneMappings, n)

	results, err := b.RunAndMeasure(context.Background(), full, inputs, 30)
	assert.NoError(err)

	solver := gf2.NewSolver(n)
	for _, row := range results {
		y := bitset.New(n)
		for k, bit := range row {
			if bit == 1 {
				y.Set(uint(k))
			}
		}
		solver.AddRow(y)
	}

	mask, ok := solver.Mask()
	assert.True(ok, "30 shots failed to determine the mask")
	assert.True(mask.Test(0))
	assert.False(mask.Test(1))
}

func TestRunAndMeasureErrors(t *testing.T) {
	assert := require.New(t)

	b := local.New()
	p := circuit.NewProgram().Inst("TOFFOLI", 0, 1, 2)
	_, err := b.RunAndMeasure(context.Background(), p, nil, 1)
	assert.ErrorIs(err, local.ErrUnknownGate)

	_, err = b.RunAndMeasure(context.Background(), circuit.NewProgram(), nil, 0)
	assert.ErrorIs(err, local.ErrShots)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.RunAndMeasure(ctx, circuit.NewProgram().Inst(circuit.GateH, 0), []circuit.Qubit{0}, 1)
	assert.ErrorIs(err, context.Canceled)
}
