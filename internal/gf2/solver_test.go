package gf2

import (
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"
)

func row(n int, v uint64) *bitset.BitSet {
	b := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		if v>>uint(n-1-i)&1 == 1 {
			b.Set(uint(i))
		}
	}
	return b
}

func TestSolverRecoversMask(t *testing.T) {
	assert := require.New(t)

	// n=3, s=101: orthogonal rows are {000, 010, 101, 111}
	s := NewSolver(3)
	assert.False(s.AddRow(row(3, 0b000)))
	assert.True(s.AddRow(row(3, 0b010)))

	_, ok := s.Mask()
	assert.False(ok, "rank 1 of 2 must not determine a mask")

	assert.True(s.AddRow(row(3, 0b111)))
	assert.False(s.AddRow(row(3, 0b101)), "101 = 111 xor 010")

	mask, ok := s.Mask()
	assert.True(ok)
	assert.Equal(uint64(0b101), rowValue(mask, 3))
}

func TestSolverRandomMasks(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for n := 1; n <= 10; n++ {
		for trial := 0; trial < 20; trial++ {
			mask := 1 + rng.Uint64N(uint64(1<<uint(n)-1))

			s := NewSolver(n)
			// feed every vector orthogonal to mask, shuffled
			var orth []uint64
			for y := uint64(0); y < 1<<uint(n); y++ {
				if bits.OnesCount64(y&mask)%2 == 0 {
					orth = append(orth, y)
				}
			}
			rng.Shuffle(len(orth), func(i, j int) { orth[i], orth[j] = orth[j], orth[i] })
			for _, y := range orth {
				s.AddRow(row(n, y))
			}

			require.Equal(t, n-1, s.Rank(), "n=%d mask=%b", n, mask)
			got, ok := s.Mask()
			require.True(t, ok, "n=%d mask=%b", n, mask)
			require.Equal(t, mask, rowValue(got, n), "n=%d", n)
		}
	}
}

func rowValue(b *bitset.BitSet, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v <<= 1
		if b.Test(uint(i)) {
			v |= 1
		}
	}
	return v
}
