package bitstring

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("ToInt(FromInt(v, n)) == v", prop.ForAll(
		func(v uint64, n int) bool {
			if n < 64 {
				v &= 1<<uint(n) - 1
			}
			s, err := FromInt(v, n)
			if err != nil {
				return false
			}
			got, err := ToInt(s)
			return err == nil && got == v
		},
		gen.UInt64(),
		gen.IntRange(1, 64),
	))

	properties.Property("FromInt emits exactly n characters", prop.ForAll(
		func(v uint64, n int) bool {
			if n < 64 {
				v &= 1<<uint(n) - 1
			}
			s, err := FromInt(v, n)
			return err == nil && len(s) == n
		},
		gen.UInt64(),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestToInt(t *testing.T) {
	assert := require.New(t)

	v, err := ToInt("1010")
	assert.NoError(err)
	assert.Equal(uint64(10), v)

	v, err = ToInt("")
	assert.NoError(err)
	assert.Equal(uint64(0), v)

	_, err = ToInt("10a1")
	assert.ErrorIs(err, ErrFormat)

	_, err = ToInt("10 1")
	assert.ErrorIs(err, ErrFormat)
}

func TestFromIntRange(t *testing.T) {
	assert := require.New(t)

	s, err := FromInt(5, 3)
	assert.NoError(err)
	assert.Equal("101", s)

	s, err = FromInt(5, 6)
	assert.NoError(err)
	assert.Equal("000101", s)

	// out-of-range values are rejected, not truncated
	_, err = FromInt(8, 3)
	assert.ErrorIs(err, ErrRange)

	_, err = FromInt(0, 0)
	assert.ErrorIs(err, ErrRange)
}

func TestXor(t *testing.T) {
	assert := require.New(t)

	s, err := Xor("1100", "1010")
	assert.NoError(err)
	assert.Equal("0110", s)

	_, err = Xor("11", "110")
	assert.ErrorIs(err, ErrRange)

	_, err = Xor("1x", "10")
	assert.ErrorIs(err, ErrFormat)
}
