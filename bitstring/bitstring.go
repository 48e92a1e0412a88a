// Package bitstring converts between fixed-width big-endian bitstrings and
// their integer values.
//
// A bitstring of width n and its integer value in [0, 2^n) designate the same
// computational basis state; every package in this module relies on that
// bijection.
package bitstring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat is returned when a bitstring contains a character other than '0' or '1'.
	ErrFormat = errors.New("bitstring: character must be '0' or '1'")

	// ErrRange is returned when a value does not fit in the requested width.
	ErrRange = errors.New("bitstring: value out of range for width")
)

// ToInt interprets s as a big-endian binary number.
func ToInt(s string) (uint64, error) {
	if len(s) > 64 {
		return 0, fmt.Errorf("%w: width %d exceeds 64", ErrRange, len(s))
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, fmt.Errorf("%w: %q at position %d", ErrFormat, s[i], i)
		}
	}
	return v, nil
}

// FromInt returns the big-endian n-bit representation of v.
//
// Values with set bits above position n-1 are rejected rather than silently
// truncated; the caller owns the width of its registers.
func FromInt(v uint64, n int) (string, error) {
	if n <= 0 || n > 64 {
		return "", fmt.Errorf("%w: invalid width %d", ErrRange, n)
	}
	if n < 64 && v>>uint(n) != 0 {
		return "", fmt.Errorf("%w: %d needs more than %d bits", ErrRange, v, n)
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := n - 1; i >= 0; i-- {
		if v>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}

// Xor returns the bitwise xor of two bitstrings of the same width.
func Xor(a, b string) (string, error) {
	if len(a) != len(b) {
		return "", fmt.Errorf("%w: widths %d and %d differ", ErrRange, len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		if (a[i] != '0' && a[i] != '1') || (b[i] != '0' && b[i] != '1') {
			return "", fmt.Errorf("%w: at position %d", ErrFormat, i)
		}
		if a[i] != b[i] {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out), nil
}
