// Package simon constructs quantum oracles for arbitrary boolean functions
// f: {0,1}^n -> {0,1}^n and composes them into the fixed three-stage circuit
// of Simon's period-finding algorithm.
//
// The heavy lifting lives in the subpackages:
//   - oracle builds a permutation unitary on n+1 qubits from a function table
//   - circuit turns that unitary into an instruction sequence implementing
//     |x>|y> -> |x>|f(x) xor y> and sandwiches it between Hadamard layers
//   - backend abstracts the execution service that runs the result
package simon

import "github.com/blang/semver/v4"

var Version = semver.MustParse("0.1.0")
