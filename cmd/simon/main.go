// Command simon is the interactive driver for Simon's algorithm: it reads a
// function table from the terminal, builds the oracle program and runs it on
// the local backend.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/spf13/cobra"

	"github.com/consensys/simon/backend"
	"github.com/consensys/simon/backend/local"
	"github.com/consensys/simon/bitstring"
	"github.com/consensys/simon/circuit"
	"github.com/consensys/simon/internal/gf2"
	"github.com/consensys/simon/logger"
	"github.com/consensys/simon/oracle"
)

var fShots int

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "build and run a Simon's algorithm instance for an interactively entered function",
	RunE:  run,
}

func init() {
	rootCmd.Flags().IntVar(&fShots, "shots", 10, "number of measurement shots")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	n, err := readBitCount(in, out)
	if err != nil {
		return err
	}
	mappings, err := readMappings(in, out, n)
	if err != nil {
		return err
	}

	u, err := oracle.Build(mappings)
	if err != nil {
		return err
	}

	var b backend.Runner = local.New()
	inputs := make([]circuit.Qubit, n)
	ancillas := make([]circuit.Qubit, n)
	for i := 0; i < n; i++ {
		inputs[i] = b.Alloc()
	}
	for i := 0; i < n; i++ {
		ancillas[i] = b.Alloc()
	}
	scratch := b.Alloc()

	orc, err := circuit.Oracle(u, inputs, ancillas, scratch)
	if err != nil {
		return err
	}
	program, err := circuit.Simon(orc, inputs)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, program)

	results, err := b.RunAndMeasure(cmd.Context(), program, inputs, fShots)
	if err != nil {
		return err
	}

	solver := gf2.NewSolver(n)
	for _, row := range results {
		fmt.Fprintln(out, formatRow(row))
		y := bitset.New(uint(n))
		for k, bit := range row {
			if bit == 1 {
				y.Set(uint(k))
			}
		}
		solver.AddRow(y)
	}

	if mask, ok := solver.Mask(); ok {
		fmt.Fprintf(out, "mask s = %s\n", maskString(mask, n))
	} else if solver.Rank() == n {
		// outcomes span the whole space, which only a one-to-one f produces
		fmt.Fprintln(out, "function is one-to-one: no mask exists")
	} else {
		fmt.Fprintf(out, "mask undetermined after %d shots (rank %d of %d); run again with more shots\n",
			fShots, solver.Rank(), n-1)
	}
	log := logger.Logger()
	log.Info().Int("shots", fShots).Int("rank", solver.Rank()).Msg("run complete")
	return nil
}

// readBitCount prompts until it gets a positive integer.
func readBitCount(in *bufio.Reader, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "How many bits? ")
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n <= 0 {
			fmt.Fprintln(out, "the number of bits must be a positive integer")
			continue
		}
		return n, nil
	}
}

// readMappings prompts for f(x) on every n-bit input in increasing order,
// re-prompting on malformed values.
func readMappings(in *bufio.Reader, out io.Writer, n int) ([]string, error) {
	fmt.Fprintln(out, "Enter f(x) for the following n-bit inputs:")
	mappings := make([]string, 0, 1<<uint(n))
	for i := uint64(0); i < 1<<uint(n); i++ {
		label, err := bitstring.FromInt(i, n)
		if err != nil {
			return nil, err
		}
		for {
			fmt.Fprintf(out, "%s: ", label)
			line, err := in.ReadString('\n')
			if err != nil {
				return nil, err
			}
			val := strings.TrimSpace(line)
			if len(val) != n {
				fmt.Fprintf(out, "f(x) must be %d bits\n", n)
				continue
			}
			if _, err := bitstring.ToInt(val); err != nil {
				fmt.Fprintln(out, "f(x) must contain only 0 and 1")
				continue
			}
			mappings = append(mappings, val)
			break
		}
	}
	return mappings, nil
}

func formatRow(row []int) string {
	var sb strings.Builder
	for _, bit := range row {
		sb.WriteByte(byte('0' + bit))
	}
	return sb.String()
}

func maskString(mask *bitset.BitSet, n int) string {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if mask.Test(uint(i)) {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
