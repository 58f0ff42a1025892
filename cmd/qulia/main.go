// Package main provides the Qulia simulator CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/qulia-sim/qulia/state"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Qulia Simulator %s\n", version)
			return
		case "demo":
			if err := demo(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "demo:", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Qulia - Quantum State Simulation for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version           Show version")
	fmt.Println("  demo [qubits]     Sample a Haar-random state")
}

// demo draws a Haar-random state and prints a handful of measurement
// samples with its basis distribution entropy.
func demo(args []string) error {
	qubits := 3
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid qubit count %q: %w", args[0], err)
		}
		qubits = n
	}

	st, err := state.New(qubits)
	if err != nil {
		return err
	}
	st.SetHaarRandomState()

	samples, err := st.Sampling(16)
	if err != nil {
		return err
	}

	fmt.Printf("qubits:  %d (dim %d, device %s)\n", st.QubitCount(), st.Dim(), st.DeviceName())
	fmt.Printf("norm:    %.12f\n", st.SquaredNorm())
	fmt.Printf("entropy: %.6f bits\n", st.Entropy())
	fmt.Printf("samples: %v\n", samples)
	return nil
}
