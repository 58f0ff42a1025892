package state

import (
	"fmt"
	"strings"
)

// Tree is the structured debug/serialization representation of a state. It
// is a plain nested map so callers can hand it to encoding/json or walk it
// directly; the exact schema belongs to whatever consumes it.
type Tree map[string]any

// Tree exports the state's metadata, classical register, and local
// amplitudes. For a partitioned layout each rank exports its own partition
// together with its global offset.
func (v *Vector) Tree() Tree {
	amps := make([][2]float64, len(v.amps))
	for i, a := range v.amps {
		amps[i] = [2]float64{real(a), imag(a)}
	}
	t := Tree{
		"name":               "QuantumState",
		"qubit_count":        v.qubitCount,
		"dimension":          v.dim,
		"device":             v.DeviceName(),
		"classical_register": v.Register(),
		"amplitudes":         amps,
	}
	if v.outerQC > 0 {
		t["inner_qubit_count"] = v.innerQC
		t["outer_qubit_count"] = v.outerQC
		t["global_offset"] = v.globalOffset()
	}
	return t
}

// String renders the state for debugging: metadata followed by the local
// amplitude buffer, one basis index per line.
func (v *Vector) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, " *** Quantum State ***\n")
	fmt.Fprintf(&b, " * Qubit Count : %d\n", v.qubitCount)
	fmt.Fprintf(&b, " * Dimension   : %d\n", v.dim)
	fmt.Fprintf(&b, " * Device      : %s\n", v.DeviceName())
	if v.outerQC > 0 {
		fmt.Fprintf(&b, " * Local range : [%d, %d)\n", v.globalOffset(), v.globalOffset()+uint64(len(v.amps)))
	}
	fmt.Fprintf(&b, " * State vector :\n")
	for _, a := range v.amps {
		fmt.Fprintf(&b, "(%g,%g)\n", real(a), imag(a))
	}
	return b.String()
}
