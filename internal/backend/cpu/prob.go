package cpu

import (
	"math"

	"github.com/qulia-sim/qulia/internal/parallel"
)

// ZeroProbability returns the local probability mass over basis states whose
// bit `qubit` is 0.
func (cpu *CPUBackend) ZeroProbability(amps []complex128, globalOffset uint64, qubit int) float64 {
	return parallel.SumFloat64(len(amps), func(i int) float64 {
		if (globalOffset+uint64(i))>>qubit&1 == 0 {
			return sqrMag(amps[i])
		}
		return 0
	}, cpu.cfg)
}

// MarginalProbability returns the local probability mass over basis states i
// with i&mask == target.
func (cpu *CPUBackend) MarginalProbability(amps []complex128, globalOffset, mask, target uint64) float64 {
	return parallel.SumFloat64(len(amps), func(i int) float64 {
		if (globalOffset+uint64(i))&mask == target {
			return sqrMag(amps[i])
		}
		return 0
	}, cpu.cfg)
}

// Entropy returns the local contribution to the base-2 Shannon entropy of
// the basis distribution.
func (cpu *CPUBackend) Entropy(amps []complex128) float64 {
	return parallel.SumFloat64(len(amps), func(i int) float64 {
		p := sqrMag(amps[i])
		if p <= 0 {
			return 0
		}
		return -p * math.Log2(p)
	}, cpu.cfg)
}
