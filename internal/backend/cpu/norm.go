package cpu

import (
	"math"

	"github.com/qulia-sim/qulia/internal/parallel"
)

// SquaredNorm sums squared magnitudes over the local partition.
func (cpu *CPUBackend) SquaredNorm(amps []complex128) float64 {
	return parallel.SumFloat64(len(amps), func(i int) float64 {
		return sqrMag(amps[i])
	}, cpu.cfg)
}

// SquaredNormSingleThread is the sequential ascending-index reference sweep.
func (cpu *CPUBackend) SquaredNormSingleThread(amps []complex128) float64 {
	return parallel.SumFloat64(len(amps), func(i int) float64 {
		return sqrMag(amps[i])
	}, parallel.Sequential())
}

// Normalize divides every amplitude by sqrt(squaredNorm).
func (cpu *CPUBackend) Normalize(amps []complex128, squaredNorm float64) {
	w := complex(1/math.Sqrt(squaredNorm), 0)
	parallel.For(len(amps), func(i int) {
		amps[i] *= w
	}, cpu.cfg)
}

// NormalizeSingleThread is Normalize on the sequential path.
func (cpu *CPUBackend) NormalizeSingleThread(amps []complex128, squaredNorm float64) {
	w := complex(1/math.Sqrt(squaredNorm), 0)
	for i := range amps {
		amps[i] *= w
	}
}
