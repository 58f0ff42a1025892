package cpu

import (
	"math/rand"

	"github.com/qulia-sim/qulia/internal/parallel"
)

// InitZero writes |0...0>. Only the partition holding global index 0 gets
// the unit amplitude.
func (cpu *CPUBackend) InitZero(amps []complex128, globalOffset uint64) {
	cpu.InitZeroNorm(amps)
	if globalOffset == 0 {
		amps[0] = 1
	}
}

// InitZeroNorm zeroes the buffer.
func (cpu *CPUBackend) InitZeroNorm(amps []complex128) {
	parallel.For(len(amps), func(i int) {
		amps[i] = 0
	}, cpu.cfg)
}

// InitBasis writes the basis state for the given global index.
func (cpu *CPUBackend) InitBasis(amps []complex128, globalOffset, basis uint64) {
	cpu.InitZeroNorm(amps)
	if basis >= globalOffset && basis < globalOffset+uint64(len(amps)) {
		amps[basis-globalOffset] = 1
	}
}

// InitHaarRandom fills the buffer with unnormalized complex Gaussians. The
// sweep is sequential in ascending index order so a fixed seed reproduces
// the buffer exactly; rng is not safe for concurrent draws anyway.
func (cpu *CPUBackend) InitHaarRandom(amps []complex128, rng *rand.Rand) {
	for i := range amps {
		amps[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
}
