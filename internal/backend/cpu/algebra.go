package cpu

import (
	"fmt"

	"github.com/qulia-sim/qulia/internal/parallel"
)

// Add accumulates src into dst elementwise.
// Requires len(dst) == len(src); the state layer validates shapes.
func (cpu *CPUBackend) Add(dst, src []complex128) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("cpu: add: length mismatch %d vs %d", len(dst), len(src)))
	}
	parallel.For(len(dst), func(i int) {
		dst[i] += src[i]
	}, cpu.cfg)
}

// AddScaled accumulates coef*src into dst elementwise.
func (cpu *CPUBackend) AddScaled(dst []complex128, coef complex128, src []complex128) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("cpu: addScaled: length mismatch %d vs %d", len(dst), len(src)))
	}
	parallel.For(len(dst), func(i int) {
		dst[i] += coef * src[i]
	}, cpu.cfg)
}

// AddScaledSingleThread is AddScaled on the sequential ascending-index path.
func (cpu *CPUBackend) AddScaledSingleThread(dst []complex128, coef complex128, src []complex128) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("cpu: addScaled: length mismatch %d vs %d", len(dst), len(src)))
	}
	for i := range dst {
		dst[i] += coef * src[i]
	}
}

// Scale multiplies every amplitude by coef.
func (cpu *CPUBackend) Scale(amps []complex128, coef complex128) {
	parallel.For(len(amps), func(i int) {
		amps[i] *= coef
	}, cpu.cfg)
}

// MultiplyFunc multiplies the amplitude at local index i by the factor
// fn(globalOffset+i).
func (cpu *CPUBackend) MultiplyFunc(amps []complex128, globalOffset uint64, fn func(index uint64) complex128) {
	parallel.For(len(amps), func(i int) {
		amps[i] *= fn(globalOffset + uint64(i))
	}, cpu.cfg)
}
