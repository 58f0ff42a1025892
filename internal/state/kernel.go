package state

import "math/rand"

// Kernel is the amplitude kernel provider: the set of primitive operations a
// state delegates to for everything that touches raw amplitude memory. A
// kernel operates on the local partition of the buffer; where global basis
// indices matter the state passes the partition's global offset. How a kernel
// vectorizes or parallelizes a sweep is its own concern, with one exception:
// the SingleThread variants must be bit-identical to a sequential sweep over
// indices in ascending order.
//
// Implementations:
//   - internal/backend/cpu: chunked goroutine sweeps over host memory
//   - internal/backend/webgpu: WGSL compute dispatch with host staging
type Kernel interface {
	// InitZero writes |0...0>: all amplitudes zero except global index 0,
	// which is set to 1 on the partition that owns it.
	InitZero(amps []complex128, globalOffset uint64)

	// InitZeroNorm zeroes the buffer, deliberately leaving squared norm 0.
	InitZeroNorm(amps []complex128)

	// InitBasis writes the computational basis state for the given global
	// basis index. The caller guarantees basis < Dim.
	InitBasis(amps []complex128, globalOffset, basis uint64)

	// InitHaarRandom fills the buffer with unnormalized complex Gaussian
	// amplitudes drawn from rng. The state normalizes globally afterwards.
	// The sweep is sequential; rng is not safe for concurrent use.
	InitHaarRandom(amps []complex128, rng *rand.Rand)

	// SquaredNorm returns the sum of squared magnitudes over the local
	// partition.
	SquaredNorm(amps []complex128) float64
	SquaredNormSingleThread(amps []complex128) float64

	// Normalize divides every amplitude by sqrt(squaredNorm).
	Normalize(amps []complex128, squaredNorm float64)
	NormalizeSingleThread(amps []complex128, squaredNorm float64)

	// Add accumulates src into dst elementwise. Slices have equal length.
	Add(dst, src []complex128)

	// AddScaled accumulates coef*src into dst elementwise.
	AddScaled(dst []complex128, coef complex128, src []complex128)
	AddScaledSingleThread(dst []complex128, coef complex128, src []complex128)

	// Scale multiplies every amplitude by coef.
	Scale(amps []complex128, coef complex128)

	// MultiplyFunc multiplies the amplitude at local index i by
	// fn(globalOffset + i).
	MultiplyFunc(amps []complex128, globalOffset uint64, fn func(index uint64) complex128)

	// ZeroProbability returns the local probability mass over basis states
	// whose bit `qubit` is 0.
	ZeroProbability(amps []complex128, globalOffset uint64, qubit int) float64

	// MarginalProbability returns the local probability mass over basis
	// states i with i&mask == target.
	MarginalProbability(amps []complex128, globalOffset, mask, target uint64) float64

	// Entropy returns the local contribution to the base-2 Shannon entropy
	// of the computational-basis distribution.
	Entropy(amps []complex128) float64

	// Name identifies the kernel backend kind ("cpu", "webgpu").
	Name() string

	// Device returns the physical placement of buffers this kernel sweeps.
	Device() Device

	// Release frees any execution context the kernel owns. Safe to call
	// more than once; the kernel is unusable afterwards.
	Release()
}
