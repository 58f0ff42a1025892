package webgpu

import (
	"math"
	"math/rand"
)

// Amplitude kernel surface. Large read-mostly sweeps dispatch to the GPU;
// everything else, including every SingleThread variant (the sequential
// ascending-index determinism baseline), runs on the embedded host kernel.

// InitZero writes |0...0> on the host.
func (b *Backend) InitZero(amps []complex128, globalOffset uint64) {
	b.host.InitZero(amps, globalOffset)
}

// InitZeroNorm zeroes the buffer on the host.
func (b *Backend) InitZeroNorm(amps []complex128) {
	b.host.InitZeroNorm(amps)
}

// InitBasis writes the basis state for the given global index on the host.
func (b *Backend) InitBasis(amps []complex128, globalOffset, basis uint64) {
	b.host.InitBasis(amps, globalOffset, basis)
}

// InitHaarRandom fills the buffer sequentially from rng; random number
// generation is inherently host-side.
func (b *Backend) InitHaarRandom(amps []complex128, rng *rand.Rand) {
	b.host.InitHaarRandom(amps, rng)
}

// SquaredNorm reduces on the GPU for large buffers, falling back to the
// host on dispatch failure or below the dispatch threshold.
func (b *Backend) SquaredNorm(amps []complex128) float64 {
	if len(amps) >= b.minGPUSize {
		if sum, err := b.runSquaredNorm(amps); err == nil {
			return sum
		}
	}
	return b.host.SquaredNorm(amps)
}

// SquaredNormSingleThread is the sequential host reference sweep.
func (b *Backend) SquaredNormSingleThread(amps []complex128) float64 {
	return b.host.SquaredNormSingleThread(amps)
}

// Normalize divides every amplitude by sqrt(squaredNorm), on the GPU for
// large buffers.
func (b *Backend) Normalize(amps []complex128, squaredNorm float64) {
	b.Scale(amps, complex(1/math.Sqrt(squaredNorm), 0))
}

// NormalizeSingleThread is Normalize on the sequential host path.
func (b *Backend) NormalizeSingleThread(amps []complex128, squaredNorm float64) {
	b.host.NormalizeSingleThread(amps, squaredNorm)
}

// Add accumulates src into dst on the host.
func (b *Backend) Add(dst, src []complex128) {
	b.host.Add(dst, src)
}

// AddScaled accumulates coef*src into dst on the host.
func (b *Backend) AddScaled(dst []complex128, coef complex128, src []complex128) {
	b.host.AddScaled(dst, coef, src)
}

// AddScaledSingleThread is AddScaled on the sequential host path.
func (b *Backend) AddScaledSingleThread(dst []complex128, coef complex128, src []complex128) {
	b.host.AddScaledSingleThread(dst, coef, src)
}

// Scale multiplies every amplitude by coef, on the GPU for large buffers.
// The GPU sweep rounds through float32.
func (b *Backend) Scale(amps []complex128, coef complex128) {
	if len(amps) >= b.minGPUSize {
		if err := b.runScale(amps, coef); err == nil {
			return
		}
	}
	b.host.Scale(amps, coef)
}

// MultiplyFunc applies an arbitrary host function per basis index; it cannot
// be expressed as a fixed shader and runs on the host.
func (b *Backend) MultiplyFunc(amps []complex128, globalOffset uint64, fn func(index uint64) complex128) {
	b.host.MultiplyFunc(amps, globalOffset, fn)
}

// ZeroProbability sums on the host.
func (b *Backend) ZeroProbability(amps []complex128, globalOffset uint64, qubit int) float64 {
	return b.host.ZeroProbability(amps, globalOffset, qubit)
}

// MarginalProbability sums on the host.
func (b *Backend) MarginalProbability(amps []complex128, globalOffset, mask, target uint64) float64 {
	return b.host.MarginalProbability(amps, globalOffset, mask, target)
}

// Entropy sums on the host.
func (b *Backend) Entropy(amps []complex128) float64 {
	return b.host.Entropy(amps)
}
