// Package state implements the quantum-state representation layer: the state
// contract, the local state-vector backend, and the backend-agnostic
// composition algorithms.
package state

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/rand"
	"sort"
	"time"

	"github.com/qulia-sim/qulia/comm"
)

// MeasuredValue is one entry of a marginal-probability pattern.
type MeasuredValue int

// Pattern entries. Zero and One fix a qubit's measured value; Ignore leaves
// it unconstrained.
const (
	MeasuredZero MeasuredValue = 0
	MeasuredOne  MeasuredValue = 1
	Ignore       MeasuredValue = 2
)

// maxQubitCount keeps Dim and buffer lengths representable.
const maxQubitCount = 62

// State is the capability set every backend must satisfy. A circuit engine
// creates a state, applies gates through the raw amplitude buffer, queries
// probabilities and samples through this contract, and builds derived states
// via the composition functions, which consume only this interface.
//
// A single state instance is not safe for concurrent use. Distinct instances
// share no buffers and may be operated on concurrently.
type State interface {
	// QubitCount returns the number of qubits, fixed at construction.
	QubitCount() int
	// Dim returns 2^QubitCount, the logical number of basis amplitudes.
	Dim() uint64
	// InnerQubitCount returns the number of locally resident index bits.
	InnerQubitCount() int
	// OuterQubitCount returns the number of index bits encoding rank
	// ownership; 0 for a fully local buffer.
	OuterQubitCount() int
	// IsStateVector distinguishes a pure-state-vector representation from
	// a density matrix.
	IsStateVector() bool
	// Device returns the physical placement of the amplitude buffer.
	Device() Device
	// DeviceName returns a fixed string identifying the backend kind.
	DeviceName() string

	// SetZeroState initializes to |0...0>.
	SetZeroState()
	// SetZeroNormState zeroes every amplitude, intentionally violating the
	// norm invariant. Used as an accumulator seed.
	SetZeroNormState()
	// SetComputationalBasis initializes to the given basis state.
	SetComputationalBasis(basis uint64) error
	// SetHaarRandomState draws a Haar-random state. Not reproducible
	// across calls.
	SetHaarRandomState()
	// SetHaarRandomStateWithSeed draws a Haar-random state reproducibly:
	// a fixed seed and qubit count always yield the same buffer.
	SetHaarRandomStateWithSeed(seed uint64)

	// ZeroProbability returns the probability of measuring 0 on the qubit.
	ZeroProbability(qubit int) (float64, error)
	// MarginalProbability returns the joint probability mass over basis
	// states consistent with the fixed bits of the pattern, whose length
	// must equal QubitCount.
	MarginalProbability(values []MeasuredValue) (float64, error)
	// Entropy returns the base-2 Shannon entropy of the basis distribution.
	Entropy() float64

	// SquaredNorm returns the squared norm of the entire logical buffer.
	SquaredNorm() float64
	SquaredNormSingleThread() float64
	// Normalize divides every amplitude by sqrt(squaredNorm). The caller
	// supplies the norm it intends to correct for.
	Normalize(squaredNorm float64)
	NormalizeSingleThread(squaredNorm float64)

	// AllocateBuffer returns a new state of identical shape and placement
	// with unspecified content.
	AllocateBuffer() State
	// AllocateSized returns a new state over the given qubit count with
	// the same kernel, for composition results of a different shape.
	AllocateSized(qubitCount int) (State, error)
	// Copy returns a deep copy: amplitudes and classical register.
	Copy() State
	// Load overwrites this state's amplitudes and classical register from
	// src. Fails if shapes are incompatible; the receiver is unchanged on
	// failure.
	Load(src State) error
	// LoadAmplitudes overwrites the local buffer from a raw sequence.
	LoadAmplitudes(amps []complex128) error

	// Amplitudes exposes the backing buffer. No ownership transfer; the
	// slice is invalidated by nothing short of the state itself going away.
	Amplitudes() []complex128
	// DuplicateAmplitudes returns a fresh copy the caller owns.
	DuplicateAmplitudes() []complex128

	// AddState adds other's amplitudes elementwise.
	AddState(other State) error
	// AddStateWithCoef adds coef*other elementwise.
	AddStateWithCoef(coef complex128, other State) error
	AddStateWithCoefSingleThread(coef complex128, other State) error
	// MultiplyCoef scales every amplitude.
	MultiplyCoef(coef complex128)
	// MultiplyElementwiseFunction multiplies the amplitude at each global
	// basis index i by fn(i).
	MultiplyElementwiseFunction(fn func(index uint64) complex128)

	// ClassicalValue returns the bit recorded at the register index, or 0
	// if nothing was recorded there.
	ClassicalValue(index int) int
	// SetClassicalValue records a measurement outcome. The register grows
	// as needed; values persist until overwritten.
	SetClassicalValue(index, value int)
	// Register returns a copy of the classical register.
	Register() []int

	// Sampling simulates count measurements in the computational basis and
	// returns the drawn basis indices in draw order.
	Sampling(count int) ([]uint64, error)
	// SamplingWithSeed samples with an explicit generator seed.
	SamplingWithSeed(count int, seed uint64) ([]uint64, error)

	// Tree returns a structured representation for serialization.
	Tree() Tree
	fmt.Stringer
}

// Vector is the local backend: one contiguous complex buffer, or the locally
// owned partition of one when the state participates in a distributed layout.
type Vector struct {
	qubitCount    int
	dim           uint64
	innerQC       int
	outerQC       int
	isStateVector bool

	amps     []complex128
	register []int

	kernel Kernel
	comm   comm.Communicator
	rng    *rand.Rand
}

var _ State = (*Vector)(nil)

// New creates a state-vector over qubitCount qubits with a fully local
// amplitude buffer, initialized to |0...0>. The kernel is consumed, not
// owned: it may be shared between states and its execution context is
// released by whoever created it.
func New(qubitCount int, k Kernel) (*Vector, error) {
	return NewDistributed(qubitCount, k, comm.Self())
}

// NewDistributed creates a state whose amplitude buffer is partitioned across
// the ranks of c. The communicator size must be a power of two no larger than
// the state dimension; every rank must construct the state with identical
// arguments.
func NewDistributed(qubitCount int, k Kernel, c comm.Communicator) (*Vector, error) {
	if qubitCount < 1 || qubitCount > maxQubitCount {
		return nil, fmt.Errorf("%w: qubit count %d outside [1, %d]", ErrQubitOutOfRange, qubitCount, maxQubitCount)
	}
	if k == nil {
		return nil, fmt.Errorf("state: nil kernel")
	}
	if c == nil {
		c = comm.Self()
	}
	size := c.Size()
	if size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: communicator size %d is not a power of two", ErrShapeMismatch, size)
	}
	outerQC := bits.TrailingZeros(uint(size))
	if outerQC > qubitCount {
		return nil, fmt.Errorf("%w: %d ranks cannot partition %d qubits", ErrShapeMismatch, size, qubitCount)
	}
	innerQC := qubitCount - outerQC

	v := &Vector{
		qubitCount:    qubitCount,
		dim:           uint64(1) << qubitCount,
		innerQC:       innerQC,
		outerQC:       outerQC,
		isStateVector: true,
		amps:          make([]complex128, uint64(1)<<innerQC),
		kernel:        k,
		comm:          c,
		rng:           rand.New(rand.NewSource(int64(entropySeed()))),
	}
	v.SetZeroState()
	return v, nil
}

// entropySeed draws a non-reproducible seed for the per-instance generator.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// globalOffset returns the global basis index of local index 0.
func (v *Vector) globalOffset() uint64 {
	return uint64(v.comm.Rank()) << v.innerQC
}

// QubitCount returns the number of qubits.
func (v *Vector) QubitCount() int { return v.qubitCount }

// Dim returns the logical dimension 2^QubitCount.
func (v *Vector) Dim() uint64 { return v.dim }

// InnerQubitCount returns the number of locally resident index bits.
func (v *Vector) InnerQubitCount() int { return v.innerQC }

// OuterQubitCount returns the number of rank-ownership index bits.
func (v *Vector) OuterQubitCount() int { return v.outerQC }

// IsStateVector reports whether this is a pure-state-vector representation.
// Vector always is; density-matrix backends satisfy the same contract with
// their own semantics.
func (v *Vector) IsStateVector() bool { return v.isStateVector }

// Device returns the amplitude buffer's placement.
func (v *Vector) Device() Device { return v.kernel.Device() }

// DeviceName identifies the backend kind, with a "multi-" prefix when the
// buffer is partitioned across ranks.
func (v *Vector) DeviceName() string {
	if v.comm.Size() > 1 {
		return "multi-" + v.kernel.Name()
	}
	return v.kernel.Name()
}

// SetZeroState initializes to the computational basis zero state.
func (v *Vector) SetZeroState() {
	v.kernel.InitZero(v.amps, v.globalOffset())
}

// SetZeroNormState zeroes the buffer. The squared norm is 0 afterwards; the
// state is an accumulator seed, not a valid distribution.
func (v *Vector) SetZeroNormState() {
	v.kernel.InitZeroNorm(v.amps)
}

// SetComputationalBasis initializes to |basis>.
func (v *Vector) SetComputationalBasis(basis uint64) error {
	if basis >= v.dim {
		return fmt.Errorf("%w: basis %d, dimension %d", ErrBasisOutOfRange, basis, v.dim)
	}
	v.kernel.InitBasis(v.amps, v.globalOffset(), basis)
	return nil
}

// SetHaarRandomState draws a fresh Haar-random state from the per-instance
// generator. Successive calls produce unrelated states.
func (v *Vector) SetHaarRandomState() {
	seed := v.rng.Uint64()
	if v.comm.Size() > 1 {
		// All ranks must fill from the same base seed.
		s, err := v.comm.BroadcastUint64(seed, 0)
		if err != nil {
			panic(fmt.Sprintf("state: broadcast failed: %v", err))
		}
		seed = s
	}
	v.SetHaarRandomStateWithSeed(seed)
}

// SetHaarRandomStateWithSeed draws a Haar-random state reproducibly. Every
// rank of a distributed layout derives its own stream from seed and rank, so
// the full logical buffer is a pure function of (seed, qubit count, layout).
func (v *Vector) SetHaarRandomStateWithSeed(seed uint64) {
	rng := rand.New(rand.NewSource(int64(seed) + int64(v.comm.Rank())))
	v.kernel.InitHaarRandom(v.amps, rng)
	// Single-thread norm keeps the result bit-identical across worker counts.
	v.Normalize(v.SquaredNormSingleThread())
}

// ZeroProbability returns the probability mass over basis states whose bit
// `qubit` is 0.
func (v *Vector) ZeroProbability(qubit int) (float64, error) {
	if qubit < 0 || qubit >= v.qubitCount {
		return 0, fmt.Errorf("%w: qubit %d, qubit count %d", ErrQubitOutOfRange, qubit, v.qubitCount)
	}
	local := v.kernel.ZeroProbability(v.amps, v.globalOffset(), qubit)
	return v.reduceSum(local), nil
}

// MarginalProbability returns the joint probability of observing the fixed
// bits of the pattern. The pattern must have exactly one entry per qubit.
func (v *Vector) MarginalProbability(values []MeasuredValue) (float64, error) {
	if len(values) != v.qubitCount {
		return 0, fmt.Errorf("%w: pattern length %d, qubit count %d", ErrLengthMismatch, len(values), v.qubitCount)
	}
	var mask, target uint64
	for q, val := range values {
		switch val {
		case MeasuredZero:
			mask |= uint64(1) << q
		case MeasuredOne:
			mask |= uint64(1) << q
			target |= uint64(1) << q
		case Ignore:
		default:
			return 0, fmt.Errorf("%w: pattern entry %d at qubit %d", ErrBasisOutOfRange, val, q)
		}
	}
	local := v.kernel.MarginalProbability(v.amps, v.globalOffset(), mask, target)
	return v.reduceSum(local), nil
}

// Entropy returns the Shannon entropy, in bits, of the computational-basis
// distribution.
func (v *Vector) Entropy() float64 {
	return v.reduceSum(v.kernel.Entropy(v.amps))
}

// SquaredNorm returns the squared norm across the entire logical buffer,
// reducing over all ranks for a partitioned layout.
func (v *Vector) SquaredNorm() float64 {
	return v.reduceSum(v.kernel.SquaredNorm(v.amps))
}

// SquaredNormSingleThread is SquaredNorm on the sequential kernel path.
func (v *Vector) SquaredNormSingleThread() float64 {
	return v.reduceSum(v.kernel.SquaredNormSingleThread(v.amps))
}

// Normalize divides every amplitude by sqrt(squaredNorm). Supplying the norm
// lets a caller correct for a non-unitary operation without a second full
// reduction pass.
func (v *Vector) Normalize(squaredNorm float64) {
	v.kernel.Normalize(v.amps, squaredNorm)
}

// NormalizeSingleThread is Normalize on the sequential kernel path.
func (v *Vector) NormalizeSingleThread(squaredNorm float64) {
	v.kernel.NormalizeSingleThread(v.amps, squaredNorm)
}

// AllocateBuffer returns a work buffer of identical shape and placement.
// Content is unspecified.
func (v *Vector) AllocateBuffer() State {
	buf := &Vector{
		qubitCount:    v.qubitCount,
		dim:           v.dim,
		innerQC:       v.innerQC,
		outerQC:       v.outerQC,
		isStateVector: v.isStateVector,
		amps:          make([]complex128, len(v.amps)),
		kernel:        v.kernel,
		comm:          v.comm,
		rng:           rand.New(rand.NewSource(int64(entropySeed()))),
	}
	return buf
}

// AllocateSized returns a fresh state over a different qubit count, sharing
// this state's kernel. Composition results of partitioned states cannot be
// allocated this way; structural composition is local-only.
func (v *Vector) AllocateSized(qubitCount int) (State, error) {
	if v.outerQC > 0 {
		return nil, fmt.Errorf("%w: cannot resize a partitioned buffer", ErrUnsupported)
	}
	return New(qubitCount, v.kernel)
}

// Copy returns a deep copy preserving amplitudes and classical register.
func (v *Vector) Copy() State {
	buf := v.AllocateBuffer().(*Vector)
	copy(buf.amps, v.amps)
	buf.register = append([]int(nil), v.register...)
	return buf
}

// Load overwrites this state from src: amplitude buffer and classical
// register. Fails without mutating the receiver if shapes differ.
func (v *Vector) Load(src State) error {
	if err := v.checkCompatible(src); err != nil {
		return err
	}
	copy(v.amps, src.Amplitudes())
	v.register = append(v.register[:0], src.Register()...)
	return nil
}

// LoadAmplitudes overwrites the local buffer from a raw complex sequence of
// exactly the local partition length.
func (v *Vector) LoadAmplitudes(amps []complex128) error {
	if len(amps) != len(v.amps) {
		return fmt.Errorf("%w: got %d amplitudes, buffer holds %d", ErrShapeMismatch, len(amps), len(v.amps))
	}
	copy(v.amps, amps)
	return nil
}

// Amplitudes exposes the local backing buffer by reference.
func (v *Vector) Amplitudes() []complex128 { return v.amps }

// DuplicateAmplitudes returns a fresh copy of the local buffer.
func (v *Vector) DuplicateAmplitudes() []complex128 {
	return append([]complex128(nil), v.amps...)
}

// AddState adds other's amplitudes elementwise.
func (v *Vector) AddState(other State) error {
	if err := v.checkCompatible(other); err != nil {
		return err
	}
	v.kernel.Add(v.amps, other.Amplitudes())
	return nil
}

// AddStateWithCoef adds coef*other elementwise.
func (v *Vector) AddStateWithCoef(coef complex128, other State) error {
	if err := v.checkCompatible(other); err != nil {
		return err
	}
	v.kernel.AddScaled(v.amps, coef, other.Amplitudes())
	return nil
}

// AddStateWithCoefSingleThread is AddStateWithCoef on the sequential path.
func (v *Vector) AddStateWithCoefSingleThread(coef complex128, other State) error {
	if err := v.checkCompatible(other); err != nil {
		return err
	}
	v.kernel.AddScaledSingleThread(v.amps, coef, other.Amplitudes())
	return nil
}

// MultiplyCoef scales every amplitude by coef.
func (v *Vector) MultiplyCoef(coef complex128) {
	v.kernel.Scale(v.amps, coef)
}

// MultiplyElementwiseFunction multiplies the amplitude at each global basis
// index i by fn(i). A generic hook for custom per-basis-index transforms.
func (v *Vector) MultiplyElementwiseFunction(fn func(index uint64) complex128) {
	v.kernel.MultiplyFunc(v.amps, v.globalOffset(), fn)
}

// ClassicalValue returns the recorded bit, or 0 if the index was never set.
func (v *Vector) ClassicalValue(index int) int {
	if index < 0 {
		panic(fmt.Sprintf("state: negative classical register index %d", index))
	}
	if index >= len(v.register) {
		return 0
	}
	return v.register[index]
}

// SetClassicalValue records a measurement outcome, growing the register as
// needed. Values persist until overwritten.
func (v *Vector) SetClassicalValue(index, value int) {
	if index < 0 {
		panic(fmt.Sprintf("state: negative classical register index %d", index))
	}
	for len(v.register) <= index {
		v.register = append(v.register, 0)
	}
	v.register[index] = value
}

// Register returns a copy of the classical register.
func (v *Vector) Register() []int {
	return append([]int(nil), v.register...)
}

// Sampling simulates count measurements, drawing from the per-instance
// generator. Ranks of a partitioned layout agree on the draws by
// broadcasting a seed from rank 0.
func (v *Vector) Sampling(count int) ([]uint64, error) {
	if v.comm.Size() > 1 {
		seed, err := v.comm.BroadcastUint64(v.rng.Uint64(), 0)
		if err != nil {
			return nil, fmt.Errorf("state: sampling broadcast: %w", err)
		}
		return v.sample(count, rand.New(rand.NewSource(int64(seed))))
	}
	return v.sample(count, v.rng)
}

// SamplingWithSeed samples with an explicit seed. Distributed callers must
// pass the same seed on every rank.
func (v *Vector) SamplingWithSeed(count int, seed uint64) ([]uint64, error) {
	return v.sample(count, rand.New(rand.NewSource(int64(seed))))
}

// sample draws basis indices by inverting the cumulative distribution of the
// squared magnitudes.
func (v *Vector) sample(count int, rng *rand.Rand) ([]uint64, error) {
	if count < 0 {
		return nil, fmt.Errorf("state: negative sampling count %d", count)
	}

	// Local cumulative distribution, ascending basis order.
	stacked := make([]float64, len(v.amps)+1)
	for i, a := range v.amps {
		stacked[i+1] = stacked[i] + sqrMag(a)
	}
	localMass := stacked[len(v.amps)]

	if v.comm.Size() == 1 {
		out := make([]uint64, count)
		for k := range out {
			r := rng.Float64() * localMass
			out[k] = uint64(searchCumulative(stacked, r))
		}
		return out, nil
	}

	masses, err := v.comm.AllGatherFloat64(localMass)
	if err != nil {
		return nil, fmt.Errorf("state: sampling gather: %w", err)
	}
	var prefix, total float64
	for rank, m := range masses {
		if rank < v.comm.Rank() {
			prefix += m
		}
		total += m
	}

	contrib := make([]uint64, count)
	lastRank := v.comm.Rank() == v.comm.Size()-1
	for k := range contrib {
		r := rng.Float64() * total
		owned := r >= prefix && r < prefix+localMass
		if lastRank && r >= total-1e-18 {
			owned = true
		}
		if owned {
			local := searchCumulative(stacked, r-prefix)
			contrib[k] = v.globalOffset() | uint64(local)
		}
	}
	reduced, err := v.comm.AllReduceSumUint64(contrib)
	if err != nil {
		return nil, fmt.Errorf("state: sampling reduce: %w", err)
	}
	return reduced, nil
}

// searchCumulative finds the basis index owning position r in the cumulative
// distribution. Clamped so boundary draws never fall off the end.
func searchCumulative(stacked []float64, r float64) int {
	n := len(stacked) - 1
	idx := sort.Search(n, func(i int) bool { return stacked[i+1] > r })
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// checkCompatible verifies that other shares this state's logical shape and
// partition layout.
func (v *Vector) checkCompatible(other State) error {
	if other == nil {
		return fmt.Errorf("%w: nil state", ErrShapeMismatch)
	}
	if other.QubitCount() != v.qubitCount {
		return fmt.Errorf("%w: qubit counts %d and %d", ErrShapeMismatch, v.qubitCount, other.QubitCount())
	}
	if other.InnerQubitCount() != v.innerQC || other.OuterQubitCount() != v.outerQC {
		return fmt.Errorf("%w: layouts (%d,%d) and (%d,%d)", ErrShapeMismatch,
			v.innerQC, v.outerQC, other.InnerQubitCount(), other.OuterQubitCount())
	}
	return nil
}

// reduceSum combines a local partial sum into the global value, panicking on
// collective failure: a broken communicator leaves no consistent state to
// report through an error return.
func (v *Vector) reduceSum(local float64) float64 {
	global, err := v.comm.AllReduceSumFloat64(local)
	if err != nil {
		panic(fmt.Sprintf("state: collective reduction failed: %v", err))
	}
	return global
}

// sqrMag is the probability mass of one amplitude.
func sqrMag(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
