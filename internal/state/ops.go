package state

import (
	"fmt"
	"math/cmplx"

	"github.com/qulia-sim/qulia/internal/parallel"
)

// Composition algorithms. Each operates only through the State contract, so
// any conforming backend can be composed. Structural operations that relabel
// the index space (TensorProduct, PermutateQubit, DropQubit) require fully
// local buffers; InnerProduct and the linear combinations also work on
// partitioned layouts.

// InnerProduct returns <bra|ket> = sum_i conj(bra[i])*ket[i] over all basis
// indices. For a state with itself the real part equals the squared norm.
func InnerProduct(bra, ket State) (complex128, error) {
	if bra.QubitCount() != ket.QubitCount() {
		return 0, fmt.Errorf("%w: inner product of %d and %d qubits", ErrShapeMismatch, bra.QubitCount(), ket.QubitCount())
	}
	if bra.InnerQubitCount() != ket.InnerQubitCount() || bra.OuterQubitCount() != ket.OuterQubitCount() {
		return 0, fmt.Errorf("%w: inner product across different layouts", ErrShapeMismatch)
	}

	a, b := bra.Amplitudes(), ket.Amplitudes()
	local := parallel.SumComplex128(len(a), func(i int) complex128 {
		return cmplx.Conj(a[i]) * b[i]
	}, parallel.DefaultConfig())

	if vb, ok := bra.(*Vector); ok && vb.outerQC > 0 {
		global, err := vb.comm.AllReduceSumComplex128(local)
		if err != nil {
			return 0, fmt.Errorf("state: inner product reduction: %w", err)
		}
		return global, nil
	}
	return local, nil
}

// TensorProduct combines two independent states into one joint state over
// QubitCount(left)+QubitCount(right) qubits. The combined basis index takes
// its low-order left.QubitCount() bits from left's basis index and its
// high-order bits from right's; the combined amplitude is the product of the
// two source amplitudes.
func TensorProduct(left, right State) (State, error) {
	if left.OuterQubitCount() > 0 || right.OuterQubitCount() > 0 {
		return nil, fmt.Errorf("%w: tensor product of partitioned buffers", ErrUnsupported)
	}
	out, err := left.AllocateSized(left.QubitCount() + right.QubitCount())
	if err != nil {
		return nil, err
	}

	l, r := left.Amplitudes(), right.Amplitudes()
	dst := out.Amplitudes()
	dimLeft := len(l)
	parallel.For(len(dst), func(i int) {
		dst[i] = l[i%dimLeft] * r[i/dimLeft]
	}, parallel.DefaultConfig())
	return out, nil
}

// PermutateQubit relabels qubits: the qubit originally at position order[k]
// becomes qubit k of the result. Amplitudes move; none are combined or lost.
func PermutateQubit(s State, order []int) (State, error) {
	n := s.QubitCount()
	if s.OuterQubitCount() > 0 {
		return nil, fmt.Errorf("%w: permutation of a partitioned buffer", ErrUnsupported)
	}
	if len(order) != n {
		return nil, fmt.Errorf("%w: order length %d, qubit count %d", ErrInvalidPermutation, len(order), n)
	}
	seen := make([]bool, n)
	for _, q := range order {
		if q < 0 || q >= n || seen[q] {
			return nil, fmt.Errorf("%w: order %v", ErrInvalidPermutation, order)
		}
		seen[q] = true
	}

	out, err := s.AllocateSized(n)
	if err != nil {
		return nil, err
	}
	src := s.Amplitudes()
	dst := out.Amplitudes()
	parallel.For(len(dst), func(i int) {
		// Bit k of the new index comes from bit order[k] of the old one.
		var srcIdx uint64
		for k, q := range order {
			srcIdx |= ((uint64(i) >> k) & 1) << q
		}
		dst[i] = src[srcIdx]
	}, parallel.DefaultConfig())
	return out, nil
}

// DropQubit projects the target qubits onto the given classical values and
// removes them from the index space, yielding a state over the remaining
// qubits. The result is not renormalized; callers needing a distribution
// must Normalize with the retained squared norm.
func DropQubit(s State, targets []int, projection []int) (State, error) {
	n := s.QubitCount()
	if s.OuterQubitCount() > 0 {
		return nil, fmt.Errorf("%w: projection of a partitioned buffer", ErrUnsupported)
	}
	if len(targets) != len(projection) {
		return nil, fmt.Errorf("%w: %d targets, %d projection values", ErrLengthMismatch, len(targets), len(projection))
	}
	if len(targets) == 0 || len(targets) >= n {
		return nil, fmt.Errorf("%w: dropping %d of %d qubits", ErrQubitOutOfRange, len(targets), n)
	}
	seen := make([]bool, n)
	for i, q := range targets {
		if q < 0 || q >= n || seen[q] {
			return nil, fmt.Errorf("%w: target qubits %v", ErrQubitOutOfRange, targets)
		}
		seen[q] = true
		if projection[i] != 0 && projection[i] != 1 {
			return nil, fmt.Errorf("%w: projection value %d at qubit %d", ErrBasisOutOfRange, projection[i], q)
		}
	}

	out, err := s.AllocateSized(n - len(targets))
	if err != nil {
		return nil, err
	}

	// Walk target positions in ascending qubit order so surviving bits keep
	// their relative order while projection bits are inserted.
	type fixed struct{ qubit, value int }
	fixedBits := make([]fixed, 0, len(targets))
	for i, q := range targets {
		fixedBits = append(fixedBits, fixed{q, projection[i]})
	}
	for i := 1; i < len(fixedBits); i++ {
		for j := i; j > 0 && fixedBits[j-1].qubit > fixedBits[j].qubit; j-- {
			fixedBits[j-1], fixedBits[j] = fixedBits[j], fixedBits[j-1]
		}
	}

	src := s.Amplitudes()
	dst := out.Amplitudes()
	parallel.For(len(dst), func(i int) {
		srcIdx := uint64(i)
		for _, f := range fixedBits {
			low := srcIdx & ((uint64(1) << f.qubit) - 1)
			high := (srcIdx >> f.qubit) << (f.qubit + 1)
			srcIdx = high | (uint64(f.value) << f.qubit) | low
		}
		dst[i] = src[srcIdx]
	}, parallel.DefaultConfig())
	return out, nil
}

// MakeSuperposition returns c1*state1 + c2*state2 as a new state. The result
// is not guaranteed normalized.
func MakeSuperposition(c1 complex128, state1 State, c2 complex128, state2 State) (State, error) {
	return LinearCombination([]complex128{c1, c2}, []State{state1, state2})
}

// LinearCombination accumulates sum_i coefs[i]*states[i] into a fresh state.
// All states must share one shape and layout; the coefficient and state
// lists must have equal, nonzero length. Renormalization is the caller's
// responsibility.
func LinearCombination(coefs []complex128, states []State) (State, error) {
	if len(coefs) != len(states) {
		return nil, fmt.Errorf("%w: %d coefficients, %d states", ErrLengthMismatch, len(coefs), len(states))
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: empty linear combination", ErrLengthMismatch)
	}

	out := states[0].AllocateBuffer()
	out.SetZeroNormState()
	for i, s := range states {
		if err := out.AddStateWithCoef(coefs[i], s); err != nil {
			return nil, err
		}
	}
	return out, nil
}
