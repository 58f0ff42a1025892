package state_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/qulia-sim/qulia/internal/backend/cpu"
	"github.com/qulia-sim/qulia/internal/state"
)

const tol = 1e-10

func newVector(t *testing.T, qubits int) *state.Vector {
	t.Helper()
	v, err := state.New(qubits, cpu.New())
	if err != nil {
		t.Fatalf("New(%d) failed: %v", qubits, err)
	}
	return v
}

func assertClose(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > tol {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestNewValidation(t *testing.T) {
	k := cpu.New()

	if _, err := state.New(0, k); !errors.Is(err, state.ErrQubitOutOfRange) {
		t.Errorf("New(0) error = %v, want ErrQubitOutOfRange", err)
	}
	if _, err := state.New(-3, k); !errors.Is(err, state.ErrQubitOutOfRange) {
		t.Errorf("New(-3) error = %v, want ErrQubitOutOfRange", err)
	}
	if _, err := state.New(63, k); !errors.Is(err, state.ErrQubitOutOfRange) {
		t.Errorf("New(63) error = %v, want ErrQubitOutOfRange", err)
	}
}

func TestZeroState(t *testing.T) {
	for _, qubits := range []int{1, 2, 3, 5, 10} {
		v := newVector(t, qubits)

		assertClose(t, 1, v.SquaredNorm(), "squared norm of zero state")
		if v.Dim() != uint64(1)<<qubits {
			t.Errorf("Dim() = %d, want %d", v.Dim(), uint64(1)<<qubits)
		}

		for q := 0; q < qubits; q++ {
			p, err := v.ZeroProbability(q)
			if err != nil {
				t.Fatalf("ZeroProbability(%d): %v", q, err)
			}
			assertClose(t, 1, p, "zero probability of zero state")
		}
	}
}

func TestZeroProbabilitySingleQubit(t *testing.T) {
	v := newVector(t, 1)
	v.SetZeroState()

	p, err := v.ZeroProbability(0)
	if err != nil {
		t.Fatal(err)
	}
	if p != 1.0 {
		t.Errorf("ZeroProbability(0) = %v, want 1.0", p)
	}

	if _, err := v.ZeroProbability(1); !errors.Is(err, state.ErrQubitOutOfRange) {
		t.Errorf("ZeroProbability(1) error = %v, want ErrQubitOutOfRange", err)
	}
	if _, err := v.ZeroProbability(-1); !errors.Is(err, state.ErrQubitOutOfRange) {
		t.Errorf("ZeroProbability(-1) error = %v, want ErrQubitOutOfRange", err)
	}
}

func TestSetZeroNormState(t *testing.T) {
	v := newVector(t, 3)
	v.SetZeroNormState()

	if norm := v.SquaredNorm(); norm != 0 {
		t.Errorf("squared norm after SetZeroNormState = %v, want 0", norm)
	}
}

func TestSetComputationalBasis(t *testing.T) {
	v := newVector(t, 2)

	if err := v.SetComputationalBasis(3); err != nil {
		t.Fatal(err)
	}
	amps := v.Amplitudes()
	for i, a := range amps {
		want := complex128(0)
		if i == 3 {
			want = 1
		}
		if a != want {
			t.Errorf("amp[%d] = %v, want %v", i, a, want)
		}
	}

	if err := v.SetComputationalBasis(4); !errors.Is(err, state.ErrBasisOutOfRange) {
		t.Errorf("SetComputationalBasis(4) error = %v, want ErrBasisOutOfRange", err)
	}
	// A failed call leaves the state unchanged.
	if v.Amplitudes()[3] != 1 {
		t.Error("failed SetComputationalBasis mutated the state")
	}
}

func TestHaarRandomSeeded(t *testing.T) {
	a := newVector(t, 2)
	b := newVector(t, 2)

	a.SetHaarRandomStateWithSeed(42)
	b.SetHaarRandomStateWithSeed(42)

	assertClose(t, 1, a.SquaredNorm(), "squared norm of Haar-random state")

	ampsA, ampsB := a.Amplitudes(), b.Amplitudes()
	for i := range ampsA {
		if ampsA[i] != ampsB[i] {
			t.Fatalf("seed 42 not reproducible: amp[%d] %v vs %v", i, ampsA[i], ampsB[i])
		}
	}

	b.SetHaarRandomStateWithSeed(43)
	same := true
	for i := range ampsA {
		if ampsA[i] != b.Amplitudes()[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 42 and 43 produced identical states")
	}
}

func TestHaarRandomUnseeded(t *testing.T) {
	v := newVector(t, 4)
	v.SetHaarRandomState()
	first := v.DuplicateAmplitudes()

	v.SetHaarRandomState()
	second := v.Amplitudes()

	assertClose(t, 1, v.SquaredNorm(), "squared norm of Haar-random state")

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("successive unseeded Haar draws were identical")
	}
}

func TestNormalize(t *testing.T) {
	v := newVector(t, 3)
	v.MultiplyCoef(2)

	norm := v.SquaredNorm()
	assertClose(t, 4, norm, "squared norm after scaling by 2")

	v.Normalize(norm)
	assertClose(t, 1, v.SquaredNorm(), "squared norm after Normalize")
}

func TestSquaredNormSingleThreadMatchesParallel(t *testing.T) {
	v := newVector(t, 12)
	v.SetHaarRandomStateWithSeed(7)

	par := v.SquaredNorm()
	seq := v.SquaredNormSingleThread()
	assertClose(t, seq, par, "parallel vs single-thread squared norm")
}

func TestMarginalProbability(t *testing.T) {
	v := newVector(t, 2)
	// (|00> + |11>)/sqrt(2)
	w := complex(1/math.Sqrt2, 0)
	if err := v.LoadAmplitudes([]complex128{w, 0, 0, w}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pattern []state.MeasuredValue
		want    float64
	}{
		{[]state.MeasuredValue{state.MeasuredZero, state.MeasuredZero}, 0.5},
		{[]state.MeasuredValue{state.MeasuredOne, state.MeasuredOne}, 0.5},
		{[]state.MeasuredValue{state.MeasuredZero, state.MeasuredOne}, 0},
		{[]state.MeasuredValue{state.MeasuredZero, state.Ignore}, 0.5},
		{[]state.MeasuredValue{state.Ignore, state.Ignore}, 1},
	}
	for _, tt := range tests {
		p, err := v.MarginalProbability(tt.pattern)
		if err != nil {
			t.Fatalf("MarginalProbability(%v): %v", tt.pattern, err)
		}
		assertClose(t, tt.want, p, "marginal probability")
	}

	if _, err := v.MarginalProbability([]state.MeasuredValue{state.MeasuredZero}); !errors.Is(err, state.ErrLengthMismatch) {
		t.Errorf("short pattern error = %v, want ErrLengthMismatch", err)
	}
	if _, err := v.MarginalProbability([]state.MeasuredValue{state.MeasuredZero, 5}); !errors.Is(err, state.ErrBasisOutOfRange) {
		t.Errorf("invalid pattern entry error = %v, want ErrBasisOutOfRange", err)
	}
}

func TestEntropy(t *testing.T) {
	v := newVector(t, 2)
	assertClose(t, 0, v.Entropy(), "entropy of a basis state")

	w := complex(1/math.Sqrt2, 0)
	if err := v.LoadAmplitudes([]complex128{w, w, 0, 0}); err != nil {
		t.Fatal(err)
	}
	assertClose(t, 1, v.Entropy(), "entropy of an equal two-outcome distribution")

	if err := v.LoadAmplitudes([]complex128{0.5, 0.5, 0.5, 0.5}); err != nil {
		t.Fatal(err)
	}
	assertClose(t, 2, v.Entropy(), "entropy of the uniform distribution")
}

func TestCopyAndLoad(t *testing.T) {
	v := newVector(t, 3)
	v.SetHaarRandomStateWithSeed(99)
	v.SetClassicalValue(0, 1)
	v.SetClassicalValue(2, 1)

	cp := v.Copy()
	if &cp.Amplitudes()[0] == &v.Amplitudes()[0] {
		t.Fatal("Copy shares the amplitude buffer")
	}

	dst := newVector(t, 3)
	if err := dst.Load(cp); err != nil {
		t.Fatal(err)
	}

	src, got := v.Amplitudes(), dst.Amplitudes()
	for i := range src {
		if src[i] != got[i] {
			t.Fatalf("amp[%d] = %v, want %v", i, got[i], src[i])
		}
	}
	reg := dst.Register()
	if len(reg) != 3 || reg[0] != 1 || reg[1] != 0 || reg[2] != 1 {
		t.Errorf("register = %v, want [1 0 1]", reg)
	}

	other := newVector(t, 2)
	if err := dst.Load(other); !errors.Is(err, state.ErrShapeMismatch) {
		t.Errorf("Load across qubit counts error = %v, want ErrShapeMismatch", err)
	}
}

func TestLoadAmplitudes(t *testing.T) {
	v := newVector(t, 1)
	if err := v.LoadAmplitudes([]complex128{0, 1}); err != nil {
		t.Fatal(err)
	}
	if v.Amplitudes()[1] != 1 {
		t.Error("LoadAmplitudes did not overwrite the buffer")
	}
	if err := v.LoadAmplitudes([]complex128{1, 0, 0}); !errors.Is(err, state.ErrShapeMismatch) {
		t.Errorf("wrong-length load error = %v, want ErrShapeMismatch", err)
	}
}

func TestAllocateBuffer(t *testing.T) {
	v := newVector(t, 4)
	buf := v.AllocateBuffer()

	if buf.QubitCount() != 4 || buf.Dim() != 16 {
		t.Errorf("buffer shape = (%d, %d), want (4, 16)", buf.QubitCount(), buf.Dim())
	}
	if len(buf.Amplitudes()) != len(v.Amplitudes()) {
		t.Error("buffer length differs from source")
	}
}

func TestAddState(t *testing.T) {
	a := newVector(t, 2)
	b := newVector(t, 2)
	if err := b.SetComputationalBasis(1); err != nil {
		t.Fatal(err)
	}

	if err := a.AddState(b); err != nil {
		t.Fatal(err)
	}
	assertClose(t, 2, a.SquaredNorm(), "squared norm of |00>+|01>")

	c := newVector(t, 3)
	if err := a.AddState(c); !errors.Is(err, state.ErrShapeMismatch) {
		t.Errorf("AddState across qubit counts error = %v, want ErrShapeMismatch", err)
	}
}

func TestAddStateWithCoef(t *testing.T) {
	a := newVector(t, 1)
	b := newVector(t, 1)
	if err := b.SetComputationalBasis(1); err != nil {
		t.Fatal(err)
	}

	if err := a.AddStateWithCoef(2i, b); err != nil {
		t.Fatal(err)
	}
	if got := a.Amplitudes()[1]; got != 2i {
		t.Errorf("amp[1] = %v, want 2i", got)
	}

	a2 := newVector(t, 1)
	if err := a2.AddStateWithCoefSingleThread(2i, b); err != nil {
		t.Fatal(err)
	}
	if a2.Amplitudes()[1] != a.Amplitudes()[1] {
		t.Error("single-thread variant disagrees with parallel variant")
	}
}

func TestMultiplyCoef(t *testing.T) {
	v := newVector(t, 2)
	v.MultiplyCoef(1i)
	if got := v.Amplitudes()[0]; got != 1i {
		t.Errorf("amp[0] = %v, want i", got)
	}
	assertClose(t, 1, v.SquaredNorm(), "norm after multiplying by i")
}

func TestMultiplyElementwiseFunction(t *testing.T) {
	v := newVector(t, 3)
	v.SetHaarRandomStateWithSeed(5)
	before := v.SquaredNorm()

	// A global phase must preserve the norm.
	v.MultiplyElementwiseFunction(func(index uint64) complex128 {
		return cmplx.Exp(complex(0, 0.25*float64(index)))
	})
	assertClose(t, before, v.SquaredNorm(), "norm after per-index phases")

	// Zeroing odd indices halves nothing on a basis state at index 0.
	v0 := newVector(t, 2)
	v0.MultiplyElementwiseFunction(func(index uint64) complex128 {
		if index%2 == 1 {
			return 0
		}
		return 1
	})
	assertClose(t, 1, v0.SquaredNorm(), "norm after masking odd indices of |00>")
}

func TestClassicalRegister(t *testing.T) {
	v := newVector(t, 1)

	if got := v.ClassicalValue(5); got != 0 {
		t.Errorf("unset register index = %d, want 0", got)
	}

	v.SetClassicalValue(3, 1)
	if got := v.ClassicalValue(3); got != 1 {
		t.Errorf("register[3] = %d, want 1", got)
	}
	if got := v.ClassicalValue(2); got != 0 {
		t.Errorf("register[2] = %d, want 0", got)
	}

	v.SetClassicalValue(3, 0)
	if got := v.ClassicalValue(3); got != 0 {
		t.Errorf("register[3] after overwrite = %d, want 0", got)
	}

	// Register is independent of the amplitude buffer.
	v.SetZeroState()
	v.SetClassicalValue(0, 1)
	if got := v.ClassicalValue(0); got != 1 {
		t.Errorf("register[0] = %d, want 1", got)
	}
}

func TestDeviceName(t *testing.T) {
	v := newVector(t, 1)
	if v.DeviceName() != "cpu" {
		t.Errorf("DeviceName() = %q, want %q", v.DeviceName(), "cpu")
	}
	if v.Device() != state.CPU {
		t.Errorf("Device() = %v, want CPU", v.Device())
	}
	if !v.IsStateVector() {
		t.Error("IsStateVector() = false for a state vector")
	}
}

func TestTreeAndString(t *testing.T) {
	v := newVector(t, 1)
	v.SetClassicalValue(0, 1)

	tree := v.Tree()
	if tree["qubit_count"] != 1 {
		t.Errorf("tree qubit_count = %v, want 1", tree["qubit_count"])
	}
	if tree["name"] != "QuantumState" {
		t.Errorf("tree name = %v", tree["name"])
	}
	amps, ok := tree["amplitudes"].([][2]float64)
	if !ok || len(amps) != 2 {
		t.Fatalf("tree amplitudes = %#v", tree["amplitudes"])
	}
	if amps[0] != [2]float64{1, 0} {
		t.Errorf("tree amp[0] = %v, want (1,0)", amps[0])
	}

	s := v.String()
	if s == "" {
		t.Fatal("empty String()")
	}
}
