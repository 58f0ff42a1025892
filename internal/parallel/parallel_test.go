package parallel

import (
	"math"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Sequential()

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units must fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestSumFloat64(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16
	n := 4096

	got := SumFloat64(n, func(i int) float64 { return float64(i) }, cfg)
	want := float64(n*(n-1)) / 2

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("SumFloat64 = %v, want %v", got, want)
	}
}

func TestSumFloat64_MatchesSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16
	n := 10000

	par := SumFloat64(n, func(i int) float64 { return 1.0 / float64(i+1) }, cfg)
	seq := SumFloat64(n, func(i int) float64 { return 1.0 / float64(i+1) }, Sequential())

	if math.Abs(par-seq) > 1e-9 {
		t.Errorf("parallel sum %v differs from sequential %v", par, seq)
	}
}

func TestSumComplex128(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16
	n := 4096

	got := SumComplex128(n, func(i int) complex128 {
		return complex(float64(i), -float64(i))
	}, cfg)
	want := complex(float64(n*(n-1))/2, -float64(n*(n-1))/2)

	if math.Abs(real(got)-real(want)) > 1e-9 || math.Abs(imag(got)-imag(want)) > 1e-9 {
		t.Errorf("SumComplex128 = %v, want %v", got, want)
	}
}

func BenchmarkSumFloat64(b *testing.B) {
	n := 1 << 20

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			SumFloat64(n, func(i int) float64 { return float64(i) }, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfg := Sequential()
		for i := 0; i < b.N; i++ {
			SumFloat64(n, func(i int) float64 { return float64(i) }, cfg)
		}
	})
}
