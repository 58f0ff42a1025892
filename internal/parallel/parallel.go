// Package parallel provides chunked parallel sweeps over amplitude buffers.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1 << 12, // Amplitude sweeps are cheap per element.
	}
}

// Sequential returns a config that forces the single-threaded path. The
// SingleThread operation variants use it so that basis indices are always
// visited in ascending order, regardless of worker count.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// SumFloat64 reduces f(i) over i in [0, n) into a float64 sum. The parallel
// path accumulates per-chunk partials and combines them in chunk order, so
// the result is deterministic for a fixed worker count but may differ from
// the sequential sweep in the last bits. Callers needing bit-exact results
// pass Sequential().
func SumFloat64(n int, f func(i int) float64, cfg Config) float64 {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		var sum float64
		for i := 0; i < n; i++ {
			sum += f(i)
		}
		return sum
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	numChunks := (n + chunkSize - 1) / chunkSize
	partials := make([]float64, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			var sum float64
			for i := s; i < e; i++ {
				sum += f(i)
			}
			partials[c] = sum
		}(c, start, end)
	}
	wg.Wait()

	var sum float64
	for _, p := range partials {
		sum += p
	}
	return sum
}

// SumComplex128 is SumFloat64 for complex accumulators.
func SumComplex128(n int, f func(i int) complex128, cfg Config) complex128 {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		var sum complex128
		for i := 0; i < n; i++ {
			sum += f(i)
		}
		return sum
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	numChunks := (n + chunkSize - 1) / chunkSize
	partials := make([]complex128, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			var sum complex128
			for i := s; i < e; i++ {
				sum += f(i)
			}
			partials[c] = sum
		}(c, start, end)
	}
	wg.Wait()

	var sum complex128
	for _, p := range partials {
		sum += p
	}
	return sum
}
