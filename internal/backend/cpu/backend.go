// Package cpu implements the amplitude kernel provider over host memory,
// with chunked goroutine sweeps for the parallel operation variants.
package cpu

import (
	"github.com/qulia-sim/qulia/internal/parallel"
	"github.com/qulia-sim/qulia/internal/state"
)

// CPUBackend implements the amplitude kernels on host memory.
type CPUBackend struct {
	cfg parallel.Config
}

// New creates a new CPU kernel provider.
func New() *CPUBackend {
	return &CPUBackend{cfg: parallel.DefaultConfig()}
}

// NewWithConfig creates a kernel provider with an explicit parallel
// configuration. Used by tests and by callers embedding the sweeps inside
// their own parallel regions.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend kind.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Device returns the buffer placement.
func (cpu *CPUBackend) Device() state.Device {
	return state.CPU
}

// Release is a no-op; host memory has no execution context to tear down.
func (cpu *CPUBackend) Release() {}

func sqrMag(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
