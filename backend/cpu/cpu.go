// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/qulia-sim/qulia/internal/backend/cpu"
	"github.com/qulia-sim/qulia/state"
)

// Backend is the CPU amplitude kernel provider: chunked goroutine sweeps
// over host memory, with sequential single-thread variants as the
// determinism baseline.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements state.Kernel.
var _ state.Kernel = (*Backend)(nil)

// New creates a new CPU kernel provider.
//
// Example:
//
//	import (
//	    "github.com/qulia-sim/qulia/backend/cpu"
//	    "github.com/qulia-sim/qulia/state"
//	)
//
//	func main() {
//	    st, _ := state.NewWithKernel(10, cpu.New())
//	    _ = st
//	}
func New() *Backend {
	return internalcpu.New()
}
