// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package webgpu

import (
	internalwebgpu "github.com/qulia-sim/qulia/internal/backend/webgpu"
	"github.com/qulia-sim/qulia/state"
)

// Backend is the WebGPU amplitude kernel provider. Large sweeps run as WGSL
// compute dispatches; WGSL has no f64, so GPU paths compute in float32 and
// the single-thread determinism baseline stays on the host.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements state.Kernel.
var _ state.Kernel = (*Backend)(nil)

// New creates a WebGPU kernel provider bound to the given accelerator id.
// The provider owns its device execution context until Release is called.
//
// Example:
//
//	k, err := webgpu.New(0)
//	if err != nil {
//	    // fall back to cpu.New()
//	}
//	defer k.Release()
//	st, _ := state.NewWithKernel(20, k)
func New(deviceID int) (*Backend, error) {
	return internalwebgpu.New(deviceID)
}

// IsAvailable checks if WebGPU is usable on this system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
