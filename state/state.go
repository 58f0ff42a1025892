// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package state

import (
	"github.com/qulia-sim/qulia/comm"
	"github.com/qulia-sim/qulia/internal/backend/cpu"
	"github.com/qulia-sim/qulia/internal/state"
)

// Type aliases for the public API.

// State is the abstract capability set every backend must satisfy.
type State = state.State

// Vector is the local state-vector backend.
type Vector = state.Vector

// Kernel is the amplitude kernel provider contract.
type Kernel = state.Kernel

// Device identifies where an amplitude buffer physically resides.
type Device = state.Device

// Device constants.
const (
	CPU    Device = state.CPU
	WebGPU Device = state.WebGPU
)

// MeasuredValue is one entry of a marginal-probability pattern.
type MeasuredValue = state.MeasuredValue

// Pattern entries for MarginalProbability.
const (
	MeasuredZero MeasuredValue = state.MeasuredZero
	MeasuredOne  MeasuredValue = state.MeasuredOne
	Ignore       MeasuredValue = state.Ignore
)

// Tree is the structured debug/serialization representation of a state.
type Tree = state.Tree

// Sentinel errors, matched with errors.Is.
var (
	ErrShapeMismatch      = state.ErrShapeMismatch
	ErrQubitOutOfRange    = state.ErrQubitOutOfRange
	ErrBasisOutOfRange    = state.ErrBasisOutOfRange
	ErrInvalidPermutation = state.ErrInvalidPermutation
	ErrLengthMismatch     = state.ErrLengthMismatch
	ErrUnsupported        = state.ErrUnsupported
)

// New creates a state-vector over qubitCount qubits on the default CPU
// kernel, initialized to |0...0>.
//
// Example:
//
//	st, err := state.New(3)
func New(qubitCount int) (*Vector, error) {
	return state.New(qubitCount, cpu.New())
}

// NewWithKernel creates a state over an explicit kernel provider, such as an
// accelerator backend:
//
//	k, err := webgpu.New(0)
//	st, err := state.NewWithKernel(20, k)
func NewWithKernel(qubitCount int, k Kernel) (*Vector, error) {
	return state.New(qubitCount, k)
}

// NewDistributed creates a state whose amplitude buffer is partitioned
// across the ranks of c. Every rank must construct the state with identical
// arguments.
func NewDistributed(qubitCount int, k Kernel, c comm.Communicator) (*Vector, error) {
	return state.NewDistributed(qubitCount, k, c)
}
