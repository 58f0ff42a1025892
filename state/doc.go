// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package state provides quantum-state representation for the Qulia
// simulator.
//
// # Overview
//
// A quantum state over n qubits is a vector of 2^n complex amplitudes. This
// package provides:
//   - State: the capability set every backend must satisfy
//   - Vector: the state-vector backend over a contiguous complex buffer
//   - Kernel: the amplitude kernel provider contract (CPU, WebGPU)
//   - Composition over the contract: InnerProduct, TensorProduct,
//     PermutateQubit, DropQubit, MakeSuperposition, LinearCombination
//
// # Basic Usage
//
//	import "github.com/qulia-sim/qulia/state"
//
//	func main() {
//	    st, _ := state.New(3)
//	    st.SetHaarRandomStateWithSeed(42)
//
//	    p, _ := st.ZeroProbability(0)
//	    samples, _ := st.Sampling(1000)
//	}
//
// # Bit Conventions
//
// Bit k of a basis index is the value of qubit k: basis index 6 = 0b110 has
// qubit 0 at 0 and qubits 1 and 2 at 1. TensorProduct(left, right) assigns
// the low-order left.QubitCount() index bits to left.
//
// # Device Support
//
// Amplitude kernels can run on different devices:
//   - CPU: chunked goroutine sweeps over host memory
//   - WebGPU: zero-CGO GPU dispatch for large reductions
//
//	k, err := webgpu.New(0)
//	if err != nil {
//	    k = cpu.New()
//	}
//	st, _ := state.NewWithKernel(20, k)
//
// # Distributed Layouts
//
// A state may partition its amplitude buffer across the ranks of a
// comm.Communicator; each rank owns the slice of basis indices whose
// high-order (outer) bits equal its rank. Global queries (norms,
// probabilities, sampling, inner products) reduce across ranks
// transparently. Structural composition (TensorProduct, PermutateQubit,
// DropQubit) requires fully local buffers and fails with ErrUnsupported on
// partitioned ones.
//
// # Concurrency
//
// A single state instance is not safe for concurrent use. Distinct
// instances share no buffers and may be operated on concurrently, including
// instances sharing one kernel provider.
package state
