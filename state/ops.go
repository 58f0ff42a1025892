// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package state

import (
	"github.com/qulia-sim/qulia/internal/state"
)

// Composition functions. All operate only through the State contract, so
// any conforming backend can be composed.

// InnerProduct returns <bra|ket> over all basis indices. Fails with
// ErrShapeMismatch on unequal qubit counts.
func InnerProduct(bra, ket State) (complex128, error) {
	return state.InnerProduct(bra, ket)
}

// TensorProduct combines two independent states into one joint state. The
// combined basis index takes its low-order left.QubitCount() bits from
// left's basis index and its high-order bits from right's.
func TensorProduct(left, right State) (State, error) {
	return state.TensorProduct(left, right)
}

// PermutateQubit relabels qubits: the qubit originally at position order[k]
// becomes qubit k of the result.
func PermutateQubit(s State, order []int) (State, error) {
	return state.PermutateQubit(s, order)
}

// DropQubit projects the target qubits onto fixed classical values and
// removes them from the index space. The result is not renormalized;
// callers needing a distribution must Normalize with the retained squared
// norm.
func DropQubit(s State, targets []int, projection []int) (State, error) {
	return state.DropQubit(s, targets, projection)
}

// MakeSuperposition returns c1*state1 + c2*state2 as a new state. The
// result is not guaranteed normalized.
func MakeSuperposition(c1 complex128, state1 State, c2 complex128, state2 State) (State, error) {
	return state.MakeSuperposition(c1, state1, c2, state2)
}

// LinearCombination accumulates sum_i coefs[i]*states[i] into a fresh
// state.
func LinearCombination(coefs []complex128, states []State) (State, error) {
	return state.LinearCombination(coefs, states)
}
