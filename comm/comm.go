// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package comm defines the collective-communication contract consumed by
// distributed quantum states.
//
// A distributed state owns only the partition of the amplitude buffer whose
// high-order (outer) basis-index bits equal its rank. Operations that need
// global information (squared norm, inner products, marginal probabilities,
// sampling) combine per-rank partial results through a Communicator. Every
// collective is a synchronous call that all participating ranks must issue
// with matching arguments; divergent calls are undefined behavior.
//
// The package ships two implementations: Self, the trivial single-participant
// communicator, and Mesh, an in-process implementation backed by shared
// memory that lets multi-rank layouts run inside one process (ranks on
// separate goroutines). A wire-level transport is an external concern and is
// expected to implement the same interface.
package comm

// Communicator provides the collective operations a distributed state needs.
//
// Rank and Size never change for the lifetime of the communicator. All
// collective methods block until every rank of the communicator has entered
// the same call.
type Communicator interface {
	// Rank returns this participant's index in [0, Size).
	Rank() int
	// Size returns the number of participants.
	Size() int

	// AllReduceSumFloat64 returns the sum of every rank's contribution.
	// All ranks receive the same value, accumulated in rank order.
	AllReduceSumFloat64(x float64) (float64, error)

	// AllReduceSumComplex128 returns the sum of every rank's contribution.
	AllReduceSumComplex128(x complex128) (complex128, error)

	// AllReduceSumUint64 sums the slices of all ranks elementwise. Every
	// rank must pass a slice of the same length.
	AllReduceSumUint64(xs []uint64) ([]uint64, error)

	// AllGatherFloat64 returns every rank's contribution, indexed by rank.
	AllGatherFloat64(x float64) ([]float64, error)

	// BroadcastUint64 distributes root's value to all ranks.
	BroadcastUint64(x uint64, root int) (uint64, error)
}

// Self returns the single-participant communicator. Every collective is the
// identity; it backs states that opt into the distributed layout without a
// second node.
func Self() Communicator {
	return selfComm{}
}

type selfComm struct{}

func (selfComm) Rank() int { return 0 }
func (selfComm) Size() int { return 1 }

func (selfComm) AllReduceSumFloat64(x float64) (float64, error) { return x, nil }

func (selfComm) AllReduceSumComplex128(x complex128) (complex128, error) { return x, nil }

func (selfComm) AllReduceSumUint64(xs []uint64) ([]uint64, error) {
	out := make([]uint64, len(xs))
	copy(out, xs)
	return out, nil
}

func (selfComm) AllGatherFloat64(x float64) ([]float64, error) { return []float64{x}, nil }

func (selfComm) BroadcastUint64(x uint64, _ int) (uint64, error) { return x, nil }
