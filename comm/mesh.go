// Copyright 2026 Qulia Simulator Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package comm

import (
	"fmt"
	"sync"
)

// NewMesh creates n communicators sharing one in-process exchange. Rank i of
// the returned slice is the communicator for participant i. Each rank must be
// driven from its own goroutine; a collective completes once all n ranks have
// entered it.
func NewMesh(n int) ([]Communicator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("comm: mesh size must be positive, got %d", n)
	}
	h := &hub{size: n, vals: make([]any, n)}
	h.cond = sync.NewCond(&h.mu)
	comms := make([]Communicator, n)
	for i := range comms {
		comms[i] = &meshRank{rank: i, hub: h}
	}
	return comms, nil
}

// hub synchronizes one collective round at a time. The last rank to arrive
// snapshots all contributions, advances the generation, and wakes the rest.
type hub struct {
	size int

	mu       sync.Mutex
	cond     *sync.Cond
	gen      uint64
	arrived  int
	vals     []any
	snapshot []any
}

// exchange blocks until all ranks have contributed, then returns every rank's
// value in rank order. The returned slice is shared by all ranks of the round
// and must not be modified.
func (h *hub) exchange(rank int, val any) []any {
	h.mu.Lock()
	defer h.mu.Unlock()

	gen := h.gen
	h.vals[rank] = val
	h.arrived++
	if h.arrived == h.size {
		h.snapshot = append([]any(nil), h.vals...)
		h.arrived = 0
		h.gen++
		h.cond.Broadcast()
		return h.snapshot
	}
	for gen == h.gen {
		h.cond.Wait()
	}
	return h.snapshot
}

type meshRank struct {
	rank int
	hub  *hub
}

func (m *meshRank) Rank() int { return m.rank }
func (m *meshRank) Size() int { return m.hub.size }

func (m *meshRank) AllReduceSumFloat64(x float64) (float64, error) {
	all := m.hub.exchange(m.rank, x)
	// Accumulate in rank order so every rank sees bit-identical results.
	var sum float64
	for _, v := range all {
		sum += v.(float64)
	}
	return sum, nil
}

func (m *meshRank) AllReduceSumComplex128(x complex128) (complex128, error) {
	all := m.hub.exchange(m.rank, x)
	var sum complex128
	for _, v := range all {
		sum += v.(complex128)
	}
	return sum, nil
}

func (m *meshRank) AllReduceSumUint64(xs []uint64) ([]uint64, error) {
	local := make([]uint64, len(xs))
	copy(local, xs)
	all := m.hub.exchange(m.rank, local)
	out := make([]uint64, len(xs))
	for _, v := range all {
		contrib := v.([]uint64)
		if len(contrib) != len(xs) {
			return nil, fmt.Errorf("comm: AllReduceSumUint64 length mismatch: %d vs %d", len(contrib), len(xs))
		}
		for i, c := range contrib {
			out[i] += c
		}
	}
	return out, nil
}

func (m *meshRank) AllGatherFloat64(x float64) ([]float64, error) {
	all := m.hub.exchange(m.rank, x)
	out := make([]float64, len(all))
	for i, v := range all {
		out[i] = v.(float64)
	}
	return out, nil
}

func (m *meshRank) BroadcastUint64(x uint64, root int) (uint64, error) {
	if root < 0 || root >= m.hub.size {
		return 0, fmt.Errorf("comm: broadcast root %d out of range [0, %d)", root, m.hub.size)
	}
	all := m.hub.exchange(m.rank, x)
	return all[root].(uint64), nil
}
