// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postev

import (
	"fmt"
	"unsafe"
)

// Store holds one History per postsynaptic neuron, over a single
// contiguous event allocation made at construction.
type Store struct {
	Hists []History `desc:"one history per neuron"`
	Evts  []Event   `desc:"backing storage for all histories"`
}

// NewStore allocates histories for nNeurons neurons using given params
func NewStore(nNeurons int, hp *Params) (*Store, error) {
	if nNeurons <= 0 || hp.Capacity <= 0 {
		return nil, fmt.Errorf("%w: neurons: %d, capacity: %d", ErrAlloc, nNeurons, hp.Capacity)
	}
	st := &Store{}
	st.Hists = make([]History, nNeurons)
	st.Evts = make([]Event, nNeurons*hp.Capacity)
	for ni := range st.Hists {
		off := ni * hp.Capacity
		st.Hists[ni].Init(st.Evts[off:off+hp.Capacity:off+hp.Capacity], hp.Overflow)
	}
	return st, nil
}

// Len returns the number of neurons
func (st *Store) Len() int {
	return len(st.Hists)
}

// Hist returns the history for given neuron index
func (st *Store) Hist(ni int) *History {
	return &st.Hists[ni]
}

// Bytes returns the memory held by the store
func (st *Store) Bytes() int {
	return len(st.Evts)*int(unsafe.Sizeof(Event{})) + len(st.Hists)*int(unsafe.Sizeof(History{}))
}

// Evicted returns the total number of evicted events across all neurons
func (st *Store) Evicted() int {
	n := 0
	for i := range st.Hists {
		n += st.Hists[i].Evicted
	}
	return n
}
