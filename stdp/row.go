// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import "math"

// Row is the plastic connection row of one presynaptic neuron: the time of
// its last processed spike and, per connection, a control word and the
// plastic synapse word.
type Row struct {
	PreTime int32     `desc:"time of the last presynaptic spike processed for this row"`
	Ctrls   []Control `desc:"control word per connection"`
	Syns    []Synapse `desc:"plastic synapse word per connection"`
}

// NewRow returns a row with n connections and PreTime 0
func NewRow(n int) *Row {
	return &Row{Ctrls: make([]Control, n), Syns: make([]Synapse, n)}
}

// Len returns the number of connections
func (rw *Row) Len() int {
	return len(rw.Syns)
}

// Set sets connection ci
func (rw *Row) Set(ci int, ctrl Control, wt int16) {
	rw.Ctrls[ci] = ctrl
	rw.Syns[ci] = Synapse{Wt: wt}
}

// RingBuf accumulates weight contributions per (delivery time, synapse type,
// neuron index) for the neuron update, addressed circularly by time.
type RingBuf struct {
	Slots     []int32 `desc:"contribution slots, (1 << DelayBits) << TypeIndexBits"`
	Saturated int     `desc:"number of adds that saturated"`
}

// NewRingBuf returns a zeroed ring buffer
func NewRingBuf() *RingBuf {
	return &RingBuf{Slots: make([]int32, (1<<DelayBits)<<TypeIndexBits)}
}

// RingIndex returns the slot index for delivery time t and type-index
func RingIndex(t int32, typeIndex int) int {
	return (int(t)&DelayMask)<<TypeIndexBits | typeIndex&TypeIndexMask
}

// Add adds w into slot idx, saturating at the int32 bounds
func (rb *RingBuf) Add(idx int, w int32) {
	s := int64(rb.Slots[idx]) + int64(w)
	switch {
	case s > math.MaxInt32:
		s = math.MaxInt32
		rb.Saturated++
	case s < math.MinInt32:
		s = math.MinInt32
		rb.Saturated++
	}
	rb.Slots[idx] = int32(s)
}

// At returns the slot for delivery time t and type-index
func (rb *RingBuf) At(t int32, typeIndex int) int32 {
	return rb.Slots[RingIndex(t, typeIndex)]
}

// Clear zeros all slots for delivery time t, once they have been consumed
func (rb *RingBuf) Clear(t int32) {
	st := RingIndex(t, 0)
	for i := st; i < st+(1<<TypeIndexBits); i++ {
		rb.Slots[i] = 0
	}
}
