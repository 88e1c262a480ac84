// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package postev holds the per-neuron post-synaptic event history used by the
deferred synapse update: each postsynaptic neuron owns a bounded, time
ordered ring of (time, signal) events that presynaptic row updates replay
through half-open time windows.
*/
package postev

import (
	"errors"
	"fmt"
	"math"

	"github.com/goki/ki/kit"
)

// Never is the "far in the past" time sentinel used before any event
const Never = int32(math.MinInt32)

var (
	// ErrAlloc is returned when a store cannot be allocated with the given sizes
	ErrAlloc = errors.New("postev: invalid allocation size")

	// ErrNonMonotonic is returned when appending an event earlier than the newest event
	ErrNonMonotonic = errors.New("postev: event time earlier than newest event")

	// ErrFull is returned by Append under the DropNewest policy when the history is full
	ErrFull = errors.New("postev: history full, event dropped")
)

// Event is one post-synaptic event
type Event struct {
	Time int32  `desc:"event time in ticks, including any dendritic delay"`
	Sig  Signal `desc:"semantic signal code"`
}

// Overflow is the policy for appending to a full history
type Overflow int32

//go:generate stringer -type=Overflow

var KiT_Overflow = kit.Enums.AddEnum(OverflowN, kit.NotBitFlag, nil)

func (ev Overflow) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Overflow) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// OverwriteOldest evicts the oldest event to make room (ring semantics)
	OverwriteOldest Overflow = iota

	// DropNewest keeps the existing events and rejects the new one with ErrFull
	DropNewest

	OverflowN
)

// Params are the history allocation parameters
type Params struct {
	Capacity int      `def:"64" min:"1" desc:"maximum number of events held per neuron -- must cover the longest interval between presynaptic spikes times the post event rate, otherwise events are lost per Overflow"`
	Overflow Overflow `desc:"what to do when a neuron's history is full"`
}

func (hp *Params) Defaults() {
	hp.Capacity = 64
	hp.Overflow = OverwriteOldest
}

func (hp *Params) Update() {
}

// History is the bounded, time-ordered event ring of one postsynaptic neuron
type History struct {
	Evts     []Event  `desc:"ring storage, fixed capacity"`
	Start    int      `desc:"ring index of the oldest event"`
	N        int      `desc:"number of events held"`
	PrevTime int32    `desc:"time of the most recently evicted event, Never if none"`
	Overflow Overflow `desc:"overflow policy"`
	Evicted  int      `desc:"number of events evicted under OverwriteOldest"`
	Dropped  int      `desc:"number of events rejected under DropNewest"`
}

// Init sets the history to empty over the given storage
func (hs *History) Init(evts []Event, ov Overflow) {
	hs.Evts = evts
	hs.Start = 0
	hs.N = 0
	hs.PrevTime = Never
	hs.Overflow = ov
	hs.Evicted = 0
	hs.Dropped = 0
}

// Cap returns the capacity
func (hs *History) Cap() int {
	return len(hs.Evts)
}

// Len returns the number of events held
func (hs *History) Len() int {
	return hs.N
}

// At returns the i'th oldest event held, 0 <= i < Len()
func (hs *History) At(i int) Event {
	return hs.Evts[(hs.Start+i)%len(hs.Evts)]
}

// Newest returns the time of the newest event, or PrevTime if empty
func (hs *History) Newest() int32 {
	if hs.N == 0 {
		return hs.PrevTime
	}
	return hs.At(hs.N - 1).Time
}

// Append adds an event.  Times must be non-decreasing: an earlier time is
// rejected with ErrNonMonotonic.  When full, the Overflow policy applies.
func (hs *History) Append(t int32, sig Signal) error {
	if hs.N > 0 || hs.PrevTime != Never {
		if nw := hs.Newest(); t < nw {
			return fmt.Errorf("%w: %d < %d", ErrNonMonotonic, t, nw)
		}
	}
	cp := len(hs.Evts)
	if hs.N == cp {
		if hs.Overflow == DropNewest {
			hs.Dropped++
			return ErrFull
		}
		hs.PrevTime = hs.Evts[hs.Start].Time
		hs.Start = (hs.Start + 1) % cp
		hs.N--
		hs.Evicted++
	}
	hs.Evts[(hs.Start+hs.N)%cp] = Event{Time: t, Sig: sig}
	hs.N++
	return nil
}

// search returns the first logical index whose time is >= t
func (hs *History) search(t int32) int {
	lo, hi := 0, hs.N
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if hs.At(mid).Time < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Window returns a cursor over the events with begin <= time < end, in
// time order.  It is restartable only by calling Window again.
func (hs *History) Window(begin, end int32) Window {
	wn := Window{hs: hs, PrevTime: hs.PrevTime}
	if hs.N == 0 {
		return wn
	}
	st := hs.search(begin)
	if st > 0 {
		wn.PrevTime = hs.At(st - 1).Time
	}
	if end <= begin {
		wn.pos, wn.end = st, st
		return wn
	}
	ed := hs.search(end)
	wn.pos, wn.end = st, ed
	return wn
}

// Window is a read-only cursor over a time range of a History.
// Usage:
//
//	wn := hs.Window(begin, end)
//	for wn.Next() {
//		ev := wn.Event()
//	}
type Window struct {
	PrevTime int32 `desc:"time of the newest event before the window begin, Never if none"`

	hs  *History
	pos int
	end int
	cur Event
}

// Next advances to the next event, returning false when done
func (wn *Window) Next() bool {
	if wn.pos >= wn.end {
		return false
	}
	wn.cur = wn.hs.At(wn.pos)
	wn.pos++
	return true
}

// Event returns the current event (valid after Next returns true)
func (wn *Window) Event() Event {
	return wn.cur
}

// N returns the number of events remaining
func (wn *Window) N() int {
	return wn.end - wn.pos
}
