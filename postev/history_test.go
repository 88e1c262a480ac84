// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postev

import (
	"errors"
	"testing"
)

func newHist(t *testing.T, capacity int, ov Overflow) *History {
	hp := &Params{}
	hp.Defaults()
	hp.Capacity = capacity
	hp.Overflow = ov
	st, err := NewStore(1, hp)
	if err != nil {
		t.Fatal(err)
	}
	return st.Hist(0)
}

func windowEvents(hs *History, begin, end int32) []Event {
	var evs []Event
	wn := hs.Window(begin, end)
	for wn.Next() {
		evs = append(evs, wn.Event())
	}
	return evs
}

func TestNewStoreAlloc(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	if _, err := NewStore(0, hp); !errors.Is(err, ErrAlloc) {
		t.Errorf("zero neurons: got %v, want ErrAlloc", err)
	}
	hp.Capacity = 0
	if _, err := NewStore(4, hp); !errors.Is(err, ErrAlloc) {
		t.Errorf("zero capacity: got %v, want ErrAlloc", err)
	}
	hp.Capacity = 8
	st, err := NewStore(4, hp)
	if err != nil {
		t.Fatal(err)
	}
	if st.Len() != 4 {
		t.Errorf("Len: %d != 4", st.Len())
	}
	for ni := 0; ni < st.Len(); ni++ {
		hs := st.Hist(ni)
		if hs.Len() != 0 || hs.Cap() != 8 || hs.PrevTime != Never {
			t.Errorf("neuron %d not empty at start: len %d cap %d prev %d", ni, hs.Len(), hs.Cap(), hs.PrevTime)
		}
	}
	if st.Bytes() <= 0 {
		t.Errorf("Bytes: %d", st.Bytes())
	}
}

func TestStoreIndependent(t *testing.T) {
	hp := &Params{}
	hp.Defaults()
	hp.Capacity = 2
	st, _ := NewStore(2, hp)
	st.Hist(0).Append(1, Spike)
	st.Hist(0).Append(2, Spike)
	st.Hist(0).Append(3, Spike)
	if st.Hist(1).Len() != 0 {
		t.Errorf("neuron 1 written by neuron 0 appends")
	}
	if st.Evicted() != 1 {
		t.Errorf("Evicted: %d != 1", st.Evicted())
	}
}

func TestWindow(t *testing.T) {
	hs := newHist(t, 16, OverwriteOldest)
	times := []int32{2, 4, 4, 7, 9}
	sigs := []Signal{Begin, Accum, Spike, Accum, End}
	for i := range times {
		if err := hs.Append(times[i], sigs[i]); err != nil {
			t.Fatal(err)
		}
	}
	evs := windowEvents(hs, 4, 9)
	if len(evs) != 3 {
		t.Fatalf("window [4,9): got %d events, want 3", len(evs))
	}
	// equal times keep insertion order
	if evs[0].Sig != Accum || evs[1].Sig != Spike || evs[2].Time != 7 {
		t.Errorf("window [4,9) wrong order: %v", evs)
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].Time < evs[i-1].Time {
			t.Errorf("window out of order at %d: %v", i, evs)
		}
	}
	wn := hs.Window(4, 9)
	if wn.PrevTime != 2 {
		t.Errorf("PrevTime: %d != 2", wn.PrevTime)
	}
	if wn.N() != 3 {
		t.Errorf("N: %d != 3", wn.N())
	}
	wn = hs.Window(0, 3)
	if wn.PrevTime != Never {
		t.Errorf("PrevTime before all: %d != Never", wn.PrevTime)
	}
	if evs := windowEvents(hs, 0, 100); len(evs) != 5 {
		t.Errorf("full window: %d events", len(evs))
	}
}

func TestWindowEmpty(t *testing.T) {
	hs := newHist(t, 8, OverwriteOldest)
	if evs := windowEvents(hs, 0, 10); len(evs) != 0 {
		t.Errorf("empty history gave %d events", len(evs))
	}
	hs.Append(5, Spike)
	hs.Append(6, Spike)
	if evs := windowEvents(hs, 5, 5); len(evs) != 0 {
		t.Errorf("begin == end gave %d events", len(evs))
	}
	if evs := windowEvents(hs, 7, 20); len(evs) != 0 {
		t.Errorf("range after events gave %d events", len(evs))
	}
	if evs := windowEvents(hs, 0, 5); len(evs) != 0 {
		t.Errorf("range before events gave %d events", len(evs))
	}
	if evs := windowEvents(hs, 9, 3); len(evs) != 0 {
		t.Errorf("reversed range gave %d events", len(evs))
	}
}

func TestNonMonotonic(t *testing.T) {
	hs := newHist(t, 4, OverwriteOldest)
	hs.Append(10, Spike)
	if err := hs.Append(9, Spike); !errors.Is(err, ErrNonMonotonic) {
		t.Errorf("got %v, want ErrNonMonotonic", err)
	}
	if hs.Len() != 1 {
		t.Errorf("rejected event was stored")
	}
	if err := hs.Append(10, End); err != nil {
		t.Errorf("equal time rejected: %v", err)
	}
}

func TestOverwriteOldest(t *testing.T) {
	hs := newHist(t, 3, OverwriteOldest)
	for tm := int32(1); tm <= 5; tm++ {
		if err := hs.Append(tm, Spike); err != nil {
			t.Fatal(err)
		}
	}
	if hs.Len() != 3 || hs.Evicted != 2 {
		t.Errorf("len %d evicted %d, want 3 2", hs.Len(), hs.Evicted)
	}
	if hs.PrevTime != 2 {
		t.Errorf("PrevTime after eviction: %d != 2", hs.PrevTime)
	}
	evs := windowEvents(hs, 0, 100)
	for i, ev := range evs {
		if ev.Time != int32(i+3) {
			t.Errorf("event %d: time %d != %d", i, ev.Time, i+3)
		}
	}
	if wn := hs.Window(0, 100); wn.PrevTime != 2 {
		t.Errorf("window PrevTime after eviction: %d != 2", wn.PrevTime)
	}
	if err := hs.Append(1, Spike); !errors.Is(err, ErrNonMonotonic) {
		t.Errorf("append before evicted time: %v", err)
	}
}

func TestDropNewest(t *testing.T) {
	hs := newHist(t, 2, DropNewest)
	hs.Append(1, Spike)
	hs.Append(2, Spike)
	if err := hs.Append(3, Spike); !errors.Is(err, ErrFull) {
		t.Errorf("got %v, want ErrFull", err)
	}
	if hs.Dropped != 1 || hs.Newest() != 2 {
		t.Errorf("dropped %d newest %d", hs.Dropped, hs.Newest())
	}
}

func TestSignalString(t *testing.T) {
	if PatEndUpdt.String() != "PatEndUpdt" {
		t.Errorf("String: %s", PatEndUpdt.String())
	}
	var sg Signal
	if err := sg.FromString("RangeBeginOut"); err != nil || sg != RangeBeginOut {
		t.Errorf("FromString: %v %v", sg, err)
	}
	if !End.IsEnd() || !PatEndNoUpdt.IsEnd() || Accum.IsEnd() {
		t.Errorf("IsEnd wrong")
	}
}
