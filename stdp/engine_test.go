// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/emer/targetstdp/lut"
	"github.com/emer/targetstdp/pattern"
	"github.com/emer/targetstdp/postev"
	"github.com/emer/targetstdp/wtdep"
)

var testRegion = wtdep.Region{Min: 0, Max: 4096, A2Plus: 1024, A2Minus: 1024}

func testBlob() []uint32 {
	lp := &lut.Params{}
	lp.Defaults()
	blob, err := MakeBlob(lp, []wtdep.Region{testRegion, {Min: -2048, Max: 2048, A2Plus: 2048, A2Minus: 512}})
	if err != nil {
		panic(err)
	}
	return blob
}

func testEngine(t *testing.T, pol pattern.Policies, nNeurons int) *Engine {
	pars := &Params{}
	pars.Defaults()
	pars.Policy = pol
	en := NewEngine(pars)
	if err := en.Init(testBlob(), nNeurons); err != nil {
		t.Fatal(err)
	}
	return en
}

func TestInitFail(t *testing.T) {
	en := NewEngine(nil)
	err := en.Init(nil, 4)
	if !errors.Is(err, ErrInit) || !errors.Is(err, ErrBlob) {
		t.Errorf("nil blob: %v", err)
	}
	err = en.Init(testBlob(), 0)
	if !errors.Is(err, ErrInit) || !errors.Is(err, postev.ErrAlloc) {
		t.Errorf("zero neurons: %v", err)
	}
	err = en.Init(testBlob(), IndexMask+2)
	if !errors.Is(err, ErrInit) {
		t.Errorf("too many neurons: %v", err)
	}
	en.Pars.AxonalDelayBits = MaxAxonalDelayBits + 1
	if err := en.Init(testBlob(), 4); !errors.Is(err, ErrInit) {
		t.Errorf("axonal bits: %v", err)
	}
	if err := en.ProcessRow(NewRow(1), NewRingBuf(), 10); !errors.Is(err, ErrInit) {
		t.Errorf("process before init: %v", err)
	}
}

// one connection, a pending positive accumulator committed by an End event
func TestEndToEnd(t *testing.T) {
	for _, w0 := range []int16{1000, 4000} {
		en := testEngine(t, pattern.DoubletTriplet, 4)
		row := NewRow(1)
		ctrl := MakeControl(2, 0, 1)
		row.Set(0, ctrl, w0)
		row.Syns[0].Accum = 600
		if err := en.Hist(1).Append(50, postev.End); err != nil {
			t.Fatal(err)
		}
		buf := NewRingBuf()
		if err := en.ProcessRow(row, buf, 100); err != nil {
			t.Fatal(err)
		}
		want := int16(testRegion.Clamp(int32(w0) + (600*testRegion.A2Plus)>>wtdep.ScaleShift))
		if row.Syns[0].Wt != want {
			t.Errorf("w0 %d: weight %d != %d", w0, row.Syns[0].Wt, want)
		}
		if got := buf.At(102, ctrl.TypeIndex()); got != int32(want) {
			t.Errorf("w0 %d: buffer slot %d != %d", w0, got, want)
		}
		if row.Syns[0].Accum != 0 || row.Syns[0].AccumLast != 0 {
			t.Errorf("accumulator not reset after End: %+v", row.Syns[0])
		}
		if row.PreTime != 100 {
			t.Errorf("PreTime %d != 100", row.PreTime)
		}
		if en.NPreEvents != 1 {
			t.Errorf("NPreEvents %d != 1", en.NPreEvents)
		}
	}
}

func TestSharedPreTime(t *testing.T) {
	en := testEngine(t, pattern.DoubletTriplet, 4)
	row := NewRow(2)
	row.Set(0, MakeControl(1, 0, 0), 1000)
	row.Set(1, MakeControl(1, 0, 0), 1000)
	row.PreTime = 40
	row.Syns[0].Accum = 200
	row.Syns[1].Accum = 200
	en.Hist(0).Append(60, postev.End)
	if err := en.ProcessRow(row, NewRingBuf(), 80); err != nil {
		t.Fatal(err)
	}
	if row.Syns[0] != row.Syns[1] {
		t.Errorf("connections saw different windows: %+v %+v", row.Syns[0], row.Syns[1])
	}
	// the window is consumed: a second update at the same time replays nothing
	wt := row.Syns[0].Wt
	row.Syns[0].Accum = 500
	if err := en.ProcessRow(row, NewRingBuf(), 80); err != nil {
		t.Fatal(err)
	}
	if row.Syns[0].Wt != wt || row.Syns[0].Accum != 500 {
		t.Errorf("consumed window replayed: %+v", row.Syns[0])
	}
}

func TestTimeOrder(t *testing.T) {
	en := testEngine(t, pattern.DoubletTriplet, 4)
	row := NewRow(1)
	row.Set(0, MakeControl(0, 0, 0), 1000)
	row.PreTime = 100
	buf := NewRingBuf()
	if err := en.ProcessRow(row, buf, 90); !errors.Is(err, ErrTimeOrder) {
		t.Errorf("got %v, want ErrTimeOrder", err)
	}
	if row.PreTime != 100 || en.NPreEvents != 0 {
		t.Errorf("state mutated on error")
	}
	row.Set(0, MakeControl(0, 0, 9), 1000)
	if err := en.ProcessRow(row, buf, 110); !errors.Is(err, ErrNeuron) {
		t.Errorf("bad index: %v", err)
	}
	row.Set(0, MakeControl(0, 3, 0), 1000)
	if err := en.ProcessRow(row, buf, 110); !errors.Is(err, ErrRow) {
		t.Errorf("bad type: %v", err)
	}
	if row.PreTime != 100 {
		t.Errorf("PreTime mutated on error")
	}
}

func TestLateEvent(t *testing.T) {
	en := testEngine(t, pattern.DoubletTriplet, 4)
	row := NewRow(1)
	row.Set(0, MakeControl(0, 0, 2), 1000)
	if err := en.ProcessRow(row, NewRingBuf(), 100); err != nil {
		t.Fatal(err)
	}
	if err := en.TargetSpike(2, 99, pattern.Target); !errors.Is(err, ErrLateEvent) {
		t.Errorf("got %v, want ErrLateEvent", err)
	}
	if err := en.PostSpike(2, 99, pattern.Output); !errors.Is(err, ErrLateEvent) {
		t.Errorf("post: got %v, want ErrLateEvent", err)
	}
	if err := en.TargetSpike(2, 100, pattern.Target); err != nil {
		t.Errorf("event at window end rejected: %v", err)
	}
	if err := en.TargetSpike(1, 50, pattern.Target); err != nil {
		t.Errorf("other neuron rejected: %v", err)
	}
	if err := en.TargetSpike(7, 200, pattern.Target); !errors.Is(err, ErrNeuron) {
		t.Errorf("bad neuron: %v", err)
	}
}

// a full doublet / triplet episode: output spike depresses, and the
// target spike contribution is still pending at End
func TestDoubletEpisode(t *testing.T) {
	en := testEngine(t, pattern.DoubletTriplet, 2)
	row := NewRow(1)
	row.Set(0, MakeControl(1, 0, 0), 2000)
	buf := NewRingBuf()
	if err := en.ProcessRow(row, buf, 5); err != nil {
		t.Fatal(err)
	}
	for _, tm := range []int32{10, 11, 12} {
		en.TargetSpike(0, tm, pattern.Target)
	}
	if !en.Learning(0) {
		t.Fatal("triplet did not start learning")
	}
	en.PostSpike(0, 15, pattern.Output)
	en.TargetSpike(0, 20, pattern.Target)
	en.TargetSpike(0, 21, pattern.Target)
	if en.Learning(0) {
		t.Fatal("doublet did not end learning")
	}
	if err := en.ProcessRow(row, buf, 30); err != nil {
		t.Fatal(err)
	}
	ws := wtdep.InitState(2000, &en.Regions[0])
	want := ws.Commit(-en.Table.Decay(10)).Final()
	if row.Syns[0].Wt != want {
		t.Errorf("weight %d != %d", row.Syns[0].Wt, want)
	}
	if buf.At(31, row.Ctrls[0].TypeIndex()) != int32(want) {
		t.Errorf("buffer slot %d != %d", buf.At(31, row.Ctrls[0].TypeIndex()), want)
	}
}

func TestRangeEpisode(t *testing.T) {
	en := testEngine(t, pattern.WeightedRange, 2)
	row := NewRow(1)
	row.Set(0, MakeControl(0, 1, 1), 500)
	buf := NewRingBuf()
	en.ProcessRow(row, buf, 5)

	en.TargetSpike(1, 10, pattern.Start)
	en.PostSpike(1, 11, pattern.Output) // off target
	en.TargetSpike(1, 12, pattern.Target)
	en.TargetSpike(1, 20, pattern.Stop)
	hs := en.Hist(1)
	if hs.Len() != 4 || hs.At(3).Sig != postev.PatEndUpdt {
		t.Fatalf("history: len %d", hs.Len())
	}
	if err := en.ProcessRow(row, buf, 40); err != nil {
		t.Fatal(err)
	}
	ws := wtdep.InitState(500, &en.Regions[1])
	want := ws.Commit(en.Table.Decay(7) - en.Table.Decay(6)).Final()
	if row.Syns[0].Wt != want {
		t.Errorf("weight %d != %d", row.Syns[0].Wt, want)
	}
	if row.Syns[0].Wt >= 500 {
		t.Errorf("off target episode did not depress: %d", row.Syns[0].Wt)
	}
}

func TestReports(t *testing.T) {
	en := testEngine(t, pattern.DoubletTriplet, 8)
	rep := en.SizeReport()
	lst := fmt.Sprintf("Last: %d", en.Table.Last())
	if !strings.Contains(rep, "PostEvents") || !strings.Contains(rep, "Total") || !strings.Contains(rep, lst) {
		t.Errorf("SizeReport:\n%s", rep)
	}
	row := NewRow(3)
	en.FunTimerStart("ProcessRow")
	en.ProcessRow(row, NewRingBuf(), 10)
	en.FunTimerStop("ProcessRow")
	tr := en.TimerReport()
	if !strings.Contains(tr, "ProcessRow") {
		t.Errorf("TimerReport:\n%s", tr)
	}
	if RowSize(row) == 0 {
		t.Errorf("RowSize zero")
	}
}
