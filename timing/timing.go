// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package timing implements the target-driven timing rules that fold
post-synaptic events into a per-synapse accumulator of signed, exponentially
decayed contributions, committing the accumulator into the weight at
learning-pattern boundaries.

Two rules are provided, matching the two pattern policies:
Simple consumes the Spike / Begin / Accum / End signals of the doublet /
triplet policy, and Layered consumes the connector-coded signals of the
weighted-range policy.
*/
package timing

import (
	"math"

	"github.com/emer/targetstdp/lut"
	"github.com/emer/targetstdp/postev"
	"github.com/emer/targetstdp/wtdep"
	"github.com/goki/ki/kit"
)

// Rules are the timing rule variants
type Rules int32

//go:generate stringer -type=Rules

var KiT_Rules = kit.Enums.AddEnum(RulesN, kit.NotBitFlag, nil)

func (ev Rules) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Rules) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Simple is the doublet / triplet rule: output spikes during a pattern
	// depress, target spikes potentiate, End commits.
	Simple Rules = iota

	// Layered is the weighted-range rule with separate output and previous
	// layer contributions, gated by hidden layer activity.
	Layered

	RulesN
)

// State is the transient state of one synapse while its event window is folded
type State struct {
	Wt         wtdep.State `desc:"weight state"`
	Accum      int32       `desc:"accumulated contribution not yet committed"`
	AccumLast  int32       `desc:"most recent contribution, folded into Accum by the next event (Simple rule)"`
	LastHidden int32       `desc:"time of the last hidden layer self spike seen in this window (Layered rule)"`
}

// Reset zeros the accumulator pair
func (st *State) Reset() {
	st.Accum = 0
	st.AccumLast = 0
}

// Params are the timing rule parameters
type Params struct {
	Rule    Rules `desc:"which rule to apply"`
	Horizon int32 `def:"513" min:"1" desc:"Layered rule only counts contributions with elapsed time below this many ticks"`
}

func (tp *Params) Defaults() {
	tp.Rule = Simple
	tp.Horizon = 513
}

func (tp *Params) Update() {
	if tp.Horizon <= 0 {
		tp.Horizon = 1
	}
}

// Elapsed returns time - lastPre without wrapping: a lastPre of
// postev.Never, or any difference beyond int32, saturates to MaxInt32.
// A negative result means the event precedes the presynaptic spike.
func Elapsed(time, lastPre int32) int32 {
	if lastPre == postev.Never {
		return math.MaxInt32
	}
	el := int64(time) - int64(lastPre)
	switch {
	case el > math.MaxInt32:
		return math.MaxInt32
	case el < math.MinInt32:
		return math.MinInt32
	}
	return int32(el)
}

// ApplyPostSpike folds one post-synaptic event at given time into st, for a
// synapse whose previous presynaptic spike was at lastPre.
// Signals not used by the configured rule are ignored.
func (tp *Params) ApplyPostSpike(time int32, sig postev.Signal, lastPre int32, st State, tbl *lut.Table) State {
	if tp.Rule == Layered {
		return tp.layered(time, sig, lastPre, st, tbl)
	}
	return tp.simple(time, sig, lastPre, st, tbl)
}

func (tp *Params) simple(time int32, sig postev.Signal, lastPre int32, st State, tbl *lut.Table) State {
	switch sig {
	case postev.Spike:
		if el := Elapsed(time, lastPre); el > 0 {
			st.Accum = addSat(st.Accum, st.AccumLast)
			st.AccumLast = -tbl.Decay(el)
		}
	case postev.Begin:
		st.Reset()
	case postev.Accum:
		if el := Elapsed(time, lastPre); el > 0 {
			st.Accum = addSat(st.Accum, st.AccumLast)
			st.AccumLast = tbl.Decay(el)
		}
	case postev.End:
		st.Wt = st.Wt.Commit(st.Accum)
	}
	return st
}

// layered applies the scored-range rule.  Target spikes add the decay and
// output spikes subtract it, the Prev route only when a hidden spike falls
// between the presynaptic spike and the event.  A range end recorded with
// no on-target output (RangeEndOut / RangeEndPrev) is treated like a
// missed target and adds the decay; this is a chosen reading, as those
// codes carry no contribution of their own.
func (tp *Params) layered(time int32, sig postev.Signal, lastPre int32, st State, tbl *lut.Table) State {
	el := Elapsed(time, lastPre)
	inRange := el >= 0 && el < tp.Horizon
	gated := lastPre < st.LastHidden && st.LastHidden < time
	switch sig {
	case postev.TargOut, postev.RangeEndOut:
		if inRange {
			st.Accum = addSat(st.Accum, tbl.Decay(el))
		}
	case postev.TargPrev, postev.RangeEndPrev:
		if inRange && gated {
			st.Accum = addSat(st.Accum, tbl.Decay(el))
		}
	case postev.OutSelf:
		if inRange {
			st.Accum = addSat(st.Accum, -tbl.Decay(el))
		}
	case postev.OutPrev:
		if inRange && gated {
			st.Accum = addSat(st.Accum, -tbl.Decay(el))
		}
	case postev.HidSelf:
		st.LastHidden = time
	case postev.PatBegin, postev.PatEndNoUpdt:
		st.Accum = 0
	case postev.PatEnd, postev.PatEndUpdt:
		st.Wt = st.Wt.Commit(st.Accum)
		st.Accum = 0
	}
	return st
}

func addSat(a, b int32) int32 {
	s := int64(a) + int64(b)
	switch {
	case s > math.MaxInt32:
		return math.MaxInt32
	case s < math.MinInt32:
		return math.MinInt32
	}
	return int32(s)
}
