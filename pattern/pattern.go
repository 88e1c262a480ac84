// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pattern classifies the raw target and output spikes arriving at one
postsynaptic neuron into the coded events of its post-synaptic history,
tracking the learning-pattern state (pattern begin / end, scored ranges)
that decides which events are recorded.

Each neuron owns one Classifier, created by New for the configured policy.
*/
package pattern

import (
	"errors"
	"fmt"

	"github.com/emer/targetstdp/postev"
	"github.com/goki/ki/kit"
)

// ErrCode is returned for an invalid connector code or source name
var ErrCode = errors.New("pattern: invalid connector code")

// Appender receives classified events, normally a *postev.History
type Appender interface {
	Append(t int32, sig postev.Signal) error
}

// Classifier is the per-neuron learning-pattern state machine
type Classifier interface {
	// Post handles an output (ordinary) spike of the neuron at time t
	Post(t int32, code Code, hist Appender) error

	// Target handles a spike from a target connector at time t
	Target(t int32, code Code, hist Appender) error

	// Learning returns true while a learning pattern is open
	Learning() bool

	// Reset returns to the initial state
	Reset()
}

// Policies are the pattern classification policies
type Policies int32

//go:generate stringer -type=Policies

var KiT_Policies = kit.Enums.AddEnum(PoliciesN, kit.NotBitFlag, nil)

func (ev Policies) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Policies) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// DoubletTriplet detects pattern begin / end from the timing of target
	// spikes: a triplet on consecutive ticks begins, a doublet ends.
	DoubletTriplet Policies = iota

	// WeightedRange uses explicit connector codes for pattern begin / end
	// and scored ranges, and tallies output spikes on and off target.
	WeightedRange

	PoliciesN
)

// New returns a new classifier for given policy
func New(pol Policies) Classifier {
	switch pol {
	case WeightedRange:
		cl := &Ranges{}
		cl.Reset()
		return cl
	default:
		cl := &Doublets{}
		cl.Reset()
		return cl
	}
}

// isNext returns true if t is exactly one tick after last, without wrapping
func isNext(t, last int32) bool {
	if last == postev.Never {
		return false
	}
	return int64(t)-int64(last) == 1
}

//////////////////////////////////////////////////////////////////////////////////////
//  Doublets

// Doublets is the doublet / triplet policy state
type Doublets struct {
	Learn       bool  `desc:"true while a learning pattern is open"`
	LastTarget  int32 `desc:"time of the last target spike"`
	LastDoublet int32 `desc:"time of the second spike of the last doublet seen outside a pattern"`
}

func (cl *Doublets) Learning() bool { return cl.Learn }

func (cl *Doublets) Reset() {
	cl.Learn = false
	cl.LastTarget = postev.Never
	cl.LastDoublet = postev.Never
}

// Post records an output spike as Spike while learning.
func (cl *Doublets) Post(t int32, code Code, hist Appender) error {
	if !cl.Learn {
		return nil
	}
	return hist.Append(t, postev.Spike)
}

// Target classifies a target spike: doublet + triplet begins a pattern,
// a doublet alone ends one, any other target spike accumulates.
// State changes only if the event is accepted by hist.
func (cl *Doublets) Target(t int32, code Code, hist Appender) error {
	nx := *cl
	sig, rec := nx.target(t)
	if rec {
		if err := hist.Append(t, sig); err != nil {
			return err
		}
	}
	*cl = nx
	return nil
}

// target advances the state for a target spike at t, returning the signal
// to record and whether to record it
func (cl *Doublets) target(t int32) (postev.Signal, bool) {
	doublet := isNext(t, cl.LastTarget)
	triplet := isNext(t, cl.LastDoublet)
	switch {
	case doublet && triplet:
		cl.Learn = true
		return postev.Begin, true
	case doublet:
		if !cl.Learn {
			cl.LastDoublet = t
			cl.LastTarget = t
			return 0, false
		}
		cl.Learn = false
		return postev.End, true
	}
	cl.LastTarget = t
	return postev.Accum, cl.Learn
}

//////////////////////////////////////////////////////////////////////////////////////
//  Ranges

// Ranges is the weighted-range policy state
type Ranges struct {
	Learn      bool           `desc:"true while a learning pattern is open"`
	RangeStart [RoutesN]int32 `desc:"start time of the open scored range per route, 0 if closed"`
	OnTarget   int            `desc:"output spikes inside a scored range in this pattern"`
	OffTarget  int            `desc:"output spikes outside any scored range in this pattern"`
}

func (cl *Ranges) Learning() bool { return cl.Learn }

func (cl *Ranges) Reset() {
	cl.Learn = false
	cl.RangeStart = [RoutesN]int32{}
	cl.OnTarget = 0
	cl.OffTarget = 0
}

func (cl *Ranges) Post(t int32, code Code, hist Appender) error {
	return cl.classify(t, code, hist)
}

func (cl *Ranges) Target(t int32, code Code, hist Appender) error {
	return cl.classify(t, code, hist)
}

// classify records the event for code at t, changing state only if the
// event is accepted by hist
func (cl *Ranges) classify(t int32, code Code, hist Appender) error {
	if !code.Valid() {
		return fmt.Errorf("%w: %d", ErrCode, code)
	}
	nx := *cl
	sig, rec := nx.step(t, code)
	if rec {
		if err := hist.Append(t, sig); err != nil {
			return err
		}
	}
	*cl = nx
	return nil
}

// step advances the state for code at t, returning the signal to record
// and whether to record it
func (cl *Ranges) step(t int32, code Code) (postev.Signal, bool) {
	if !cl.Learn {
		if code != Start {
			return 0, false
		}
		cl.Learn = true
		cl.OnTarget = 0
		cl.OffTarget = 0
		return postev.PatBegin, true
	}
	switch code {
	case Output, OutputPre:
		if cl.RangeStart[code.Route()] > 0 {
			cl.OnTarget++
		} else {
			cl.OffTarget++
		}
	case Stop:
		cl.Learn = false
		if cl.OnTarget > cl.OffTarget {
			return postev.PatEndNoUpdt, true
		}
		return postev.PatEndUpdt, true
	case StopRegion, StopRegionPre:
		cl.RangeStart[code.Route()] = 0
		return code.Signal(), cl.OnTarget == 0
	case StartRegion, StartRegionPre:
		cl.RangeStart[code.Route()] = t
		return 0, false
	}
	return code.Signal(), true
}
