// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postev

import "github.com/goki/ki/kit"

// Signal is the semantic code stored with each post-synaptic event.
// The first block is produced by the doublet / triplet pattern policy and
// consumed by the simple timing rule, the second block by the
// weighted-range policy and the layered timing rule.
type Signal int16

//go:generate stringer -type=Signal

var KiT_Signal = kit.Enums.AddEnum(SignalN, kit.NotBitFlag, nil)

func (ev Signal) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Signal) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The signals
const (
	// Spike is an ordinary output spike during a learning pattern
	Spike Signal = iota

	// Begin starts a learning pattern: accumulators are reset
	Begin

	// Accum is a target spike within a learning pattern: accumulate
	Accum

	// End ends a learning pattern: accumulated change is committed to the weight
	End

	// TargOut is a target spike onto the output layer (connector code 1)
	TargOut

	// OutSelf is an output neuron spike back onto itself (code 2)
	OutSelf

	// TargPrev is a target spike onto the previous layer (code 3)
	TargPrev

	// OutPrev is an output neuron spike onto the previous layer (code 4)
	OutPrev

	// HidSelf is a hidden neuron spike back onto itself (code 5)
	HidSelf

	// PatBegin begins a weighted-range pattern (code 6)
	PatBegin

	// PatEnd ends a pattern with weight commit (code 7, raw form)
	PatEnd

	// RangeEndOut ends a scored range on the output layer without an on-target spike (code 8)
	RangeEndOut

	// RangeEndPrev ends a scored range on the previous layer without an on-target spike (code 9)
	RangeEndPrev

	// RangeBeginOut begins a scored range on the output layer (code 10)
	RangeBeginOut

	// RangeBeginPrev begins a scored range on the previous layer (code 11)
	RangeBeginPrev

	// PatEndNoUpdt ends a pattern that scored well: accumulator dropped, weight kept
	PatEndNoUpdt

	// PatEndUpdt ends a pattern that scored poorly: accumulator committed to weight
	PatEndUpdt

	SignalN
)

// IsEnd returns true for any signal that closes a learning pattern
func (ev Signal) IsEnd() bool {
	switch ev {
	case End, PatEnd, PatEndNoUpdt, PatEndUpdt:
		return true
	}
	return false
}

// IsBegin returns true for signals that open a learning pattern
func (ev Signal) IsBegin() bool {
	return ev == Begin || ev == PatBegin
}
