// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wtdep provides the additive fixed-point weight dependence: an
accumulated timing contribution is scaled by a per synapse type learning
rate and added to the weight, which is always kept within the region bounds.
*/
package wtdep

import (
	"errors"
	"fmt"
	"math"
)

// ScaleShift is the fixed point scale used throughout: 1.0 == 1 << ScaleShift
const ScaleShift = 11

// ErrRegion is returned for region parameters that cannot hold a valid weight
var ErrRegion = errors.New("wtdep: invalid weight region")

// FixedMul returns (a * b) >> ScaleShift, computed in 64 bits and saturated
// to the int32 range.
func FixedMul(a, b int32) int32 {
	p := (int64(a) * int64(b)) >> ScaleShift
	switch {
	case p > math.MaxInt32:
		return math.MaxInt32
	case p < math.MinInt32:
		return math.MinInt32
	}
	return int32(p)
}

// Region holds the weight dependence parameters for one synapse type.
// Values are fixed point with ScaleShift fractional bits.
type Region struct {
	Min     int32 `desc:"minimum weight"`
	Max     int32 `desc:"maximum weight"`
	A2Plus  int32 `desc:"potentiation learning rate, multiplied into the positive accumulator"`
	A2Minus int32 `desc:"depression learning rate as a positive magnitude, multiplied into the magnitude of a negative accumulator"`
}

// Validate returns an error if Min > Max or either falls outside int16
func (rg *Region) Validate() error {
	if rg.Min > rg.Max {
		return fmt.Errorf("%w: min %d > max %d", ErrRegion, rg.Min, rg.Max)
	}
	if rg.Min < math.MinInt16 || rg.Max > math.MaxInt16 {
		return fmt.Errorf("%w: bounds [%d, %d] do not fit the synapse word", ErrRegion, rg.Min, rg.Max)
	}
	return nil
}

// Clamp returns wt clamped to [Min, Max]
func (rg *Region) Clamp(wt int32) int32 {
	if wt < rg.Min {
		return rg.Min
	}
	if wt > rg.Max {
		return rg.Max
	}
	return wt
}

// State is the transient weight state of one synapse during an update
type State struct {
	Initial int32   `desc:"current weight, updated in place by commits"`
	Rg      *Region `desc:"region parameters for the synapse type"`
}

// InitState returns the state for a stored weight under given region
func InitState(wt int16, rg *Region) State {
	return State{Initial: int32(wt), Rg: rg}
}

// Potentiate adds FixedMul(mag, A2Plus) to the weight, clamped
func (ws State) Potentiate(mag int32) State {
	ws.Initial = ws.Rg.Clamp(addSat(ws.Initial, FixedMul(mag, ws.Rg.A2Plus)))
	return ws
}

// Depress subtracts FixedMul(mag, A2Minus) from the weight, clamped
func (ws State) Depress(mag int32) State {
	ws.Initial = ws.Rg.Clamp(addSat(ws.Initial, -FixedMul(mag, ws.Rg.A2Minus)))
	return ws
}

// Commit potentiates for a positive accumulator, depresses by its
// magnitude for a negative one, and does nothing for zero.
func (ws State) Commit(accum int32) State {
	switch {
	case accum > 0:
		return ws.Potentiate(accum)
	case accum < 0:
		if accum == math.MinInt32 {
			accum++
		}
		return ws.Depress(-accum)
	}
	return ws
}

// Final returns the weight clamped into the region, as stored
func (ws State) Final() int16 {
	return int16(ws.Rg.Clamp(ws.Initial))
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
