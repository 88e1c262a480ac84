// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lut provides the exponential decay lookup table used by the
target-driven timing rule. The table holds exp(-t/tau) in fixed point
(1.0 == 1 << FixedShift), indexed by elapsed time in ticks shifted down by
a configurable time shift so one entry can cover several ticks.

Tables are generated host-side from Params and then loaded once at
initialization; lookups clamp to the table bounds and never index out of
range.
*/
package lut

import (
	"errors"
	"fmt"

	"github.com/goki/ki/ints"
	"github.com/goki/mat32"
)

// FixedShift is the fixed-point scale of table values: 1.0 == 1 << FixedShift
const FixedShift = 11

// Params are the parameters for generating a decay lookup table
type Params struct {
	Tau   float32 `def:"20" min:"0" desc:"decay time constant in ticks (msec at 1 msec time step), i.e. the membrane time constant of the target rule"`
	Size  int     `def:"256" min:"1" desc:"number of entries in the table"`
	Shift int     `def:"0" min:"0" desc:"elapsed time is shifted down by this many bits before indexing, so each entry covers 1 << Shift ticks"`

	Dt float32 `view:"-" json:"-" xml:"-" desc:"rate = 1 / Tau"`
}

func (lp *Params) Defaults() {
	lp.Tau = 20
	lp.Size = 256
	lp.Shift = 0
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *Params) Update() {
	if lp.Tau > 0 {
		lp.Dt = 1 / lp.Tau
	} else {
		lp.Dt = 0
	}
}

// Values generates the fixed-point table values exp(-(i << Shift) / Tau).
// A Tau of 0 yields a table that is 1.0 at i == 0 and 0 after.
// Returns nil if Size <= 0.
func (lp *Params) Values() []int16 {
	if lp.Size <= 0 {
		return nil
	}
	vals := make([]int16, lp.Size)
	one := float32(int32(1) << FixedShift)
	for i := range vals {
		if lp.Dt == 0 {
			if i == 0 {
				vals[i] = int16(one)
			}
			continue
		}
		t := float32(i << lp.Shift)
		vals[i] = int16(mat32.Round(mat32.Exp(-t*lp.Dt) * one))
	}
	return vals
}

// Table is a loaded, validated decay lookup table
type Table struct {
	Vals  []int16 `desc:"fixed-point decay values, monotonically non-increasing and non-negative"`
	Shift int     `desc:"time shift applied before indexing"`
}

var (
	// ErrEmpty is returned when loading a table with no entries
	ErrEmpty = errors.New("lut: empty table")

	// ErrShape is returned when table values are negative or increasing
	ErrShape = errors.New("lut: table must be non-negative and non-increasing")
)

// New returns a Table over the given values, which are validated to be
// non-empty, non-negative and monotonically non-increasing.
func New(vals []int16, shift int) (*Table, error) {
	if len(vals) == 0 {
		return nil, ErrEmpty
	}
	if shift < 0 || shift > 30 {
		return nil, fmt.Errorf("lut: time shift %d out of range", shift)
	}
	for i, v := range vals {
		if v < 0 {
			return nil, fmt.Errorf("%w: entry %d is %d", ErrShape, i, v)
		}
		if i > 0 && v > vals[i-1] {
			return nil, fmt.Errorf("%w: entry %d (%d) > entry %d (%d)", ErrShape, i, v, i-1, vals[i-1])
		}
	}
	return &Table{Vals: vals, Shift: shift}, nil
}

// Build generates and loads a table from params
func (lp *Params) Build() (*Table, error) {
	if lp.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrEmpty, lp.Size)
	}
	lp.Update()
	return New(lp.Values(), lp.Shift)
}

// Len returns the number of entries
func (tb *Table) Len() int {
	return len(tb.Vals)
}

// Last returns the final table entry, the decay applied to every elapsed
// time at or past the horizon.  A value well above 0 means Tau is too long
// for the table size.
func (tb *Table) Last() int32 {
	return int32(tb.Vals[len(tb.Vals)-1])
}

// Horizon returns the number of ticks covered by the table
func (tb *Table) Horizon() int32 {
	return int32(len(tb.Vals)) << tb.Shift
}

// Index returns the clamped table index for elapsed time t
func (tb *Table) Index(t int32) int {
	if t < 0 {
		return 0
	}
	return ints.MinInt(int(t>>tb.Shift), len(tb.Vals)-1)
}

// Decay returns the decay value for elapsed time t.  Times past the end
// of the table return the last entry, negative times the first.
func (tb *Table) Decay(t int32) int32 {
	return int32(tb.Vals[tb.Index(t)])
}
