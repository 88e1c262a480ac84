// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"fmt"
	"math"
	"reflect"
)

// stdp.Synapse is the plastic synapse word stored in a row, one per connection
type Synapse struct {
	Wt        int16 `desc:"synaptic weight, fixed point with wtdep.ScaleShift fractional bits"`
	Accum     int16 `desc:"accumulated timing contribution not yet committed to the weight, carried between presynaptic spikes"`
	AccumLast int16 `desc:"most recent contribution, pending fold into Accum by the next post event"`
}

var SynapseVars = []string{"Wt", "Accum", "AccumLast"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	v := reflect.ValueOf(*sy)
	return float32(v.Field(idx).Int())
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return sy.VarByIndex(i), nil
}

// SetVarByIndex sets variable by index, rounding and saturating to int16
func (sy *Synapse) SetVarByIndex(idx int, val float32) {
	v := reflect.ValueOf(sy)
	v.Elem().Field(idx).SetInt(int64(sat16(int32(math.Round(float64(val))))))
}

// SetVarByName sets synapse variable to given value
func (sy *Synapse) SetVarByName(varNm string, val float32) error {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	sy.SetVarByIndex(i, val)
	return nil
}

// sat16 saturates an int32 into int16
func sat16(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
