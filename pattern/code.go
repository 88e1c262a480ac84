// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

import (
	"fmt"

	"github.com/emer/targetstdp/postev"
	"github.com/goki/ki/kit"
	"github.com/iancoleman/strcase"
)

// Code is the connector code carried by an incoming spike, identifying which
// target connector (and so which semantic role) delivered it.
type Code int32

//go:generate stringer -type=Code

var KiT_Code = kit.Enums.AddEnum(CodeN, kit.NotBitFlag, nil)

func (ev Code) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Code) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The connector codes
const (
	// None is not a valid connector code
	None Code = iota

	// Target is a target spike onto the output layer
	Target

	// Output is an output neuron spike onto itself
	Output

	// TargetPre is a target spike onto the previous layer
	TargetPre

	// OutputPre is an output neuron spike onto the previous layer
	OutputPre

	// Hidden is a hidden neuron spike onto itself
	Hidden

	// Start begins a learning pattern
	Start

	// Stop ends a learning pattern
	Stop

	// StopRegion ends a scored range for the output layer
	StopRegion

	// StopRegionPre ends a scored range for the previous layer
	StopRegionPre

	// StartRegion begins a scored range for the output layer
	StartRegion

	// StartRegionPre begins a scored range for the previous layer
	StartRegionPre

	CodeN
)

// Routes are the layers addressed by range-scored codes
type Routes int32

const (
	// NoRoute codes are not range scored
	NoRoute Routes = iota

	// OutRoute is the output layer route: Output, StopRegion, StartRegion
	OutRoute

	// PrevRoute is the previous layer route: OutputPre, StopRegionPre, StartRegionPre
	PrevRoute

	RoutesN
)

// Valid returns true for codes 1..11
func (cd Code) Valid() bool {
	return cd > None && cd < CodeN
}

// Route returns the layer route for range-scored codes
func (cd Code) Route() Routes {
	switch cd {
	case Output, StopRegion, StartRegion:
		return OutRoute
	case OutputPre, StopRegionPre, StartRegionPre:
		return PrevRoute
	}
	return NoRoute
}

// Signal returns the event signal that records this code verbatim
func (cd Code) Signal() postev.Signal {
	return postev.TargOut + postev.Signal(cd-Target)
}

// CodeFromSource returns the code for a target connector source name,
// e.g. "target", "outputPre", "stopRegion".
func CodeFromSource(name string) (Code, error) {
	var cd Code
	if err := cd.FromString(strcase.ToCamel(name)); err != nil || !cd.Valid() {
		return None, fmt.Errorf("%w: unknown connector source %q", ErrCode, name)
	}
	return cd, nil
}
