// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"github.com/emer/targetstdp/pattern"
	"github.com/emer/targetstdp/postev"
	"github.com/emer/targetstdp/timing"
)

// Params are the engine parameters.  The parameter blob carries the decay
// table and weight regions; everything structural is here.
type Params struct {
	Policy          pattern.Policies `desc:"learning-pattern classification policy -- DoubletTriplet pairs with the Simple timing rule, WeightedRange with Layered"`
	Timing          timing.Params    `view:"inline" desc:"timing rule parameters"`
	Hist            postev.Params    `view:"inline" desc:"post-synaptic event history allocation"`
	AxonalDelayBits int              `def:"0" min:"0" max:"2" desc:"number of control word bits above the dendritic delay holding the axonal delay -- 0 means no axonal delay"`
	Debug           bool             `desc:"log every classified event and every replayed event"`
}

func (sp *Params) Defaults() {
	sp.Policy = pattern.DoubletTriplet
	sp.Timing.Defaults()
	sp.Hist.Defaults()
	sp.AxonalDelayBits = 0
	sp.Update()
}

// Update must be called after any changes to parameters
func (sp *Params) Update() {
	switch sp.Policy {
	case pattern.WeightedRange:
		sp.Timing.Rule = timing.Layered
	default:
		sp.Timing.Rule = timing.Simple
	}
	sp.Timing.Update()
	sp.Hist.Update()
}
