// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import "github.com/emer/etable/v2/minmax"

// LogPrec is precision for saving float values in tables
const LogPrec = 4

// RowWtStats returns the average and max of the row weights, as fixed point
// values (not scaled), with the max index giving the connection.
func RowWtStats(row *Row) minmax.AvgMax32 {
	var am minmax.AvgMax32
	am.Init()
	for ci := range row.Syns {
		am.UpdateValue(float32(row.Syns[ci].Wt), int32(ci))
	}
	am.CalcAvg()
	return am
}
