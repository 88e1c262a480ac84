// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !nodiag

package stdp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emer/emergent/v2/weights"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/targetstdp/wtdep"
	"github.com/goki/ki/indent"
)

// DiagOn is true in builds with diagnostics
const DiagOn = true

// wtFloat returns a fixed point value as a float
func wtFloat(v int16) float64 {
	return float64(v) / float64(int32(1)<<wtdep.ScaleShift)
}

// WriteRowJSON writes the connections of a row in a JSON text format.
// We build in the indentation logic to make it much faster and
// more efficient.
func (en *Engine) WriteRowJSON(w io.Writer, row *Row, depth int) error {
	ew := &errWriter{w: w}
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte("{\n"))
	depth++
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte(fmt.Sprintf("\"PreTime\": %d,\n", row.PreTime)))
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte(fmt.Sprintf("\"N\": %d,\n", row.Len())))
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte("\"Cons\": [\n"))
	depth++
	nc := row.Len()
	for ci := 0; ci < nc; ci++ {
		ctrl := row.Ctrls[ci]
		sy := &row.Syns[ci]
		ew.Write(indent.TabBytes(depth))
		ew.Write([]byte(fmt.Sprintf("{ \"Ni\": %d, \"Type\": %d, \"Delay\": %d, \"Wt\": ", ctrl.Index(), ctrl.Type(), ctrl.Delay())))
		ew.Write([]byte(strconv.FormatFloat(wtFloat(sy.Wt), 'g', weights.Prec, 32)))
		ew.Write([]byte(", \"Accum\": "))
		ew.Write([]byte(strconv.FormatFloat(wtFloat(sy.Accum), 'g', weights.Prec, 32)))
		if ci == nc-1 {
			ew.Write([]byte(" }\n"))
		} else {
			ew.Write([]byte(" },\n"))
		}
	}
	depth--
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte("]\n"))
	depth--
	ew.Write(indent.TabBytes(depth))
	ew.Write([]byte("}\n"))
	return ew.err
}

// errWriter keeps the first write error
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(b)
}

// RowTable configures dt with one row per connection of the row
func (en *Engine) RowTable(row *Row, dt *etable.Table) error {
	dt.SetMetaData("name", "RowCons")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Con", etensor.INT64, nil, nil},
		{"Ni", etensor.INT64, nil, nil},
		{"Type", etensor.INT64, nil, nil},
		{"Delay", etensor.INT64, nil, nil},
		{"Wt", etensor.FLOAT32, nil, nil},
		{"Accum", etensor.FLOAT32, nil, nil},
		{"AccumLast", etensor.FLOAT32, nil, nil},
	}
	dt.SetFromSchema(sch, row.Len())
	for ci := 0; ci < row.Len(); ci++ {
		ctrl := row.Ctrls[ci]
		sy := &row.Syns[ci]
		dt.SetCellFloat("Con", ci, float64(ci))
		dt.SetCellFloat("Ni", ci, float64(ctrl.Index()))
		dt.SetCellFloat("Type", ci, float64(ctrl.Type()))
		dt.SetCellFloat("Delay", ci, float64(ctrl.Delay()))
		dt.SetCellFloat("Wt", ci, wtFloat(sy.Wt))
		dt.SetCellFloat("Accum", ci, wtFloat(sy.Accum))
		dt.SetCellFloat("AccumLast", ci, wtFloat(sy.AccumLast))
	}
	return nil
}

// HistTable configures dt with the post event history of neuron ni
func (en *Engine) HistTable(ni int, dt *etable.Table) error {
	if ni < 0 || ni >= en.NNeurons() {
		return fmt.Errorf("%w: %d", ErrNeuron, ni)
	}
	hs := en.Hist(ni)
	dt.SetMetaData("name", fmt.Sprintf("PostEvents_%d", ni))
	dt.SetMetaData("read-only", "true")

	sch := etable.Schema{
		{"Time", etensor.INT64, nil, nil},
		{"Signal", etensor.STRING, nil, nil},
	}
	dt.SetFromSchema(sch, hs.Len())
	for i := 0; i < hs.Len(); i++ {
		ev := hs.At(i)
		dt.SetCellFloat("Time", i, float64(ev.Time))
		dt.SetCellString("Signal", i, ev.Sig.String())
	}
	return nil
}
