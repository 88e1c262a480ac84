// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build nodiag

package stdp

import (
	"io"

	"github.com/emer/etable/v2/etable"
)

// DiagOn is true in builds with diagnostics
const DiagOn = false

func (en *Engine) WriteRowJSON(w io.Writer, row *Row, depth int) error {
	return ErrDiagOff
}

func (en *Engine) RowTable(row *Row, dt *etable.Table) error {
	return ErrDiagOff
}

func (en *Engine) HistTable(ni int, dt *etable.Table) error {
	return ErrDiagOff
}
