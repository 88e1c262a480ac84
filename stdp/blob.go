// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

import (
	"fmt"

	"github.com/emer/targetstdp/lut"
	"github.com/emer/targetstdp/wtdep"
)

// MaxLUTSize bounds the table size read from a blob
const MaxLUTSize = 1 << 16

// The parameter blob is a sequence of 32 bit words:
//
//	lutSize, lutShift,
//	(lutSize+1)/2 words of packed int16 table values, low half first,
//	nTypes,
//	nTypes * {min, max, a2Plus, a2Minus}

// ParseBlob reads the decay table and weight regions from a parameter blob
func ParseBlob(blob []uint32) (*lut.Table, []wtdep.Region, error) {
	if blob == nil {
		return nil, nil, fmt.Errorf("%w: nil blob", ErrBlob)
	}
	if len(blob) < 2 {
		return nil, nil, fmt.Errorf("%w: truncated header, %d words", ErrBlob, len(blob))
	}
	n := int(blob[0])
	shift := int(int32(blob[1]))
	if n <= 0 || n > MaxLUTSize {
		return nil, nil, fmt.Errorf("%w: table size %d out of range", ErrBlob, n)
	}
	nw := (n + 1) / 2
	pos := 2
	if len(blob) < pos+nw+1 {
		return nil, nil, fmt.Errorf("%w: truncated table, need %d words, have %d", ErrBlob, pos+nw+1, len(blob))
	}
	vals := make([]int16, n)
	for i := range vals {
		w := blob[pos+i/2]
		if i%2 == 1 {
			w >>= 16
		}
		vals[i] = int16(uint16(w))
	}
	pos += nw
	tbl, err := lut.New(vals, shift)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBlob, err)
	}
	nt := int(blob[pos])
	pos++
	if nt <= 0 || nt > NTypes {
		return nil, nil, fmt.Errorf("%w: number of synapse types %d not in 1..%d", ErrBlob, nt, NTypes)
	}
	if len(blob) < pos+4*nt {
		return nil, nil, fmt.Errorf("%w: truncated regions, need %d words, have %d", ErrBlob, pos+4*nt, len(blob))
	}
	rgs := make([]wtdep.Region, nt)
	for ti := range rgs {
		rg := &rgs[ti]
		rg.Min = int32(blob[pos])
		rg.Max = int32(blob[pos+1])
		rg.A2Plus = int32(blob[pos+2])
		rg.A2Minus = int32(blob[pos+3])
		pos += 4
		if err := rg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: type %d: %w", ErrBlob, ti, err)
		}
	}
	return tbl, rgs, nil
}

// MakeBlob writes a parameter blob for a table generated from lp and the
// given weight regions, one per synapse type.  Regions are written as
// given and checked by ParseBlob; only the table size is checked here.
func MakeBlob(lp *lut.Params, regions []wtdep.Region) ([]uint32, error) {
	if lp.Size <= 0 || lp.Size > MaxLUTSize {
		return nil, fmt.Errorf("%w: table size %d out of range", ErrBlob, lp.Size)
	}
	lp.Update()
	vals := lp.Values()
	n := len(vals)
	blob := make([]uint32, 0, 3+(n+1)/2+4*len(regions))
	blob = append(blob, uint32(n), uint32(int32(lp.Shift)))
	for i := 0; i < n; i += 2 {
		w := uint32(uint16(vals[i]))
		if i+1 < n {
			w |= uint32(uint16(vals[i+1])) << 16
		}
		blob = append(blob, w)
	}
	blob = append(blob, uint32(len(regions)))
	for _, rg := range regions {
		blob = append(blob, uint32(rg.Min), uint32(rg.Max), uint32(rg.A2Plus), uint32(rg.A2Minus))
	}
	return blob, nil
}
