// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdp

// Control word layout, low to high bits:
//
//	| index (IndexBits) | type (TypeBits) | dendritic delay (DelayBits) | axonal delay |
const (
	IndexBits     = 8
	TypeBits      = 2
	DelayBits     = 4
	TypeIndexBits = TypeBits + IndexBits

	IndexMask     = 1<<IndexBits - 1
	TypeMask      = 1<<TypeBits - 1
	DelayMask     = 1<<DelayBits - 1
	TypeIndexMask = 1<<TypeIndexBits - 1

	// MaxAxonalDelayBits is what remains of the 16 bit control word
	MaxAxonalDelayBits = 16 - TypeIndexBits - DelayBits

	// NTypes is the max number of synapse types
	NTypes = 1 << TypeBits
)

// Control is the per-connection control word of a row
type Control uint16

// MakeControl returns the control word for given dendritic delay, synapse
// type and postsynaptic neuron index
func MakeControl(delay, typ, idx int) Control {
	return Control((delay&DelayMask)<<TypeIndexBits | (typ&TypeMask)<<IndexBits | idx&IndexMask)
}

// SetAxonalDelay returns the control word with the axonal delay field set
func (ct Control) SetAxonalDelay(ax, bits int) Control {
	if bits <= 0 {
		return ct
	}
	sh := TypeIndexBits + DelayBits
	mask := 1<<bits - 1
	return Control(int(ct)&^(mask<<sh) | (ax&mask)<<sh)
}

// Index returns the postsynaptic neuron index
func (ct Control) Index() int {
	return int(ct) & IndexMask
}

// Type returns the synapse type
func (ct Control) Type() int {
	return (int(ct) >> IndexBits) & TypeMask
}

// TypeIndex returns the combined type and index, used to address the ring buffer
func (ct Control) TypeIndex() int {
	return int(ct) & TypeIndexMask
}

// Delay returns the dendritic delay in ticks
func (ct Control) Delay() int32 {
	return int32(ct>>TypeIndexBits) & DelayMask
}

// AxonalDelay returns the axonal delay held in the given number of high bits
func (ct Control) AxonalDelay(bits int) int32 {
	if bits <= 0 {
		return 0
	}
	return int32(ct>>(TypeIndexBits+DelayBits)) & (1<<bits - 1)
}
