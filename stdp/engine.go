// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp is the target-driven synaptic plasticity engine.

Spikes arriving at a postsynaptic neuron are classified by that neuron's
pattern.Classifier into coded events in its postev.History.  Weight updates
are deferred to the next spike of each presynaptic neuron: ProcessRow then
replays, for each connection in that neuron's Row, the window of post events
since the previous presynaptic spike through the timing rule, commits the
accumulated contribution to the weight at pattern boundaries, and adds the
resulting weight into the RingBuf slot for its delivery time.

The engine is single threaded.  All post events up to time T must be
appended before any row update that reads a window ending after T; an
event arriving later is rejected with ErrLateEvent.
*/
package stdp

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/timer"
	"github.com/emer/targetstdp/lut"
	"github.com/emer/targetstdp/pattern"
	"github.com/emer/targetstdp/postev"
	"github.com/emer/targetstdp/timing"
	"github.com/emer/targetstdp/wtdep"
)

var (
	// ErrInit is returned for any initialization failure
	ErrInit = errors.New("stdp: initialization failed")

	// ErrBlob is returned for a nil, truncated or inconsistent parameter blob
	ErrBlob = errors.New("stdp: invalid parameter blob")

	// ErrTimeOrder is returned when a row is processed at a time before its last presynaptic time
	ErrTimeOrder = errors.New("stdp: presynaptic time earlier than last processed")

	// ErrLateEvent is returned when a post event precedes a window already consumed for that neuron
	ErrLateEvent = errors.New("stdp: post event earlier than consumed window")

	// ErrNeuron is returned for an out of range postsynaptic neuron index
	ErrNeuron = errors.New("stdp: neuron index out of range")

	// ErrRow is returned for a malformed row
	ErrRow = errors.New("stdp: invalid row")

	// ErrDiagOff is returned by diagnostics in builds with the nodiag tag
	ErrDiagOff = errors.New("stdp: diagnostics disabled in this build")
)

// Engine holds the learning state for the postsynaptic neurons of one core
type Engine struct {
	Pars       *Params                `desc:"parameters"`
	Table      *lut.Table             `desc:"decay lookup table, from the parameter blob"`
	Regions    []wtdep.Region         `desc:"weight region parameters per synapse type, from the parameter blob"`
	Store      *postev.Store          `desc:"post event history per neuron"`
	Classes    []pattern.Classifier   `desc:"learning-pattern state per neuron"`
	Consumed   []int32                `desc:"per neuron end of the latest window consumed by a row update"`
	NPreEvents int                    `desc:"number of plastic synapse updates processed"`
	FunTimes   map[string]*timer.Time `view:"-" desc:"timers for each major function"`
}

// NewEngine returns a new engine using given params, or defaults if nil.
// Init must be called before use.
func NewEngine(pars *Params) *Engine {
	if pars == nil {
		pars = &Params{}
		pars.Defaults()
	}
	pars.Update()
	return &Engine{Pars: pars, FunTimes: make(map[string]*timer.Time)}
}

// Init loads the decay table and weight regions from the parameter blob and
// allocates per-neuron state for nNeurons postsynaptic neurons.
// Any failure is logged and returned wrapping ErrInit.
func (en *Engine) Init(blob []uint32, nNeurons int) error {
	en.Pars.Update()
	if en.Pars.AxonalDelayBits < 0 || en.Pars.AxonalDelayBits > MaxAxonalDelayBits {
		return en.initErr(fmt.Errorf("axonal delay bits %d not in 0..%d", en.Pars.AxonalDelayBits, MaxAxonalDelayBits))
	}
	if nNeurons > IndexMask+1 {
		return en.initErr(fmt.Errorf("%d neurons exceed the %d addressable by the control word", nNeurons, IndexMask+1))
	}
	tbl, rgs, err := ParseBlob(blob)
	if err != nil {
		return en.initErr(err)
	}
	st, err := postev.NewStore(nNeurons, &en.Pars.Hist)
	if err != nil {
		return en.initErr(err)
	}
	en.Table = tbl
	en.Regions = rgs
	en.Store = st
	en.Classes = make([]pattern.Classifier, nNeurons)
	for ni := range en.Classes {
		en.Classes[ni] = pattern.New(en.Pars.Policy)
	}
	en.Consumed = make([]int32, nNeurons)
	for ni := range en.Consumed {
		en.Consumed[ni] = postev.Never
	}
	en.NPreEvents = 0
	if en.Pars.Debug {
		log.Printf("stdp: init %d neurons, %d synapse types, table size %d, policy %v\n", nNeurons, len(rgs), tbl.Len(), en.Pars.Policy)
	}
	return nil
}

func (en *Engine) initErr(err error) error {
	err = fmt.Errorf("%w: %w", ErrInit, err)
	log.Println(err)
	return err
}

// NNeurons returns the number of postsynaptic neurons, 0 before Init
func (en *Engine) NNeurons() int {
	return len(en.Classes)
}

// Hist returns the post event history for neuron ni
func (en *Engine) Hist(ni int) *postev.History {
	return en.Store.Hist(ni)
}

// Learning returns true while neuron ni has an open learning pattern
func (en *Engine) Learning(ni int) bool {
	return en.Classes[ni].Learning()
}

// checkPost validates a post event for neuron ni at time t
func (en *Engine) checkPost(ni int, t int32) error {
	if en.Store == nil {
		return fmt.Errorf("%w: engine not initialized", ErrInit)
	}
	if ni < 0 || ni >= len(en.Classes) {
		return fmt.Errorf("%w: %d not in 0..%d", ErrNeuron, ni, len(en.Classes)-1)
	}
	if t < en.Consumed[ni] {
		return fmt.Errorf("%w: neuron %d time %d < %d", ErrLateEvent, ni, t, en.Consumed[ni])
	}
	return nil
}

// PostSpike notifies an output spike of neuron ni at time t with connector code
func (en *Engine) PostSpike(ni int, t int32, code pattern.Code) error {
	if err := en.checkPost(ni, t); err != nil {
		return err
	}
	if en.Pars.Debug {
		log.Printf("stdp: post spike neuron %d time %d code %v\n", ni, t, code)
	}
	return en.Classes[ni].Post(t, code, en.Store.Hist(ni))
}

// TargetSpike notifies a target connector spike onto neuron ni at time t
func (en *Engine) TargetSpike(ni int, t int32, code pattern.Code) error {
	if err := en.checkPost(ni, t); err != nil {
		return err
	}
	if en.Pars.Debug {
		log.Printf("stdp: target spike neuron %d time %d code %v\n", ni, t, code)
	}
	return en.Classes[ni].Target(t, code, en.Store.Hist(ni))
}

// ProcessRow applies the deferred updates for all connections of a row
// whose presynaptic neuron spiked at time, then adds each updated weight
// into buf at its delivery slot.  Nothing is modified if an error is returned.
func (en *Engine) ProcessRow(row *Row, buf *RingBuf, time int32) error {
	if en.Store == nil {
		return fmt.Errorf("%w: engine not initialized", ErrInit)
	}
	lastPre := row.PreTime
	if time < lastPre {
		return fmt.Errorf("%w: %d < %d", ErrTimeOrder, time, lastPre)
	}
	if len(row.Ctrls) != len(row.Syns) {
		return fmt.Errorf("%w: %d control words for %d synapses", ErrRow, len(row.Ctrls), len(row.Syns))
	}
	for ci, ctrl := range row.Ctrls {
		if ctrl.Index() >= len(en.Classes) {
			return fmt.Errorf("%w: connection %d targets neuron %d", ErrNeuron, ci, ctrl.Index())
		}
		if ctrl.Type() >= len(en.Regions) {
			return fmt.Errorf("%w: connection %d has synapse type %d of %d", ErrRow, ci, ctrl.Type(), len(en.Regions))
		}
	}
	row.PreTime = time
	axBits := en.Pars.AxonalDelayBits
	tp := &en.Pars.Timing
	for ci := range row.Syns {
		ctrl := row.Ctrls[ci]
		sy := &row.Syns[ci]
		ni := ctrl.Index()
		ax := ctrl.AxonalDelay(axBits)
		begin, end := lastPre+ax, time+ax
		st := timing.State{Wt: wtdep.InitState(sy.Wt, &en.Regions[ctrl.Type()]), Accum: int32(sy.Accum), AccumLast: int32(sy.AccumLast), LastHidden: postev.Never}
		wn := en.Store.Hist(ni).Window(begin, end)
		for wn.Next() {
			ev := wn.Event()
			st = tp.ApplyPostSpike(ev.Time, ev.Sig, begin, st, en.Table)
			if tp.Rule == timing.Simple && ev.Sig.IsEnd() {
				st.Reset()
			}
			if en.Pars.Debug {
				log.Printf("stdp: neuron %d event %v at %d: wt %d accum %d last %d\n", ni, ev.Sig, ev.Time, st.Wt.Initial, st.Accum, st.AccumLast)
			}
		}
		wt := st.Wt.Final()
		buf.Add(RingIndex(end+ctrl.Delay(), ctrl.TypeIndex()), int32(wt))
		sy.Wt = wt
		sy.Accum = sat16(st.Accum)
		sy.AccumLast = sat16(st.AccumLast)
		if end > en.Consumed[ni] {
			en.Consumed[ni] = end
		}
		en.NPreEvents++
	}
	return nil
}

// SizeReport returns a string reporting the memory held by the engine
func (en *Engine) SizeReport() string {
	var b strings.Builder
	lutMem := 0
	lutLast := int32(0)
	if en.Table != nil {
		lutMem = en.Table.Len() * int(unsafe.Sizeof(int16(0)))
		lutLast = en.Table.Last()
	}
	rgMem := len(en.Regions) * int(unsafe.Sizeof(wtdep.Region{}))
	histMem := 0
	if en.Store != nil {
		histMem = en.Store.Bytes()
	}
	stMem := len(en.Classes)*int(unsafe.Sizeof(pattern.Ranges{})) + len(en.Consumed)*4
	fmt.Fprintf(&b, "%14s:\t Entries: %d\t Last: %d\t Mem: %v\n", "DecayTable", lutMem/2, lutLast, (datasize.ByteSize)(lutMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Types: %d\t Mem: %v\n", "Regions", len(en.Regions), (datasize.ByteSize)(rgMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Mem: %v\n", "PostEvents", len(en.Classes), (datasize.ByteSize)(histMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Mem: %v\n", "PatternState", len(en.Classes), (datasize.ByteSize)(stMem).HumanReadable())
	tot := lutMem + rgMem + histMem + stMem
	fmt.Fprintf(&b, "\n%14s:\t Mem: %v\n", "Total", (datasize.ByteSize)(tot).HumanReadable())
	return b.String()
}

// RowSize returns the memory held by a row
func RowSize(row *Row) datasize.ByteSize {
	return datasize.ByteSize(len(row.Ctrls)*int(unsafe.Sizeof(Control(0))) + len(row.Syns)*int(unsafe.Sizeof(Synapse{})) + 4)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (en *Engine) FunTimerStart(fun string) {
	ft, ok := en.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		en.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (en *Engine) FunTimerStop(fun string) {
	ft := en.FunTimes[fun]
	ft.Stop()
}

// TimerReport returns the amount of time spent in each timed function
func (en *Engine) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: PreEvents: %v\n", en.NPreEvents)
	fmt.Fprintf(&b, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(en.FunTimes))
	for k := range en.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = en.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (pcts[i] / tot)
		}
		fmt.Fprintf(&b, "\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], pct)
	}
	fmt.Fprintf(&b, "\t%13s \t%7.3f\n", "Total", tot)
	return b.String()
}
