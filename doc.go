// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package targetstdp is the repository for a target-driven, spike timing
dependent synaptic plasticity engine for event-driven spiking neuron
simulations, with fixed point weights and no allocation on the update path.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* lut: the exponential decay lookup table, generated host side and loaded
from the parameter blob.

* postev: the per-neuron post-synaptic event history, a bounded time ordered
ring replayed through half-open time windows.

* pattern: the learning-pattern state machines that classify target and
output spikes into coded events (doublet / triplet and weighted-range policies).

* timing: the Simple and Layered timing rules folding events into the
per-synapse accumulator.

* wtdep: the additive fixed point weight dependence with clamped weights.

* stdp: the engine wiring them together: parameter blob, connection rows,
deferred row updates, the contribution ring buffer and diagnostics.

* examples: these actually compile into runnable programs.  examples/target
runs target-learning episodes on a small population.
*/
package targetstdp
