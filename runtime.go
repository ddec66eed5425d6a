// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Runtime is one logical thread of cooperative execution.
// It owns the frame table that resolves continuation links, and optionally
// an output [Sink] and an [Observer].
//
// A Runtime and the tasks created on it are confined to one goroutine.
// Only the consumer side of the Sink may be used from another goroutine.
type Runtime struct {
	serial   Serial
	slots    []slot
	free     []uint32
	nextID   uint32
	live     int
	sink     *Sink
	observer Observer
}

// slot is a frame table entry. gen advances on every allocation and
// release, so a frameRef taken before a release never resolves again.
type slot struct {
	gen uint32
	f   *frame
}

// frameRef is a weak reference into the frame table.
// The zero value refers to nothing.
type frameRef struct {
	idx uint32
	gen uint32
}

func (r frameRef) valid() bool { return r.gen != 0 }

// Option configures a Runtime.
type Option func(*Runtime)

// WithSink attaches the sink that Emit writes to.
// Without a sink, emitted lines are discarded.
func WithSink(s *Sink) Option {
	return func(rt *Runtime) { rt.sink = s }
}

// WithObserver installs an observer for frame transitions.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) { rt.observer = o }
}

// NewRuntime creates a Runtime with the next serial.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{serial: nextSerial()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Serial returns the serial assigned to this runtime.
func (rt *Runtime) Serial() Serial { return rt.serial }

// Sink returns the attached sink, or nil.
func (rt *Runtime) Sink() *Sink { return rt.sink }

// Live returns the number of frames not yet destroyed.
func (rt *Runtime) Live() int { return rt.live }

// alloc registers f in the frame table and assigns its id and reference.
func (rt *Runtime) alloc(f *frame) {
	var idx uint32
	if n := len(rt.free); n > 0 {
		idx = rt.free[n-1]
		rt.free = rt.free[:n-1]
	} else {
		idx = uint32(len(rt.slots))
		rt.slots = append(rt.slots, slot{})
	}
	s := &rt.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.f = f
	rt.nextID++
	f.rt = rt
	f.id = rt.nextID
	f.ref = frameRef{idx: idx, gen: s.gen}
	rt.live++
}

// release removes f from the frame table. Links to f stop resolving.
func (rt *Runtime) release(f *frame) {
	if rt.resolve(f.ref) != f {
		return
	}
	s := &rt.slots[f.ref.idx]
	s.f = nil
	s.gen++
	rt.free = append(rt.free, f.ref.idx)
	rt.live--
}

// resolve returns the live frame r refers to, or nil.
func (rt *Runtime) resolve(r frameRef) *frame {
	if !r.valid() || int(r.idx) >= len(rt.slots) {
		return nil
	}
	s := &rt.slots[r.idx]
	if s.gen != r.gen {
		return nil
	}
	return s.f
}
