// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Hooks into the frame table and continuation links for coro_test.

type Frame = frame

type FrameRef = frameRef

func FrameOf[T any](t *Task[T]) *Frame { return t.f }

func (f *frame) Install(caller *Frame) error { return f.install(caller) }

func (f *frame) Continuation() *Frame { return f.continuation() }

// MarkAwaiting points f's forward reference at callee, as an await does.
func (f *frame) MarkAwaiting(callee *Frame) { f.awaiting = callee.ref }

func (f *frame) Ref() FrameRef  { return f.ref }
func (f *frame) Link() FrameRef { return f.link }

// Retains reports what a frame still holds after Destroy.
func (f *frame) Retains() (susp, destroyed, ready bool) {
	return f.susp != nil, f.destroyed, f.ready
}

func (r frameRef) Valid() bool  { return r.valid() }
func (r frameRef) Slot() uint32 { return r.idx }

func (rt *Runtime) Resolve(r FrameRef) *Frame { return rt.resolve(r) }

func (rt *Runtime) ResumeFrame(f *Frame) (bool, error) { return rt.resume(f) }

// Table returns the slot count and the free-list length.
func (rt *Runtime) Table() (slots, free int) { return len(rt.slots), len(rt.free) }
