// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Task is the owning handle of one execution frame producing a T.
//
// A Task owns at most one frame. Ownership moves with [Task.Move] and
// [Task.Assign]; the source is left empty. [Task.Destroy] tears the frame
// down whatever its state, and must be called exactly once per owned frame,
// typically deferred right after Create:
//
//	t := coro.Create(rt, body)
//	defer t.Destroy()
//
// Copying the *Task pointer shares the handle; it does not duplicate
// ownership. A nil *Task behaves as an empty handle.
type Task[T any] struct {
	f *frame
}

// Create allocates a frame for body, suspended at entry.
// No body code runs until the first [Task.Resume] or await.
func Create[T any](rt *Runtime, body kont.Eff[T]) *Task[T] {
	return newTask[T](rt, lazyBody(body))
}

// CreateExpr allocates a frame for a defunctionalized body, suspended at entry.
// Expr constructors run when the Expr is built; the resulting frame chain
// is not evaluated until the first resume.
func CreateExpr[T any](rt *Runtime, body kont.Expr[T]) *Task[T] {
	return newTask[T](rt, exprBody(body))
}

func newTask[T any](rt *Runtime, body kont.Expr[kont.Erased]) *Task[T] {
	f := &frame{state: StateSuspended, body: body}
	rt.alloc(f)
	rt.emit(Event{Frame: f.id, Kind: EventCreate, State: StateSuspended})
	return &Task[T]{f: f}
}

func (t *Task[T]) owned() *frame {
	if t == nil {
		return nil
	}
	return t.f
}

// Resume drives the task by one step: it runs until the chain finishes or
// suspends again, and reports whether the task can be resumed further.
//
// If the task is awaiting another task, the innermost awaited frame runs.
// Resuming a finished task is a no-op returning false.
// A handle that owns no frame returns [ErrEmpty]; a running task returns
// [ErrRunning]. [iox.ErrWouldBlock] reports a full sink: the pending line is
// delivered by the next Resume.
func (t *Task[T]) Resume() (bool, error) {
	f := t.owned()
	if f == nil {
		return false, ErrEmpty
	}
	return f.rt.resume(f)
}

// IsReady reports whether the handle owns no frame or its frame has finished.
func (t *Task[T]) IsReady() bool {
	f := t.owned()
	return f == nil || f.state.Finished()
}

// Result returns the value of a succeeded task, or re-raises the failure of
// a failed one. Before the task finishes it returns [ErrNotReady].
func (t *Task[T]) Result() (T, error) {
	var zero T
	f := t.owned()
	switch {
	case f == nil:
		return zero, ErrEmpty
	case f.state == StateFailed:
		return zero, f.err
	case f.state != StateSucceeded:
		return zero, ErrNotReady
	}
	v, _ := f.value.(T)
	return v, nil
}

// State returns the frame state, or [StateNone] for an empty handle.
func (t *Task[T]) State() State {
	f := t.owned()
	if f == nil {
		return StateNone
	}
	return f.state
}

// ID returns the frame id within its runtime, or 0 for an empty handle.
func (t *Task[T]) ID() uint32 {
	f := t.owned()
	if f == nil {
		return 0
	}
	return f.id
}

// Move transfers the frame to a new handle and leaves t empty.
// Moving from a nil handle returns an empty handle.
func (t *Task[T]) Move() *Task[T] {
	if t == nil {
		return &Task[T]{}
	}
	n := &Task[T]{f: t.f}
	t.f = nil
	return n
}

// Assign destroys the frame owned by t, if any, and takes the frame of src,
// leaving src empty. Assigning a handle to itself does nothing; a nil src
// empties t. Panics if t is nil, as there is no handle to assign to.
func (t *Task[T]) Assign(src *Task[T]) {
	if t == src {
		return
	}
	t.Destroy()
	if src == nil {
		return
	}
	t.f = src.f
	src.f = nil
}

// Destroy tears down the owned frame and reports whether there was one.
// A suspended frame is abandoned: its state is discarded, its continuation
// is never run, and tasks it was awaiting are left to their own handles.
// Panics if the frame is running.
func (t *Task[T]) Destroy() bool {
	if t.owned() == nil {
		return false
	}
	t.f.destroy()
	t.f = nil
	return true
}
