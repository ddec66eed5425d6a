// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// awaitable is implemented by every *Task[T]; the await operation reads the
// owned frame at dispatch time, not when the body was built.
type awaitable interface {
	owned() *frame
}

// awaitResult is the resume value of an await: the callee's outcome.
type awaitResult struct {
	value kont.Erased
	err   error
}

// awaitOp suspends the body until the awaited task finishes.
type awaitOp struct {
	kont.Phantom[awaitResult]
	src awaitable
}

// yieldOp suspends the body and returns control to the external driver.
type yieldOp struct {
	kont.Phantom[struct{}]
}

// taskDispatcher is the structural interface for operations delivered to
// the runtime. DispatchTask is non-blocking: it returns iox.ErrWouldBlock
// when the operation cannot be delivered yet, leaving the frame suspended
// with the operation pending.
type taskDispatcher interface {
	DispatchTask(rt *Runtime) (kont.Resumed, error)
}

// emitOp writes one line to the runtime's sink.
type emitOp struct {
	kont.Phantom[struct{}]
	line string
}

// DispatchTask delivers the line to the sink.
// Returns iox.ErrWouldBlock if the sink is full. Without a sink the line is
// dropped.
func (o emitOp) DispatchTask(rt *Runtime) (kont.Resumed, error) {
	if rt.sink == nil {
		return struct{}{}, nil
	}
	if err := rt.sink.Write(o.line); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
