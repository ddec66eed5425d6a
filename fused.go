// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// settle turns an await outcome back into the awaited value or failure.
func settle[T any](r awaitResult) kont.Eff[T] {
	if r.err != nil {
		return Fail[T](r.err)
	}
	v, _ := r.value.(T)
	return kont.Pure(v)
}

// Await suspends the body until t finishes and yields its result.
// The awaiting frame becomes the continuation of t's frame and control
// transfers straight into t. A failure of t is re-raised in the awaiting
// body. Awaiting a task that has already finished yields its outcome
// without suspending.
//
// t must not have been resumed yet: awaiting a started, running or empty
// task, or a task of another Runtime, fails the awaiting body with an
// error wrapping [ErrInvalidState].
func Await[T any](t *Task[T]) kont.Eff[T] {
	return kont.Bind(kont.Perform(awaitOp{src: t}), settle[T])
}

// AwaitBind awaits t and passes its result to f.
// Fuses Await + Bind.
func AwaitBind[T, B any](t *Task[T], f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(awaitOp{src: t}), func(r awaitResult) kont.Eff[B] {
		if r.err != nil {
			return Fail[B](r.err)
		}
		v, _ := r.value.(T)
		return f(v)
	})
}

// Yield suspends the body and returns control to the external driver.
// The next resume continues after the Yield.
func Yield() kont.Eff[struct{}] {
	return kont.Perform(yieldOp{})
}

// YieldThen yields and then continues with next.
// Fuses Yield + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(yieldOp{}), next)
}

// Emit writes line to the runtime's sink. It suspends only when the sink
// is full, in which case Resume reports iox.ErrWouldBlock.
func Emit(line string) kont.Eff[struct{}] {
	return kont.Perform(emitOp{line: line})
}

// EmitThen emits line and then continues with next.
// Fuses Emit + Then.
func EmitThen[B any](line string, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(emitOp{line: line}), next)
}
