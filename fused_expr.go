// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased values to avoid boxing empty structs into
// kont.Frame/kont.Erased on every construction.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprYield       kont.Erased = yieldOp{}
)

// identityResume passes the dispatcher's resume value through unchanged.
func identityResume(v kont.Erased) kont.Erased { return v }

// The Expr-world constructors below use pooled single-use frames:
// each returned Expr may be evaluated by one task only.

func awaitUnwind[T any](_, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	r := current.(awaitResult)
	if r.err != nil {
		e := ExprFail[T](r.err)
		return kont.Erased(e.Value), e.Frame
	}
	v, _ := r.value.(T)
	return kont.Erased(v), exprReturnFrame
}

// ExprAwait is the Expr-world counterpart of [Await].
func ExprAwait[T any](t *Task[T]) kont.Expr[T] {
	uf := kont.AcquireUnwindFrame()
	uf.Unwind = awaitUnwind[T]
	ef := kont.AcquireEffectFrame()
	ef.Operation = awaitOp{src: t}
	ef.Resume = identityResume
	ef.Next = uf
	return kont.ExprSuspend[T](ef)
}

func awaitBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	r := current.(awaitResult)
	if r.err != nil {
		e := ExprFail[B](r.err)
		return kont.Erased(e.Value), e.Frame
	}
	v, _ := r.value.(T)
	f := data.(func(T) kont.Expr[B])
	result := f(v)
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind awaits t and passes its result to f.
// Fuses ExprAwait + ExprBind.
func ExprAwaitBind[T, B any](t *Task[T], f func(T) kont.Expr[B]) kont.Expr[B] {
	uf := kont.AcquireUnwindFrame()
	uf.Data1 = f
	uf.Unwind = awaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = awaitOp{src: t}
	ef.Resume = identityResume
	ef.Next = uf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldThen yields and then continues with next.
// Fuses ExprPerform(yield) + ExprThen.
func ExprYieldThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprYield
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprEmitThen emits line and then continues with next.
// Fuses ExprPerform(emit) + ExprThen.
func ExprEmitThen[B any](line string, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = emitOp{line: line}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}
