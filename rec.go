// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive task body (Cont-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Each iteration, the first included, is built when the body reaches it,
// so a step that yields or awaits suspends the whole loop at that point.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(kont.Pure(initial), func(s S) kont.Eff[A] {
		return kont.Bind(step(s), func(e kont.Either[S, A]) kont.Eff[A] {
			if next, ok := e.GetLeft(); ok {
				return Loop(next, step)
			}
			result, _ := e.GetRight()
			return kont.Pure(result)
		})
	})
}

func loopUnwind[S, A any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	step := data.(func(S) kont.Expr[kont.Either[S, A]])
	e := current.(kont.Either[S, A])
	if next, ok := e.GetLeft(); ok {
		m := ExprLoop(next, step)
		return kont.Erased(m.Value), m.Frame
	}
	result, _ := e.GetRight()
	return kont.Erased(result), exprReturnFrame
}

// ExprLoop runs a recursive task body (Expr-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Iterations that complete without suspending are unrolled in place; the
// first suspending iteration is chained to a single-use unwind frame that
// continues the loop when the body is resumed.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	state := initial
	for {
		m := step(state)
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			uf := kont.AcquireUnwindFrame()
			uf.Data1 = step
			uf.Unwind = loopUnwind[S, A]
			var zero A
			return kont.Expr[A]{Value: zero, Frame: kont.ChainFrames(m.Frame, uf)}
		}
		next, ok := m.Value.GetLeft()
		if !ok {
			result, _ := m.Value.GetRight()
			return kont.ExprReturn(result)
		}
		state = next
	}
}
