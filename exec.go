// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world body as a task on rt and returns its outcome.
// The task is destroyed before Exec returns. See [Run] for sink handling.
func Exec[T any](rt *Runtime, body kont.Eff[T]) (T, error) {
	t := Create(rt, body)
	defer t.Destroy()
	return Run(t)
}

// ExecExpr runs an Expr-world body as a task on rt and returns its outcome.
// The task is destroyed before ExecExpr returns.
func ExecExpr[T any](rt *Runtime, body kont.Expr[T]) (T, error) {
	t := CreateExpr(rt, body)
	defer t.Destroy()
	return Run(t)
}
