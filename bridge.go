// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task body to Expr-world.
//
// kont.Reify evaluates the body up to its first operation, so Reify runs
// body code immediately. Pass the Cont-world body to [Create] instead when
// no code may run before the first resume.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task body to Cont-world.
// The resulting Eff can be passed to [Create] or [Exec].
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
