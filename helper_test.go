// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

// newRuntime creates a runtime with a fresh sink attached.
func newRuntime(opts ...coro.Option) *coro.Runtime {
	return coro.NewRuntime(append([]coro.Option{coro.WithSink(coro.NewSink())}, opts...)...)
}

// drain returns every line queued in the runtime's sink.
func drain(rt *coro.Runtime) []string {
	var lines []string
	rt.Sink().Drain(func(line string) { lines = append(lines, line) })
	return lines
}

// marked returns a body that counts its executions in n and returns v.
// The counter fires only when the body actually runs.
func marked[A any](n *int, v A) kont.Eff[A] {
	return kont.Suspend(func(k func(A) kont.Resumed) kont.Resumed {
		*n++
		return k(v)
	})
}

// later defers building a body until it runs, so it may refer to handles
// assigned after Create.
func later[A any](build func() kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Pure(struct{}{}), func(struct{}) kont.Eff[A] {
		return build()
	})
}

// resumeAll resumes t until it cannot be resumed further and returns the
// results of every Resume call.
func resumeAll[T any](t *coro.Task[T]) (steps []bool, err error) {
	for {
		more, err := t.Resume()
		if err != nil {
			return steps, err
		}
		steps = append(steps, more)
		if !more {
			return steps, nil
		}
	}
}
