// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"errors"
	"slices"
	"testing"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

func TestLoopYieldsEachIteration(t *testing.T) {
	rt := newRuntime()
	task := coro.Create(rt, coro.Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		if i == 5 {
			return kont.Pure(kont.Right[int, int](i * 100))
		}
		return coro.YieldThen(kont.Pure(kont.Left[int, int](i + 1)))
	}))
	defer task.Destroy()

	steps, err := resumeAll(task)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	want := []bool{true, true, true, true, true, false}
	if !slices.Equal(steps, want) {
		t.Fatalf("steps: got %v, want %v", steps, want)
	}
	if v, err := task.Result(); err != nil || v != 500 {
		t.Fatalf("Result: got (%d, %v), want (500, nil)", v, err)
	}
}

func TestExprLoopYieldsEachIteration(t *testing.T) {
	rt := newRuntime()
	task := coro.CreateExpr(rt, coro.ExprLoop(0, func(i int) kont.Expr[kont.Either[int, int]] {
		if i == 5 {
			return kont.ExprReturn(kont.Right[int, int](i * 100))
		}
		return coro.ExprYieldThen(kont.ExprReturn(kont.Left[int, int](i + 1)))
	}))
	defer task.Destroy()

	steps, err := resumeAll(task)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	want := []bool{true, true, true, true, true, false}
	if !slices.Equal(steps, want) {
		t.Fatalf("steps: got %v, want %v", steps, want)
	}
	if v, err := task.Result(); err != nil || v != 500 {
		t.Fatalf("Result: got (%d, %v), want (500, nil)", v, err)
	}
}

func TestExprLoopPure(t *testing.T) {
	rt := newRuntime()
	v, err := coro.ExecExpr(rt, coro.ExprLoop(0, func(i int) kont.Expr[kont.Either[int, int]] {
		if i == 1000 {
			return kont.ExprReturn(kont.Right[int, int](i))
		}
		return kont.ExprReturn(kont.Left[int, int](i + 1))
	}))
	if err != nil || v != 1000 {
		t.Fatalf("ExecExpr: got (%d, %v), want (1000, nil)", v, err)
	}
}

// TestLoopAwaitsEachIteration awaits a fresh task per iteration.
func TestLoopAwaitsEachIteration(t *testing.T) {
	rt := newRuntime()
	var children []*coro.Task[int]
	defer func() {
		for _, c := range children {
			c.Destroy()
		}
	}()
	task := coro.Create(rt, coro.Loop(0, func(sum int) kont.Eff[kont.Either[int, int]] {
		if len(children) == 4 {
			return kont.Pure(kont.Right[int, int](sum))
		}
		child := coro.Create(rt, coro.YieldThen(kont.Pure(len(children)+1)))
		children = append(children, child)
		return coro.AwaitBind(child, func(n int) kont.Eff[kont.Either[int, int]] {
			return kont.Pure(kont.Left[int, int](sum + n))
		})
	}))
	defer task.Destroy()

	steps, err := resumeAll(task)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("steps: got %v, want 4 yields and a finish", steps)
	}
	if v, err := task.Result(); err != nil || v != 10 {
		t.Fatalf("Result: got (%d, %v), want (10, nil)", v, err)
	}
}

func TestLoopFailure(t *testing.T) {
	rt := newRuntime()
	boom := errors.New("loop boom")
	v, err := coro.Exec(rt, coro.Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		if i == 3 {
			return coro.Fail[kont.Either[int, int]](boom)
		}
		return coro.YieldThen(kont.Pure(kont.Left[int, int](i + 1)))
	}))
	if !errors.Is(err, boom) || v != 0 {
		t.Fatalf("Exec: got (%d, %v), want (0, %v)", v, err, boom)
	}
}
