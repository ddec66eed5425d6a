// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"

	"code.hybscloud.com/kont"
)

// ErrInvalidState reports a violated handle or frame contract.
// Every contract error returned by this package wraps it; match with
// errors.Is(err, ErrInvalidState). Contract errors are never retryable.
var ErrInvalidState = errors.New("coro: invalid state")

// Contract errors, each wrapping [ErrInvalidState].
var (
	// ErrEmpty is returned by operations on a handle that owns no frame
	// (zero value, moved-from or destroyed).
	ErrEmpty = fmt.Errorf("%w: task owns no frame", ErrInvalidState)

	// ErrNotReady is returned by Result while the frame has not finished.
	ErrNotReady = fmt.Errorf("%w: task has not finished", ErrInvalidState)

	// ErrRunning is returned when a running frame is resumed or awaited
	// from within its own chain.
	ErrRunning = fmt.Errorf("%w: frame is running", ErrInvalidState)

	// ErrLinked is returned when a second continuation is installed on a frame.
	ErrLinked = fmt.Errorf("%w: continuation already installed", ErrInvalidState)

	// ErrFinished is returned when a continuation is installed on a finished frame.
	ErrFinished = fmt.Errorf("%w: frame already finished", ErrInvalidState)

	// ErrStarted is returned when a frame that has already run is awaited.
	// Only frames suspended at entry may be awaited, which keeps the
	// continuation chain acyclic.
	ErrStarted = fmt.Errorf("%w: frame already started", ErrInvalidState)

	// ErrSelfAwait is returned when a frame awaits its own handle.
	ErrSelfAwait = fmt.Errorf("%w: frame awaits itself", ErrInvalidState)

	// ErrForeign is returned when a frame awaits a task of another Runtime.
	ErrForeign = fmt.Errorf("%w: task belongs to another runtime", ErrInvalidState)

	// ErrAbandoned is delivered to an awaiting body whose callee was
	// destroyed before it finished.
	ErrAbandoned = fmt.Errorf("%w: awaited frame was destroyed", ErrInvalidState)
)

// errNilFailure replaces a nil error raised through Fail, so a failed
// frame always carries a non-nil failure.
var errNilFailure = errors.New("coro: body failed with nil error")

// PanicError is the failure recorded when body code panics.
// Value is the recovered value; Stack is the goroutine stack at recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("coro: body panicked: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Fail raises err as the body's failure.
// The frame finishes in [StateFailed]; the continuation is never called.
// The failure is re-raised to the awaiting body or returned by Result.
func Fail[A any](err error) kont.Eff[A] {
	return kont.ThrowError[error, A](err)
}

// ExprFail is the Expr-world counterpart of [Fail].
func ExprFail[A any](err error) kont.Expr[A] {
	return kont.ExprThrowError[error, A](err)
}
