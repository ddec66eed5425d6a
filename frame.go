// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"runtime/debug"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// State is the suspension state of an execution frame.
//
// A frame is created directly in StateSuspended: the created state and the
// first suspension coincide, so no body code runs before the first resume.
type State uint32

const (
	// StateSuspended: waiting for a resume (at entry, a Yield, an Await
	// or sink backpressure).
	StateSuspended State = iota
	// StateRunning: body code is executing.
	StateRunning
	// StateSucceeded: finished with a result.
	StateSucceeded
	// StateFailed: finished with a failure.
	StateFailed
	// StateNone is reported by a handle that owns no frame.
	StateNone
)

var stateNames = [...]string{
	StateSuspended: "suspended",
	StateRunning:   "running",
	StateSucceeded: "succeeded",
	StateFailed:    "failed",
	StateNone:      "none",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Finished reports whether s is StateSucceeded or StateFailed.
func (s State) Finished() bool {
	return s == StateSucceeded || s == StateFailed
}

// stepKind tells the dispatcher why a frame stopped running.
type stepKind uint8

const (
	stepContinue stepKind = iota // op handled, resume the body immediately
	stepFinished
	stepYielded
	stepBlocked
	stepAwaiting
)

// frame is the heap-resident state of one task invocation.
//
// Saved locals and the program point live inside the kont computation:
// body before the first resume, susp afterwards. Exactly one of value/err
// is meaningful, and only once state is finished.
type frame struct {
	rt    *Runtime
	ref   frameRef
	id    uint32
	state State

	started bool
	body    kont.Expr[kont.Erased]
	susp    *kont.Suspension[kont.Erased]

	// ready marks pending as the value for the next susp.Resume.
	// When false, the operation of susp has not been delivered yet.
	ready   bool
	pending kont.Resumed

	value kont.Erased
	err   error

	// link is the continuation: the caller to hand control to on finish.
	// Set at most once, never cleared.
	link frameRef
	// awaiting is the callee this frame is blocked on.
	awaiting frameRef

	destroyed bool
}

// completion boxes a body's final value so that a nil interface result is
// never mistaken for a suspension nor hits a failing type assertion.
type completion struct{ value kont.Erased }

func completeUnwind(_, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	return completion{value: current}, exprReturnFrame
}

// seal appends the completion boxing step to an erased body.
func seal(body kont.Expr[kont.Erased]) kont.Expr[kont.Erased] {
	uf := kont.AcquireUnwindFrame()
	uf.Unwind = completeUnwind
	return kont.Expr[kont.Erased]{Value: body.Value, Frame: kont.ChainFrames(body.Frame, uf)}
}

func reifyUnwind[A any](data, _, _ kont.Erased, _ kont.Erased) (kont.Erased, kont.Frame) {
	e := kont.Reify(data.(kont.Eff[A]))
	return kont.Erased(e.Value), e.Frame
}

// lazyBody converts a Cont-world body to a frame chain without running it.
// kont.Reify evaluates up to the first effect, so it is deferred to the
// first resume.
func lazyBody[A any](m kont.Eff[A]) kont.Expr[kont.Erased] {
	uf := kont.AcquireUnwindFrame()
	uf.Data1 = m
	uf.Unwind = reifyUnwind[A]
	return seal(kont.Expr[kont.Erased]{Frame: uf})
}

func exprBody[A any](m kont.Expr[A]) kont.Expr[kont.Erased] {
	return seal(kont.Expr[kont.Erased]{Value: kont.Erased(m.Value), Frame: m.Frame})
}

func (f *frame) done() bool {
	return f.destroyed || f.state.Finished()
}

// protect runs body code, converting a panic into a *PanicError failure.
func protect(fn func() (kont.Erased, *kont.Suspension[kont.Erased])) (result kont.Erased, susp *kont.Suspension[kont.Erased], err error) {
	defer func() {
		if r := recover(); r != nil {
			result, susp = nil, nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	result, susp = fn()
	return
}

// advance continues the body from where it stopped.
func (f *frame) advance() (kont.Erased, *kont.Suspension[kont.Erased], error) {
	switch {
	case !f.started:
		f.started = true
		body := f.body
		f.body = kont.Expr[kont.Erased]{}
		return protect(func() (kont.Erased, *kont.Suspension[kont.Erased]) {
			return kont.StepExpr(body)
		})
	case f.ready:
		v := f.pending
		f.ready, f.pending = false, nil
		return resumeSusp(f.susp, v)
	default:
		return nil, f.susp, nil
	}
}

func resumeSusp(s *kont.Suspension[kont.Erased], v kont.Resumed) (kont.Erased, *kont.Suspension[kont.Erased], error) {
	return protect(func() (kont.Erased, *kont.Suspension[kont.Erased]) {
		return s.Resume(v)
	})
}

// run executes f until it finishes or reaches a suspension point.
// On stepAwaiting, callee is the frame control transfers into.
func (f *frame) run() (kind stepKind, callee *frame) {
	f.state = StateRunning
	f.rt.emit(Event{Frame: f.id, Kind: EventResume, State: StateRunning})

	result, susp, err := f.advance()
	for err == nil && susp != nil {
		f.susp = susp
		v, k, c, ferr := f.dispatch(susp.Op())
		switch {
		case ferr != nil:
			susp.Discard()
			err = ferr
		case k == stepContinue:
			result, susp, err = resumeSusp(susp, v)
		default:
			f.suspend(k, c)
			return k, c
		}
	}
	f.susp = nil
	f.finish(result, err)
	return stepFinished, nil
}

// dispatch handles the operation the body suspended on.
// It returns the resume value with stepContinue, a suspension kind, or a
// failure that finishes the frame.
func (f *frame) dispatch(op kont.Operation) (kont.Resumed, stepKind, *frame, error) {
	switch o := op.(type) {
	case awaitOp:
		wasAwaiting := f.awaiting.valid()
		f.awaiting = frameRef{}
		if wasAwaiting {
			// Re-dispatched only when the callee no longer resolves.
			return awaitResult{err: ErrAbandoned}, stepContinue, nil, nil
		}
		callee, err := f.enter(o.src)
		if err != nil {
			return awaitResult{err: err}, stepContinue, nil, nil
		}
		if callee.state.Finished() {
			return callee.outcome(), stepContinue, nil, nil
		}
		return nil, stepAwaiting, callee, nil
	case yieldOp:
		f.pending, f.ready = struct{}{}, true
		return nil, stepYielded, nil, nil
	case kont.Throw[error]:
		if o.Err == nil {
			return nil, stepFinished, nil, errNilFailure
		}
		return nil, stepFinished, nil, o.Err
	case taskDispatcher:
		v, err := o.DispatchTask(f.rt)
		if err != nil {
			if iox.IsWouldBlock(err) {
				return nil, stepBlocked, nil, nil
			}
			return nil, stepFinished, nil, err
		}
		return v, stepContinue, nil, nil
	}
	panic("coro: unhandled effect in frame dispatch")
}

func (f *frame) suspend(k stepKind, callee *frame) {
	f.state = StateSuspended
	e := Event{Frame: f.id, State: StateSuspended}
	switch k {
	case stepYielded:
		e.Kind = EventYield
	case stepBlocked:
		e.Kind = EventBlock
	case stepAwaiting:
		e.Kind = EventAwait
		e.Peer = callee.id
	}
	f.rt.emit(e)
}

func (f *frame) finish(result kont.Erased, err error) {
	if err != nil {
		f.state = StateFailed
		f.err = err
	} else {
		f.state = StateSucceeded
		if c, ok := result.(completion); ok {
			f.value = c.value
		} else {
			f.value = result
		}
	}
	f.rt.emit(Event{Frame: f.id, Kind: EventFinish, State: f.state, Err: f.err})
}

// outcome is what an awaiting body receives from a finished frame.
func (f *frame) outcome() awaitResult {
	return awaitResult{value: f.value, err: f.err}
}

// destroy tears f down regardless of its state. A suspended frame's saved
// state is discarded; frames it was awaiting are left to their own handles.
func (f *frame) destroy() {
	if f.state == StateRunning {
		panic("coro: destroy of running frame")
	}
	if f.susp != nil {
		f.susp.Discard()
		f.susp = nil
	}
	f.body = kont.Expr[kont.Erased]{}
	f.ready, f.pending = false, nil
	f.awaiting = frameRef{}
	f.destroyed = true
	f.rt.release(f)
	f.rt.emit(Event{Frame: f.id, Kind: EventDestroy, State: f.state})
}
