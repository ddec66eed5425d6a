// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Continuation linking.
//
// A link is a weak reference from a callee frame to the caller awaiting it.
// It is installed once, when the await begins and before the callee has run,
// and read once, when the callee finishes. Links only point from a frame that
// has not started to a running one, so a chain can never close into a cycle.

// enter validates an await of src by f. On success f is linked as the
// callee's continuation, unless the callee has already finished, in which
// case its outcome is available without suspending.
func (f *frame) enter(src awaitable) (*frame, error) {
	callee := src.owned()
	switch {
	case callee == nil:
		return nil, ErrEmpty
	case callee == f:
		return nil, ErrSelfAwait
	case callee.rt != f.rt:
		return nil, ErrForeign
	case callee.state.Finished():
		return callee, nil
	case callee.state == StateRunning:
		return nil, ErrRunning
	}
	if err := callee.install(f); err != nil {
		return nil, err
	}
	f.awaiting = callee.ref
	return callee, nil
}

// install sets caller as the continuation of f.
// Fails on a second install, on a finished frame, and on a frame that has
// already run.
func (f *frame) install(caller *frame) error {
	switch {
	case f.state.Finished():
		return ErrFinished
	case f.link.valid():
		return ErrLinked
	case f.started:
		return ErrStarted
	}
	f.link = caller.ref
	f.rt.emit(Event{Frame: f.id, Kind: EventLink, State: f.state, Peer: caller.id})
	return nil
}

// continuation returns the live frame still awaiting f, or nil when f was
// never awaited or its caller has been destroyed.
func (f *frame) continuation() *frame {
	if !f.link.valid() {
		return nil
	}
	caller := f.rt.resolve(f.link)
	if caller == nil || caller.awaiting != f.ref {
		return nil
	}
	return caller
}

// handoff makes the finished callee's outcome the resume value of f.
func (f *frame) handoff(callee *frame) {
	f.awaiting = frameRef{}
	f.pending, f.ready = callee.outcome(), true
}

// innermost follows the await chain from f to the frame that resumes next.
func (f *frame) innermost() *frame {
	cur := f
	for cur.awaiting.valid() {
		next := cur.rt.resolve(cur.awaiting)
		if next == nil {
			break
		}
		cur = next
	}
	return cur
}
