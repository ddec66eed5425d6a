// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/iox"

// resume drives the chain rooted at top by one external step.
//
// Control starts at the innermost frame top is (transitively) awaiting.
// An await transfers control into the callee; a finishing frame hands
// control to its continuation. The loop is a trampoline: nesting depth does
// not grow the Go stack. It returns to the external caller when a frame
// yields or blocks, or when a finishing frame has no live continuation.
//
// Reports whether top can be resumed further, which is false exactly when
// top has finished, even if control went on into its caller.
// iox.ErrWouldBlock means the sink was full: drain it and resume again.
func (rt *Runtime) resume(top *frame) (bool, error) {
	switch {
	case top.done():
		return false, nil
	case top.state == StateRunning:
		return true, ErrRunning
	}

	cur := top.innermost()
	if cur.state == StateRunning {
		return true, ErrRunning
	}
	for {
		if !cur.state.Finished() {
			kind, callee := cur.run()
			switch kind {
			case stepAwaiting:
				cur = callee
				continue
			case stepYielded:
				return !top.done(), nil
			case stepBlocked:
				// A finished top handed control to its caller: the caller
				// retries the pending line on its own next resume.
				if top.done() {
					return false, nil
				}
				return true, iox.ErrWouldBlock
			}
		}
		caller := cur.continuation()
		if caller == nil {
			return !top.done(), nil
		}
		caller.handoff(cur)
		cur = caller
	}
}
