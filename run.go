// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/iox"
)

// Run drives t to completion and returns its result.
//
// Yields are resumed immediately. When Resume reports iox.ErrWouldBlock,
// Run waits with adaptive backoff (iox.Backoff) and retries, so a sink
// attached to the runtime must be drained by another goroutine.
// Does not spawn goroutines or create channels.
func Run[T any](t *Task[T]) (T, error) {
	var bo iox.Backoff
	for {
		more, err := t.Resume()
		if err != nil {
			if !iox.IsWouldBlock(err) {
				var zero T
				return zero, err
			}
			bo.Wait()
			continue
		}
		bo.Reset()
		if !more {
			return t.Result()
		}
	}
}

// Drive drives t to completion, calling between after every Resume.
// This is the external driver loop: between is where effects of the last
// step are observed (typically draining the sink). A full sink is retried
// after between has run.
func Drive[T any](t *Task[T], between func()) (T, error) {
	for {
		more, err := t.Resume()
		if between != nil {
			between()
		}
		if err != nil && !iox.IsWouldBlock(err) {
			var zero T
			return zero, err
		}
		if err == nil && !more {
			return t.Result()
		}
	}
}
