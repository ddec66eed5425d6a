// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides single-threaded cooperative tasks on
// [code.hybscloud.com/kont].
//
// A task body is a kont computation that can suspend mid-body, return
// control to its driver, and later resume where it left off. A body can
// await another task: it is resumed automatically, with the awaited result
// or failure, when that task finishes.
//
// # Architecture
//
//   - Execution frame: heap-resident state of one task invocation, driven by
//     an explicit state machine (suspended, running, succeeded, failed).
//     Saved locals and the program point are the pending [kont.Suspension].
//   - Continuation link: a one-shot weak reference from an awaited frame to
//     the frame awaiting it, resolved through the [Runtime] frame table, so a
//     destroyed caller is never resumed.
//   - Task handle: [Task] owns exactly one frame; ownership moves with
//     [Task.Move]/[Task.Assign] and ends with [Task.Destroy].
//   - Transport: an optional [Sink] (lock-free SPSC queue via
//     [code.hybscloud.com/lfq]) receives emitted lines; a full sink surfaces
//     as [code.hybscloud.com/iox.ErrWouldBlock].
//
// # Control Flow
//
//   - [Create] / [CreateExpr]: allocate a frame suspended at entry. No body
//     code runs.
//   - [Task.Resume]: run until the chain finishes or suspends again; reports
//     whether the task can be resumed further.
//   - [Await] / [ExprAwait]: link the current frame as the continuation of
//     the awaited frame and transfer control straight into it. When it
//     finishes, control returns to the awaiting body, not to the driver.
//   - [Yield] / [ExprYieldThen]: return control to the driver.
//   - [Fail] / [ExprFail]: finish with a failure, re-raised by Await and
//     [Task.Result]. Body panics are captured as [*PanicError].
//
// # Integration
//
//   - Stepping: an external driver calls Resume until it returns false,
//     observing effects between calls; [Drive] packages that loop.
//   - Blocking: [Run], [Exec] and [ExecExpr] run to completion, waiting past
//     sink backpressure with adaptive backoff.
//   - Observability: [WithObserver] reports every frame transition; the
//     package itself never logs.
//
// # Example
//
//	rt := coro.NewRuntime(coro.WithSink(coro.NewSink()))
//	two := coro.Create(rt, coro.EmitThen("begin two", kont.Pure(2)))
//	defer two.Destroy()
//	outer := coro.Create(rt, coro.EmitThen("begin outer",
//		coro.AwaitBind(two, func(n int) kont.Eff[struct{}] {
//			return coro.EmitThen(fmt.Sprintf("got %d", n), kont.Pure(struct{}{}))
//		}),
//	))
//	defer outer.Destroy()
//	for more := true; more; {
//		more, _ = outer.Resume()
//		rt.Sink().Drain(func(line string) { fmt.Println(line) })
//	}
package coro
