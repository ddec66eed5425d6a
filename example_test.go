// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"fmt"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

func Example() {
	rt := coro.NewRuntime(coro.WithSink(coro.NewSink()))
	two := coro.Create(rt, coro.EmitThen("begin two", coro.EmitThen("end two", kont.Pure(2))))
	defer two.Destroy()
	one := coro.Create(rt, coro.EmitThen("begin one",
		coro.AwaitBind(two, func(n int) kont.Eff[struct{}] {
			return coro.EmitThen(fmt.Sprintf("got %d from two", n),
				coro.EmitThen("end one", kont.Pure(struct{}{})))
		}),
	))
	defer one.Destroy()

	for more := true; more; {
		more, _ = one.Resume()
		rt.Sink().Drain(func(line string) { fmt.Println(line) })
		fmt.Println("back to main")
	}
	// Output:
	// begin one
	// begin two
	// end two
	// got 2 from two
	// end one
	// back to main
}

func ExampleYieldThen() {
	rt := coro.NewRuntime()
	task := coro.Create(rt, coro.YieldThen(coro.YieldThen(kont.Pure("done"))))
	defer task.Destroy()

	for {
		more, _ := task.Resume()
		fmt.Println(more)
		if !more {
			break
		}
	}
	v, _ := task.Result()
	fmt.Println(v)
	// Output:
	// true
	// true
	// false
	// done
}
