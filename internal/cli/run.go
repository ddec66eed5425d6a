// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var pause bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the outer/inner await scenario",
		Long: `run creates two tasks. The outer task emits a line, awaits the inner
task, and emits the value it received. The inner task emits two lines and
returns 2. With --pause the inner task yields between its lines, so the
driver regains control once before the chain finishes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := runScenario(s, pause); err != nil {
				return err
			}
			return s.close()
		},
	}
	cmd.Flags().BoolVar(&pause, "pause", false, "yield inside the inner task")
	return cmd
}

func innerBody(pause bool) kont.Eff[int] {
	rest := coro.EmitThen("end inner", kont.Pure(2))
	if pause {
		rest = coro.YieldThen(rest)
	}
	return coro.EmitThen("begin inner", rest)
}

func runScenario(s *session, pause bool) error {
	inner := coro.Create(s.rt, innerBody(pause))
	defer inner.Destroy()
	outer := coro.Create(s.rt, coro.EmitThen("begin outer",
		coro.AwaitBind(inner, func(n int) kont.Eff[struct{}] {
			return coro.EmitThen(fmt.Sprintf("outer got %d from inner", n),
				coro.EmitThen("end outer", kont.Pure(struct{}{})))
		}),
	))
	defer outer.Destroy()

	_, err := drive(s, outer)
	return err
}
