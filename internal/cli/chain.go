// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Run a nested await chain",
		Long: `chain creates --depth tasks where each awaits the previous one. The
innermost task yields --yields times before returning; every level adds its
own index to the value it awaited. Resuming the outermost task drives the
innermost frame of the chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			sum, err := runChain(s)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "result: %d\n", sum)
			return s.close()
		},
	}
	cmd.Flags().Int("depth", 0, "number of tasks in the chain")
	cmd.Flags().Int("yields", 0, "yields in the innermost task")
	_ = viper.BindPFlag("chain.depth", cmd.Flags().Lookup("depth"))
	_ = viper.BindPFlag("chain.yields", cmd.Flags().Lookup("yields"))
	return cmd
}

// chainLevel is the body of level i: await the previous level (none for
// level 0), emit the entry and exit lines, and add i to the value.
func chainLevel(prev *coro.Task[int], i, yields int) kont.Eff[int] {
	var awaited kont.Eff[int]
	if prev == nil {
		awaited = kont.Pure(0)
		for range yields {
			awaited = coro.YieldThen(awaited)
		}
	} else {
		awaited = coro.Await(prev)
	}
	return coro.EmitThen(fmt.Sprintf("enter %d", i),
		kont.Bind(awaited, func(n int) kont.Eff[int] {
			return coro.EmitThen(fmt.Sprintf("leave %d", i), kont.Pure(n+i))
		}),
	)
}

func runChain(s *session) (int, error) {
	depth, yields := s.cfg.Chain.Depth, s.cfg.Chain.Yields
	tasks := make([]*coro.Task[int], depth)
	defer func() {
		for _, t := range tasks {
			t.Destroy()
		}
	}()
	var prev *coro.Task[int]
	for i := range depth {
		tasks[i] = coro.Create(s.rt, chainLevel(prev, i, yields))
		prev = tasks[i]
	}
	return drive(s, tasks[depth-1])
}
