// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/coro/internal/config"
	"code.hybscloud.com/coro/internal/logging"
	"code.hybscloud.com/coro/internal/trace"
	"github.com/spf13/cobra"
)

// session is one driver run: a runtime with a sink, a logging observer and
// an optional trace recorder.
type session struct {
	cfg *config.Config
	log *logging.Logger
	out io.Writer
	rec *trace.Recorder
	rt  *coro.Runtime
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg: cfg,
		out: cmd.OutOrStdout(),
	}
	if cfg.Trace.File != "" {
		s.rec = trace.NewRecorder(cmd.Name())
	}
	s.rt = coro.NewRuntime(coro.WithSink(coro.NewSink()), coro.WithObserver(s.observe))
	s.log = logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format).
		With("command", cmd.Name(), "runtime", s.rt.Serial())
	return s, nil
}

func (s *session) observe(e coro.Event) {
	if s.rec != nil {
		s.rec.Observe(e)
	}
	args := []any{"frame", e.Frame, "state", e.State.String()}
	if e.Peer != 0 {
		args = append(args, "peer", e.Peer)
	}
	if e.Err != nil {
		args = append(args, "error", e.Err)
	}
	s.log.Debug(e.Kind.String(), args...)
}

// flush prints every line queued in the sink.
func (s *session) flush() {
	s.rt.Sink().Drain(func(line string) {
		fmt.Fprintln(s.out, line)
	})
}

// drive resumes t until it finishes, printing emitted lines and a marker
// each time control returns to the driver.
func drive[T any](s *session, t *coro.Task[T]) (T, error) {
	steps := 0
	v, err := coro.Drive(t, func() {
		steps++
		s.flush()
		fmt.Fprintln(s.out, "back to main")
	})
	s.log.Info("task finished", "frame", t.ID(), "state", t.State().String(), "resumes", steps)
	return v, err
}

// close writes the trace, if enabled, and reports frames left alive.
func (s *session) close() error {
	if live := s.rt.Live(); live != 0 {
		s.log.Warn("frames left alive", "live", live)
	}
	if s.rec == nil {
		return nil
	}
	if err := s.rec.Save(s.cfg.Trace.File); err != nil {
		return err
	}
	s.log.Info("trace written", "file", s.cfg.Trace.File, "entries", len(s.rec.Trace().Entries))
	return nil
}
