// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trace records frame transitions of a coro runtime and persists
// them as YAML.
package trace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"code.hybscloud.com/coro"
	"gopkg.in/yaml.v3"
)

// Entry is one recorded transition.
type Entry struct {
	Seq     int    `yaml:"seq"`
	Runtime uint32 `yaml:"runtime"`
	Frame   uint32 `yaml:"frame"`
	Kind    string `yaml:"kind"`
	State   string `yaml:"state"`
	Peer    uint32 `yaml:"peer,omitempty"`
	Err     string `yaml:"error,omitempty"`
}

// Trace is the persisted form of a run.
type Trace struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Recorder accumulates transitions. It is not safe for concurrent use,
// matching the runtime it observes.
type Recorder struct {
	trace Trace
}

// NewRecorder creates an empty recorder for a run called name.
func NewRecorder(name string) *Recorder {
	return &Recorder{trace: Trace{Name: name}}
}

// Observe records e. Its method value is a coro.Observer.
func (r *Recorder) Observe(e coro.Event) {
	entry := Entry{
		Seq:     len(r.trace.Entries),
		Runtime: e.Runtime,
		Frame:   e.Frame,
		Kind:    e.Kind.String(),
		State:   e.State.String(),
		Peer:    e.Peer,
	}
	if e.Err != nil {
		entry.Err = e.Err.Error()
	}
	r.trace.Entries = append(r.trace.Entries, entry)
}

// Trace returns the recorded trace.
func (r *Recorder) Trace() Trace {
	return r.trace
}

// Encode writes the trace as a YAML document to w.
func (r *Recorder) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.trace); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Save writes the trace to path.
func (r *Recorder) Save(path string) error {
	data, err := yaml.Marshal(r.trace)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a trace written by Save.
func Load(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Trace{}, fmt.Errorf("trace %q: %w", path, os.ErrNotExist)
		}
		return Trace{}, fmt.Errorf("read %s: %w", path, err)
	}
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Trace{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return t, nil
}
