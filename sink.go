// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/lfq"
)

// sinkCapacity is the bounded capacity of a sink queue.
// Large enough that ordinary bodies never hit backpressure between two
// drains, small enough that a runaway emitter is noticed.
const sinkCapacity = 64

// Sink is the output channel of a Runtime: a bounded lock-free
// single-producer single-consumer queue of lines.
//
// The producer is the runtime's goroutine (bodies calling Emit). The
// consumer is one goroutine, either the driver between Resume calls or a
// dedicated reader.
type Sink struct {
	q    lfq.SPSC[string]
	slot string
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	s := &Sink{}
	s.q.Init(sinkCapacity)
	return s
}

// Write enqueues line. Non-blocking: returns iox.ErrWouldBlock when full.
func (s *Sink) Write(line string) error {
	s.slot = line
	return s.q.Enqueue(&s.slot)
}

// Read dequeues the oldest line. Non-blocking: returns iox.ErrWouldBlock
// when empty.
func (s *Sink) Read() (string, error) {
	return s.q.Dequeue()
}

// Drain passes every queued line to fn in order and returns the count.
func (s *Sink) Drain(fn func(string)) int {
	n := 0
	for {
		line, err := s.q.Dequeue()
		if err != nil {
			return n
		}
		fn(line)
		n++
	}
}
