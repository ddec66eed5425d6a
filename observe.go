// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// EventKind classifies a frame transition reported to an [Observer].
type EventKind uint8

const (
	// EventCreate: frame allocated, suspended at entry.
	EventCreate EventKind = iota
	// EventResume: frame entered StateRunning.
	EventResume
	// EventYield: frame suspended at a Yield.
	EventYield
	// EventBlock: frame suspended on sink backpressure.
	EventBlock
	// EventAwait: frame suspended awaiting Peer.
	EventAwait
	// EventLink: frame linked Peer as its continuation.
	EventLink
	// EventFinish: frame reached StateSucceeded or StateFailed.
	EventFinish
	// EventDestroy: frame torn down by its handle.
	EventDestroy
)

var eventNames = [...]string{
	EventCreate:  "create",
	EventResume:  "resume",
	EventYield:   "yield",
	EventBlock:   "block",
	EventAwait:   "await",
	EventLink:    "link",
	EventFinish:  "finish",
	EventDestroy: "destroy",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event describes one frame transition.
type Event struct {
	Runtime Serial
	Frame   uint32
	Kind    EventKind
	State   State
	// Peer is the awaited frame for EventAwait and the caller frame for
	// EventLink; zero otherwise.
	Peer uint32
	// Err is the failure of a frame finishing in StateFailed.
	Err error
}

// Observer receives frame transitions synchronously on the runtime's
// goroutine. Observers must not resume or destroy tasks of the same Runtime.
type Observer func(Event)

func (rt *Runtime) emit(e Event) {
	if rt.observer == nil {
		return
	}
	e.Runtime = rt.serial
	rt.observer(e)
}
