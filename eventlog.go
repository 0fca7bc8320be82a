// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package treeconv

import "io"

// A Handler consumes events pushed to an EventLog.  If Handle reports an
// error, dispatch of that event stops and the error is returned to the
// pusher.
type Handler interface {
	Handle(e Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Event) error

// Handle satisfies the Handler interface.
func (f HandlerFunc) Handle(e Event) error { return f(e) }

// An EventLog delivers each pushed event, in order, to a list of handlers.
// Delivery is synchronous: Push returns after every handler has seen the
// event, or after the first handler that fails.
//
// An EventLog is not safe for concurrent use. Each conversion should use its
// own.
type EventLog struct {
	hs []Handler
}

// NewEventLog constructs an empty EventLog.
func NewEventLog() *EventLog { return new(EventLog) }

// AddHandler appends h to the handlers of l.
func (l *EventLog) AddHandler(h Handler) { l.hs = append(l.hs, h) }

// Push delivers e to each handler of l in registration order. If a handler
// fails, handlers after it do not receive e and Push reports a
// *ProcessingError wrapping the failure.
func (l *EventLog) Push(e Event) error {
	for _, h := range l.hs {
		if err := h.Handle(e); err != nil {
			return Processingf(err, "handling event %v", e)
		}
	}
	return nil
}

// A Reader parses a source document and pushes the events describing its
// structure to an EventLog.
//
// A successful Read pushes exactly one DocStarted, a well-nested sequence of
// nodes, and exactly one DocEnded. If Read fails, DocEnded has not been
// pushed. Errors reading r are returned unchanged; malformed input is
// reported as a *ProcessingError.
type Reader interface {
	Read(r io.Reader, log *EventLog) error
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(io.Reader, *EventLog) error

// Read satisfies the Reader interface.
func (f ReaderFunc) Read(r io.Reader, log *EventLog) error { return f(r, log) }
