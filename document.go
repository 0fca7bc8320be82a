// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package treeconv

import "errors"

// A Builder receives the events of a document, one method per event kind, and
// renders a target format. Each node method is also given the event handled
// immediately before the current one (the zero Event if there was none).
//
// A DocumentHandler adapts a Builder to the Handler interface.
type Builder interface {
	// Begin the document.
	StartDocument() error

	// End the document. Any buffered output should be written.
	EndDocument() error

	// Open a node with the given name.
	OpenNode(name string, prev Event) error

	// Close the most-recently-opened node, which has the given name.
	CloseNode(name string, prev Event) error

	// Add a value to the most-recently-opened node.
	AddValue(data string, prev Event) error
}

// A DocumentHandler is a Handler that dispatches each event to the matching
// method of a Builder, and remembers the last event it handled.
type DocumentHandler struct {
	b       Builder
	last    Event
	started bool
}

// NewDocumentHandler constructs a DocumentHandler that delivers events to b.
func NewDocumentHandler(b Builder) *DocumentHandler { return &DocumentHandler{b: b} }

// Last returns the last event successfully handled by d, or the zero Event.
func (d *DocumentHandler) Last() Event { return d.last }

// Started reports whether d has handled a DocStarted event.
func (d *DocumentHandler) Started() bool { return d.started }

// Handle satisfies the Handler interface. An error reported by the builder is
// returned as a *ProcessingError.
func (d *DocumentHandler) Handle(e Event) error {
	var err error
	switch e.Kind() {
	case DocStarted:
		err = d.b.StartDocument()
		d.started = err == nil
	case DocEnded:
		err = d.b.EndDocument()
	case NodeOpened:
		err = d.b.OpenNode(e.text, d.last)
	case NodeClosed:
		err = d.b.CloseNode(e.text, d.last)
	case ValueAdded:
		err = d.b.AddValue(e.text, d.last)
	default:
		return Processingf(nil, "unknown event %v", e)
	}
	if err != nil {
		var perr *ProcessingError
		if errors.As(err, &perr) {
			return err
		}
		return Processingf(err, "writing %v", e)
	}
	d.last = e
	return nil
}
