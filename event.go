// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package treeconv

import "fmt"

// Kind is the type of a structural event.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid    Kind = iota // invalid event
	DocStarted             // start of document
	DocEnded               // end of document
	NodeOpened             // a named node was opened
	NodeClosed             // a named node was closed
	ValueAdded             // a value was added to the current node
)

var kindStr = [...]string{
	Invalid:    "invalid event",
	DocStarted: "DocStarted",
	DocEnded:   "DocEnded",
	NodeOpened: "NodeOpened",
	NodeClosed: "NodeClosed",
	ValueAdded: "ValueAdded",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// An Event is a single structural occurrence in a document. Events are
// comparable values: two events are equal if they have the same kind and the
// same payload.
//
// The zero Event is invalid. Use StartDoc, EndDoc, Open, Close, or Value to
// construct events.
type Event struct {
	kind Kind
	text string // name for NodeOpened/NodeClosed, data for ValueAdded
}

// StartDoc returns a DocStarted event.
func StartDoc() Event { return Event{kind: DocStarted} }

// EndDoc returns a DocEnded event.
func EndDoc() Event { return Event{kind: DocEnded} }

// Open returns a NodeOpened event for the given node name.
func Open(name string) Event { return Event{kind: NodeOpened, text: name} }

// Close returns a NodeClosed event for the given node name.
func Close(name string) Event { return Event{kind: NodeClosed, text: name} }

// Value returns a ValueAdded event carrying data.
func Value(data string) Event { return Event{kind: ValueAdded, text: data} }

// Kind reports the kind of e.
func (e Event) Kind() Kind { return e.kind }

// Name reports the node name of e. The second result is false if e is not a
// NodeOpened or NodeClosed event, in which case the name is "".
func (e Event) Name() (string, bool) {
	if e.kind == NodeOpened || e.kind == NodeClosed {
		return e.text, true
	}
	return "", false
}

// Data reports the value carried by e. The second result is false if e is not
// a ValueAdded event. An empty value is reported as "", true.
func (e Event) Data() (string, bool) {
	if e.kind == ValueAdded {
		return e.text, true
	}
	return "", false
}

// IsOpen reports whether e opens the named node.
func (e Event) IsOpen(name string) bool { return e.kind == NodeOpened && e.text == name }

// IsClose reports whether e closes the named node.
func (e Event) IsClose(name string) bool { return e.kind == NodeClosed && e.text == name }

func (e Event) String() string {
	switch e.kind {
	case NodeOpened, NodeClosed:
		return fmt.Sprintf("%v(%s)", e.kind, e.text)
	case ValueAdded:
		return fmt.Sprintf("%v(%q)", e.kind, e.text)
	default:
		return e.kind.String()
	}
}
