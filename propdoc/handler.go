// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package propdoc

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/creachadair/treeconv"
)

// NewHandler returns a handler that renders the events it receives as a
// properties document written to w. Lines are separated by a single newline;
// no newline follows the last line.
//
// Output that could not be read back is reported as an error: a node name
// that is not a path segment wraps ErrInvalidName, and a value that is empty
// or contains a double quote or line break wraps ErrInvalidValue.
func NewHandler(w io.Writer) *treeconv.DocumentHandler {
	return treeconv.NewDocumentHandler(&builder{w: w})
}

// builder implements treeconv.Builder for properties output. It writes each
// leaf path incrementally as nodes are opened.
type builder struct {
	w     io.Writer
	stack []string // names of the open nodes
	buf   strings.Builder
}

var (
	// ErrInvalidName is reported by a handler from NewHandler for a node
	// whose name is not a valid path segment.
	ErrInvalidName = errors.New("invalid path segment")

	// ErrInvalidValue is reported by a handler from NewHandler for a value
	// that cannot be written between double quotes.
	ErrInvalidValue = errors.New("invalid property value")

	errNoNode = errors.New("value outside of any node")
)

var segmentRE = regexp.MustCompile(`^\w+$`)

func (b *builder) StartDocument() error { b.stack = b.stack[:0]; return nil }

func (b *builder) EndDocument() error { return nil }

func (b *builder) OpenNode(name string, prev treeconv.Event) error {
	if !segmentRE.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	b.buf.Reset()
	if prev.Kind() == treeconv.NodeClosed {
		// Begin a new line, restating the path of the enclosing nodes.
		b.buf.WriteByte('\n')
		b.buf.WriteString(strings.Join(b.stack, "."))
	}
	if len(b.stack) != 0 {
		b.buf.WriteByte('.')
	}
	b.buf.WriteString(name)
	b.stack = append(b.stack, name)
	return b.flush()
}

func (b *builder) CloseNode(name string, prev treeconv.Event) error {
	if prev.IsOpen(name) {
		return fmt.Errorf("node %q has no value", name)
	}
	if n := len(b.stack); n != 0 && b.stack[n-1] == name {
		b.stack = b.stack[:n-1]
	}
	return nil
}

func (b *builder) AddValue(data string, _ treeconv.Event) error {
	if len(b.stack) == 0 {
		return errNoNode
	} else if data == "" || strings.ContainsAny(data, "\"\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidValue, data)
	}
	b.buf.Reset()
	b.buf.WriteString(` = "`)
	b.buf.WriteString(data)
	b.buf.WriteByte('"')
	return b.flush()
}

func (b *builder) flush() error {
	_, err := io.WriteString(b.w, b.buf.String())
	return err
}
