// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/internal/jwcc"
)

// NewHandler returns a handler that renders the events it receives as a JSON
// document written to w.
//
// The events of each top-level node are buffered until the node closes, then
// rebuilt into an object. Each object becomes one element of the array under
// RootKey. Nothing is written to w until the document ends.
func NewHandler(w io.Writer) *treeconv.DocumentHandler {
	return treeconv.NewDocumentHandler(&builder{w: w})
}

type builder struct {
	w     io.Writer
	depth int
	span  []treeconv.Event // events of the current top-level node
	elems []jwcc.Value     // completed top-level objects
}

func (b *builder) StartDocument() error {
	b.depth, b.span, b.elems = 0, nil, nil
	return nil
}

func (b *builder) EndDocument() error {
	if b.depth != 0 {
		return fmt.Errorf("document ended with %d open nodes", b.depth)
	}
	doc := &jwcc.Object{Members: []*jwcc.Member{
		jwcc.Field(RootKey, &jwcc.Array{Values: b.elems}),
	}}
	var buf bytes.Buffer
	if err := jwcc.Format(&buf, doc); err != nil {
		return err
	}
	_, err := b.w.Write(buf.Bytes())
	return err
}

func (b *builder) OpenNode(name string, _ treeconv.Event) error {
	b.span = append(b.span, treeconv.Open(name))
	b.depth++
	return nil
}

func (b *builder) CloseNode(name string, _ treeconv.Event) error {
	if b.depth == 0 {
		return fmt.Errorf("close of %q without a matching open", name)
	}
	b.span = append(b.span, treeconv.Close(name))
	b.depth--
	if b.depth == 0 {
		obj, err := buildObject(b.span)
		if err != nil {
			return treeconv.Processingf(err, "invalid node %q", name)
		}
		b.elems = append(b.elems, obj)
		b.span = b.span[:0]
	}
	return nil
}

func (b *builder) AddValue(data string, _ treeconv.Event) error {
	if b.depth == 0 {
		return errors.New("value outside of any node")
	}
	b.span = append(b.span, treeconv.Value(data))
	return nil
}

// buildObject reconstructs an object from a sequence of sibling node spans.
// A span whose content is a single value becomes a string member; any other
// span becomes an object member built recursively from its content. A span
// with no content is an error.
func buildObject(evs []treeconv.Event) (*jwcc.Object, error) {
	obj := new(jwcc.Object)
	for i := 0; i < len(evs); {
		name, ok := evs[i].Name()
		if !ok || evs[i].Kind() != treeconv.NodeOpened {
			return nil, fmt.Errorf("unexpected %v among child nodes", evs[i])
		}
		end, err := findClose(evs, i)
		if err != nil {
			return nil, err
		}
		inner := evs[i+1 : end]
		switch {
		case len(inner) == 0:
			return nil, fmt.Errorf("node %q has no value", name)
		case len(inner) == 1 && inner[0].Kind() == treeconv.ValueAdded:
			data, _ := inner[0].Data()
			obj.Members = append(obj.Members, jwcc.Field(name, data))
		default:
			sub, err := buildObject(inner)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", name, err)
			}
			obj.Members = append(obj.Members, jwcc.Field(name, sub))
		}
		i = end + 1
	}
	return obj, nil
}

// findClose returns the index of the event that closes the node opened at
// evs[pos], which is the next close at the same depth.
func findClose(evs []treeconv.Event, pos int) (int, error) {
	name, _ := evs[pos].Name()
	var depth int
	for i := pos; i < len(evs); i++ {
		switch evs[i].Kind() {
		case treeconv.NodeOpened:
			depth++
		case treeconv.NodeClosed:
			depth--
			if depth == 0 {
				if !evs[i].IsClose(name) {
					return 0, fmt.Errorf("node %q closed by %v", name, evs[i])
				}
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("node %q is not closed", name)
}
