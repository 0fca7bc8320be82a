// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package xmldoc reads and writes documents in the XML format.
//
// A document must begin with the declaration
//
//	<?xml version="1.0" encoding="UTF-8"?>
//
// and have a single element named "root". The children of the root element
// are the top-level nodes of the document. An element contains either text
// (a leaf) or child elements, but not both, and may not be empty. The text of
// a leaf is reported exactly, including surrounding whitespace; whitespace
// between child elements is ignored. Attributes and namespaces are ignored.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/internal/readerr"
)

// Constants defining the required document shape.
const (
	Version  = "1.0"
	Encoding = "UTF-8"
	RootName = "root"
)

var (
	// ErrDeclaration is reported when the XML declaration is missing or has
	// the wrong version or encoding.
	ErrDeclaration = errors.New("invalid XML declaration")

	// ErrNotRooted is reported when the document element is not named
	// RootName, or there is more than one.
	ErrNotRooted = errors.New(`document element must be "root"`)

	// ErrMixedContent is reported when an element contains both text and
	// child elements.
	ErrMixedContent = errors.New("element mixes text and child elements")

	// ErrEmptyElement is reported when an element other than the root has
	// neither text nor child elements.
	ErrEmptyElement = errors.New("element has no content")
)

// Read reads an XML document from r and pushes its events to log. It
// satisfies the signature of treeconv.Reader.
func Read(r io.Reader, log *treeconv.EventLog) error {
	rr := readerr.New(r)
	err := newReader(rr, log).read()
	return rr.Check(err)
}

// A frame records the state of an open element.
type frame struct {
	name     string
	hasChild bool // a child element has been seen
}

type reader struct {
	dec   *xml.Decoder
	log   *treeconv.EventLog
	stack []*frame       // open elements; stack[0] is the root
	text  strings.Builder // pending character data
}

func newReader(r io.Reader, log *treeconv.EventLog) *reader {
	dec := xml.NewDecoder(r)

	// Accept any declared encoding here, so that checkDecl can report the
	// mismatch.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	return &reader{dec: dec, log: log}
}

func (r *reader) read() error {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return treeconv.Processingf(ErrDeclaration, "empty document")
	} else if err != nil {
		return treeconv.Processingf(fmt.Errorf("%w: %w", ErrDeclaration, err), "invalid XML")
	}
	if err := checkDecl(tok); err != nil {
		return err
	}
	if err := r.findRoot(); err != nil {
		return err
	}
	if err := r.log.Push(treeconv.StartDoc()); err != nil {
		return err
	}
	r.stack = append(r.stack, &frame{name: RootName})

	for len(r.stack) != 0 {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return treeconv.Processingf(io.ErrUnexpectedEOF, "element %q is not closed", r.top().name)
		} else if err != nil {
			return r.xmlError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.flushText(true); err != nil {
				return err
			}
			r.top().hasChild = true
			name := t.Name.Local
			if err := r.log.Push(treeconv.Open(name)); err != nil {
				return err
			}
			r.stack = append(r.stack, &frame{name: name})

		case xml.EndElement:
			if err := r.flushText(false); err != nil {
				return err
			}
			r.stack = r.stack[:len(r.stack)-1]

			// The end of the root element is not reported.
			if len(r.stack) != 0 {
				if err := r.log.Push(treeconv.Close(t.Name.Local)); err != nil {
					return err
				}
			}

		case xml.CharData:
			r.text.Write(t)
		}
	}
	if err := r.checkTrailer(); err != nil {
		return err
	}
	return r.log.Push(treeconv.EndDoc())
}

func (r *reader) top() *frame { return r.stack[len(r.stack)-1] }

// flushText reports the pending character data of the current element.
// If child is true, an element is about to open, otherwise the current
// element is ending. Whitespace is kept only as the whole text of a leaf.
func (r *reader) flushText(child bool) error {
	text := r.text.String()
	r.text.Reset()
	top := r.top()
	if strings.TrimSpace(text) == "" {
		if child || top.hasChild || len(r.stack) == 1 {
			return nil
		} else if text == "" {
			return treeconv.Processingf(ErrEmptyElement, "at %s: element %q", r.pos(), top.name)
		}
		return r.log.Push(treeconv.Value(text))
	}
	if len(r.stack) == 1 {
		return treeconv.Processingf(ErrMixedContent, "at %s: text %q directly under %q", r.pos(), text, RootName)
	} else if child || top.hasChild {
		return r.mixed(top.name)
	}
	return r.log.Push(treeconv.Value(text))
}

// findRoot consumes tokens up to and including the start of the document
// element, which must be named RootName.
func (r *reader) findRoot() error {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return treeconv.Processingf(ErrNotRooted, "no document element")
		} else if err != nil {
			return r.xmlError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != RootName {
				return treeconv.Processingf(ErrNotRooted, "at %s: found %q", r.pos(), t.Name.Local)
			}
			return nil
		case xml.CharData:
			if !isSpace(t) {
				return treeconv.Processingf(ErrNotRooted, "at %s: text before document element", r.pos())
			}
		}
	}
}

// checkTrailer consumes the rest of the input after the end of the document
// element, which may contain only whitespace, comments, and processing
// instructions.
func (r *reader) checkTrailer() error {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return r.xmlError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return treeconv.Processingf(ErrNotRooted, "at %s: extra element %q after %q", r.pos(), t.Name.Local, RootName)
		case xml.CharData:
			if !isSpace(t) {
				return treeconv.Processingf(ErrNotRooted, "at %s: text after document element", r.pos())
			}
		}
	}
}

func (r *reader) mixed(name string) error {
	return treeconv.Processingf(ErrMixedContent, "at %s: element %q", r.pos(), name)
}

func (r *reader) pos() string {
	line, col := r.dec.InputPos()
	return fmt.Sprintf("%d:%d", line, col)
}

func (r *reader) xmlError(err error) error { return treeconv.Processingf(err, "invalid XML") }

// checkDecl reports whether tok is an XML declaration with the required
// version and encoding.
func checkDecl(tok xml.Token) error {
	pi, ok := tok.(xml.ProcInst)
	if !ok || pi.Target != "xml" {
		return treeconv.Processingf(ErrDeclaration, "document does not begin with a declaration")
	}
	inst := string(pi.Inst)
	if v := procInstParam("version", inst); v != Version {
		return treeconv.Processingf(ErrDeclaration, "version is %q, want %q", v, Version)
	}
	if e := procInstParam("encoding", inst); e != Encoding {
		return treeconv.Processingf(ErrDeclaration, "encoding is %q, want %q", e, Encoding)
	}
	return nil
}

// procInstParam returns the value of the named pseudo-attribute of a
// processing instruction, or "" if it is not present.
func procInstParam(param, s string) string {
	for s != "" {
		s = strings.TrimLeft(s, " \t\r\n")
		key, rest, ok := strings.Cut(s, "=")
		if !ok {
			return ""
		}
		rest = strings.TrimLeft(rest, " \t\r\n")
		if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
			return ""
		}
		q := rest[0]
		end := strings.IndexByte(rest[1:], q)
		if end < 0 {
			return ""
		}
		if strings.TrimSpace(key) == param {
			return rest[1 : end+1]
		}
		s = rest[end+2:]
	}
	return ""
}

func isSpace(data []byte) bool { return strings.TrimSpace(string(data)) == "" }
