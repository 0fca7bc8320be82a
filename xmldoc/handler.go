// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/creachadair/treeconv"
)

// NewHandler returns a handler that renders the events it receives as an XML
// document written to w. Nested elements are indented with tabs.
//
// Each node name becomes an element name, so a name that is not a valid XML
// name, such as "1a" or "a b", is reported as an error wrapping
// ErrInvalidName. Names containing a colon are also rejected, since
// namespaces are not supported.
func NewHandler(w io.Writer) *treeconv.DocumentHandler {
	return treeconv.NewDocumentHandler(&builder{w: w})
}

type builder struct {
	w   io.Writer
	enc *xml.Encoder
}

var rootName = xml.Name{Local: RootName}

func (b *builder) StartDocument() error {
	if _, err := io.WriteString(b.w, `<?xml version="`+Version+`" encoding="`+Encoding+`"?>`+"\n"); err != nil {
		return err
	}
	b.enc = xml.NewEncoder(b.w)
	b.enc.Indent("", "\t")
	return b.enc.EncodeToken(xml.StartElement{Name: rootName})
}

var errNotStarted = errors.New("document not started")

// ErrInvalidName is reported by a handler from NewHandler for a node whose
// name cannot be written as an XML element name.
var ErrInvalidName = errors.New("invalid XML element name")

func (b *builder) EndDocument() error {
	if b.enc == nil {
		return errNotStarted
	}
	if err := b.enc.EncodeToken(xml.EndElement{Name: rootName}); err != nil {
		return err
	}
	return b.enc.Flush()
}

func (b *builder) OpenNode(name string, _ treeconv.Event) error {
	if b.enc == nil {
		return errNotStarted
	} else if !isName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return b.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}})
}

func (b *builder) CloseNode(name string, _ treeconv.Event) error {
	if b.enc == nil {
		return errNotStarted
	}
	return b.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (b *builder) AddValue(data string, _ treeconv.Event) error {
	if b.enc == nil {
		return errNotStarted
	}
	return b.enc.EncodeToken(xml.CharData(data))
}

// isName reports whether s is a valid XML name without a namespace prefix.
func isName(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i == 0:
			return false
		case unicode.IsDigit(r) || r == '-' || r == '.' || unicode.In(r, unicode.Mn, unicode.Mc):
		default:
			return false
		}
	}
	return s != ""
}
