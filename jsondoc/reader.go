// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsondoc reads and writes documents in the JSON format.
//
// A document is an object with the single key "root", whose value is an
// array of objects (or a single object). Each object key names a node; a
// string value makes a leaf and an object value nests further nodes:
//
//	{
//	  "root": [
//	    {"carriers": {"personal": {"name": "Telecom Personal"}}}
//	  ]
//	}
//
// Arrays are transparent: the members of the objects in an array are treated
// as consecutive members of the enclosing node.
package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/internal/jsonscan"
	"github.com/creachadair/treeconv/internal/readerr"
	"github.com/tailscale/hujson"
)

// RootKey is the name of the single top-level key of a document.
const RootKey = "root"

// ErrNotRooted is reported when the input is not an object whose only key is
// RootKey.
var ErrNotRooted = errors.New(`document must be an object with the single key "root"`)

// Reader reads JSON documents. The zero value reads standard JSON.
type Reader struct {
	// If true, accept comments and trailing commas (JWCC) in the input.
	AllowComments bool
}

// Read reads a JSON document from r using the default settings.
// It satisfies the signature of treeconv.Reader.
func Read(r io.Reader, log *treeconv.EventLog) error { return Reader{}.Read(r, log) }

// Read reads a JSON document from r and pushes its events to log.
//
// Strings are unescaped. Numbers and the constants true and false are
// reported as their literal text. A null value, a value not belonging to an
// object member, or a member whose value holds no members or strings (such
// as {} or []), is reported as a *treeconv.ProcessingError. A syntax
// error is reported as a *treeconv.ProcessingError wrapping a
// *jsonscan.SyntaxError.
func (rd Reader) Read(r io.Reader, log *treeconv.EventLog) (err error) {
	rr := readerr.New(r)
	var in io.Reader = rr
	if rd.AllowComments {
		data, err := io.ReadAll(rr)
		if err != nil {
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return treeconv.Processingf(err, "invalid JSON")
		}
		in = bytes.NewReader(std)
	}

	p := &parser{s: jsonscan.NewScanner(in), log: log}
	defer func() {
		if rerr := rr.Err(); rerr != nil {
			err = rerr
		}
	}()
	defer p.recoverParseError(&err)
	p.parseDocument()
	return nil
}

// parser is a recursive-descent parser over the tokens of a scanner that
// pushes events for the structure of the document.
type parser struct {
	s    *jsonscan.Scanner
	log  *treeconv.EventLog
	last treeconv.Event // the most recent event pushed
}

func (p *parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *jsonscan.SyntaxError:
			*errp = treeconv.Processingf(err, "invalid JSON")
		case handlerError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}

// parseDocument consumes a complete document: {"root": value}.
func (p *parser) parseDocument() {
	p.advance(jsonscan.LBrace)
	p.advance(jsonscan.String)
	if key := p.unquote(); key != RootKey {
		p.fail(ErrNotRooted, "found key %q", key)
	}
	p.advance(jsonscan.Colon)

	p.push(treeconv.StartDoc())
	p.advance()
	p.parseElement("", false)

	if tok := p.advance(jsonscan.RBrace, jsonscan.Comma); tok == jsonscan.Comma {
		p.fail(ErrNotRooted, "found more than one key")
	}
	if p.s.Next() {
		p.syntaxError(nil, "unexpected %v after end of document", p.s.Token())
	} else if err := p.s.Err(); !jsonscan.IsEOF(err) {
		p.scanError(err)
	}
	p.push(treeconv.EndDoc())
}

// parseElement consumes a single value of any type. If owned is true, the
// value belongs to the member named key, otherwise it is an array element or
// the value of the root.
// Precondition: token != Invalid.
func (p *parser) parseElement(key string, owned bool) {
	switch tok := p.s.Token(); tok {
	case jsonscan.LBrace:
		p.parseMembers()
		p.require(jsonscan.RBrace)
	case jsonscan.LSquare:
		p.parseElements(key)
		p.require(jsonscan.RSquare)
	case jsonscan.String:
		p.checkOwned(key, owned, tok)
		p.push(treeconv.Value(p.unquote()))
	case jsonscan.Integer, jsonscan.Number, jsonscan.True, jsonscan.False:
		p.checkOwned(key, owned, tok)
		p.push(treeconv.Value(string(p.s.Text())))
	case jsonscan.Null:
		p.fail(nil, "null value for %q is not supported", key)
	case jsonscan.RBrace, jsonscan.RSquare, jsonscan.Comma, jsonscan.Colon:
		p.syntaxError(nil, "unexpected %v", tok)
	default:
		p.syntaxError(nil, "unknown token %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members, and pushes a
// node for each.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (p *parser) parseMembers() {
	tok := p.advance(jsonscan.RBrace, jsonscan.String)
	if tok == jsonscan.RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		key := p.unquote()
		p.push(treeconv.Open(key))
		p.advance(jsonscan.Colon)
		p.advance()
		p.parseElement(key, true)
		if p.last.IsOpen(key) {
			p.fail(nil, "member %q has no value", key)
		}
		p.push(treeconv.Close(key))

		// Check whether we have more members (",") or are done ("}").
		if tok := p.advance(jsonscan.RBrace, jsonscan.Comma); tok == jsonscan.RBrace {
			return // end of object
		}
		p.advance(jsonscan.String) // advance to next key
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (p *parser) parseElements(key string) {
	if tok := p.advance(); tok == jsonscan.RSquare {
		return // end of array
	}
	p.parseElement(key, false)
	for {
		if tok := p.advance(jsonscan.RSquare, jsonscan.Comma); tok == jsonscan.RSquare {
			return // end of array
		}
		p.advance()
		p.parseElement(key, false)
	}
}

func (p *parser) checkOwned(key string, owned bool, tok jsonscan.Token) {
	if owned {
		return
	}
	if key == "" {
		p.fail(nil, "%v value must belong to an object member", tok)
	}
	p.fail(nil, "%v value in array of %q must belong to an object member", tok, key)
}

func (p *parser) advance(tokens ...jsonscan.Token) jsonscan.Token {
	if !p.s.Next() {
		err := p.s.Err()
		if jsonscan.IsEOF(err) {
			p.syntaxError(err, "%v", tokLabel(tokens, "end of input"))
		}
		p.scanError(err)
	}
	tok := p.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		p.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (p *parser) require(token jsonscan.Token) {
	if tok := p.s.Token(); tok != token {
		p.syntaxError(nil, "expected %v, got %v", token, tok)
	}
}

func (p *parser) unquote() string {
	s, err := p.s.Unquote()
	if err != nil {
		p.syntaxError(err, "invalid string: %v", err)
	}
	return s
}

func (p *parser) push(e treeconv.Event) {
	if err := p.log.Push(e); err != nil {
		panic(handlerError{err})
	}
	p.last = e
}

func (p *parser) syntaxError(err error, msg string, args ...any) {
	panic(p.s.Errorf(err, msg, args...))
}

// scanError aborts the parse with an error reported by the scanner.
func (p *parser) scanError(err error) {
	var serr *jsonscan.SyntaxError
	if errors.As(err, &serr) {
		panic(serr)
	}
	p.syntaxError(err, "%v", err)
}

// fail aborts the parse with a processing error located at the current token.
func (p *parser) fail(err error, msg string, args ...any) {
	panic(handlerError{treeconv.Processingf(err, "at %v: %s", p.s.Location(), fmt.Sprintf(msg, args...))})
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []jsonscan.Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("unexpected %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
