// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonscan implements a lexical scanner for JSON documents.
//
// The scanner reports the undecoded text of each token, so that numbers and
// constants can be carried through a conversion exactly as written.
package jsonscan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/treeconv/internal/escape"
	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// punct and punctTok map the single-rune delimiters to their tokens.
const punct = "{}[],:"

var punctTok = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

var keywords = map[string]Token{"true": True, "false": False, "null": Null}

// A mark is a position in the input. Line and column are 0-based.
type mark struct{ off, line, col int }

func (m mark) lineCol() LineCol { return LineCol{Line: m.line + 1, Column: m.col} }

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, and reports whether one is
// available.
type Scanner struct {
	r    *bufio.Reader
	text []byte // undecoded text of the current token
	tok  Token
	err  error

	start mark // first byte of the current token
	cur   mark // just past the last rune read
	prev  mark // cur before the last rune read
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input, and reports whether a token
// is available. When Next returns false, Err reports io.EOF at the end of the
// input, or a *SyntaxError describing the problem that stopped the scanner.
func (s *Scanner) Next() bool {
	s.text, s.tok, s.err = s.text[:0], Invalid, nil

	ch, err := s.skipSpace()
	if err == io.EOF {
		s.err = err
		return false
	} else if err != nil {
		return s.failAt(s.cur, err, "read failed: %v", err)
	}
	s.start = s.prev
	s.text = utf8.AppendRune(s.text, ch)

	switch {
	case ch == '"':
		return s.scanString()
	case ch == '-' || isDigit(ch):
		return s.scanNumber(ch)
	case isLower(ch):
		return s.scanKeyword()
	}
	if i := strings.IndexRune(punct, ch); i >= 0 {
		s.tok = punctTok[i]
		return true
	}
	return s.failAt(s.start, nil, "unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next, or nil.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value is
// only valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.text }

// Unquote returns the decoded contents of the current token, which must be a
// String. Escape sequences are replaced by their unescaped equivalents.
func (s *Scanner) Unquote() (string, error) {
	if s.tok != String {
		return "", fmt.Errorf("token is %v, not a string", s.tok)
	}
	dec, err := escape.Unquote(mem.B(s.text[1 : len(s.text)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.start.off, End: s.cur.off} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{Span: s.Span(), First: s.start.lineCol(), Last: s.cur.lineCol()}
}

// scanString scans the remainder of a string after its opening quote.
func (s *Scanner) scanString() bool {
	for {
		ch, err := s.read()
		if err != nil {
			return s.failAt(s.cur, err, "unterminated string")
		}
		s.text = utf8.AppendRune(s.text, ch)
		switch {
		case ch == '"':
			s.tok = String
			return true
		case ch == '\\':
			if !s.scanEscape() {
				return false
			}
		case ch < ' ':
			return s.failAt(s.prev, nil, "unescaped control %q in string", ch)
		}
	}
}

// scanEscape scans the remainder of an escape sequence after its backslash.
func (s *Scanner) scanEscape() bool {
	ch, err := s.read()
	if err != nil {
		return s.failAt(s.cur, err, "incomplete escape sequence")
	}
	s.text = utf8.AppendRune(s.text, ch)
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	case 'u':
		for range 4 {
			h, err := s.read()
			if err != nil {
				return s.failAt(s.cur, err, "incomplete Unicode escape")
			} else if !isHexDigit(h) {
				return s.failAt(s.prev, nil, "invalid Unicode escape: not a hex digit: %q", h)
			}
			s.text = append(s.text, byte(h))
		}
		return true
	}
	return s.failAt(s.prev, nil, "invalid %q after escape", ch)
}

// scanNumber scans the remainder of a number whose first rune is first.
func (s *Scanner) scanNumber(first rune) bool {
	s.tok = Integer
	if first == '-' {
		if !s.accept(isDigit) {
			return s.missing("digit after sign")
		}
		first = rune(s.text[len(s.text)-1])
	}

	// A leading zero must be the only digit of the integer part: 0.12 is OK,
	// 01.2 is not.
	if first == '0' {
		if s.accept(isDigit) {
			return s.failAt(s.prev, nil, "extra leading zeroes")
		}
	} else {
		s.acceptRun(isDigit)
	}
	if s.err != nil {
		return false
	}

	if s.accept(isDot) {
		s.tok = Number
		if s.acceptRun(isDigit) == 0 {
			return s.missing("digits after decimal point")
		}
	}
	if s.err == nil && s.accept(isExpMark) {
		s.tok = Number
		s.accept(isSign)
		if s.err == nil && s.acceptRun(isDigit) == 0 {
			return s.missing("exponent digits")
		}
	}
	return s.err == nil
}

// scanKeyword scans the remainder of a constant.
func (s *Scanner) scanKeyword() bool {
	s.acceptRun(isLower)
	if s.err != nil {
		return false
	}
	tok, ok := keywords[string(s.text)]
	if !ok {
		return s.failAt(s.start, nil, "unknown constant %q", s.text)
	}
	s.tok = tok
	return true
}

// skipSpace reads and returns the first non-whitespace rune of the input.
func (s *Scanner) skipSpace() (rune, error) {
	for {
		ch, err := s.read()
		if err != nil || !isSpace(ch) {
			return ch, err
		}
	}
}

func (s *Scanner) read() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	s.prev = s.cur
	s.cur.off += nb
	if ch == '\n' {
		s.cur.line++
		s.cur.col = 0
	} else {
		s.cur.col += nb
	}
	return ch, nil
}

// unread backs up over the last rune read. It must only be called directly
// after a successful read.
func (s *Scanner) unread() {
	s.r.UnreadRune()
	s.cur = s.prev
}

// accept consumes the next rune and reports true if it satisfies f.
// Otherwise the rune is left unread. A read error other than io.EOF is
// recorded as the error of s.
func (s *Scanner) accept(f func(rune) bool) bool {
	ch, err := s.read()
	if err != nil {
		if err != io.EOF {
			s.failAt(s.cur, err, "read failed: %v", err)
		}
		return false
	} else if !f(ch) {
		s.unread()
		return false
	}
	s.text = utf8.AppendRune(s.text, ch)
	return true
}

// acceptRun consumes runes satisfying f, and reports how many it consumed.
func (s *Scanner) acceptRun(f func(rune) bool) int {
	var nr int
	for s.accept(f) {
		nr++
	}
	return nr
}

// missing records an error for an absent part of a token, unless an error was
// already recorded. It returns false.
func (s *Scanner) missing(what string) bool {
	if s.err == nil {
		s.failAt(s.cur, nil, "missing %s", what)
	}
	return false
}

// failAt records a *SyntaxError located at m. It returns false.
func (s *Scanner) failAt(m mark, err error, msg string, args ...any) bool {
	s.tok = Invalid
	s.err = &SyntaxError{Location: m.lineCol(), Message: fmt.Sprintf(msg, args...), err: err}
	return false
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool   { return '0' <= ch && ch <= '9' }
func isLower(ch rune) bool   { return 'a' <= ch && ch <= 'z' }
func isDot(ch rune) bool     { return ch == '.' }
func isExpMark(ch rune) bool { return ch == 'e' || ch == 'E' }
func isSign(ch rune) bool    { return ch == '-' || ch == '+' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// SyntaxError reports a lexical or grammatical error at a location in the
// input.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Errorf returns a *SyntaxError located at the current token of s.
// If err != nil, it is wrapped by the result.
func (s *Scanner) Errorf(err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Location: s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// IsEOF reports whether err marks the clean end of the input. An input that
// ends in the middle of a token is a syntax error, not io.EOF.
func IsEOF(err error) bool { return err == io.EOF }
