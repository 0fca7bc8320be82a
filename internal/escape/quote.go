// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps control bytes that have a two-character escape to the letter
// following the backslash.
var shortEsc = map[byte]byte{'\b': 'b', '\f': 'f', '\n': 'n', '\r': 'r', '\t': 't'}

const hexDigit = "0123456789abcdef"

// Quote encodes src as a JSON string value: the contents are escaped and
// double quotation marks are added.
func Quote(src mem.RO) []byte {
	return AppendQuoted(make([]byte, 0, src.Len()+2), src)
}

// AppendQuoted appends the JSON string encoding of src, including the double
// quotation marks, to buf and returns the extended slice.
//
// Control characters, quotation marks and backslashes are escaped, as are the
// line and paragraph separators U+2028 and U+2029 and the replacement rune
// U+FFFD. Other text is copied unchanged.
func AppendQuoted(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	for src.Len() > 0 {
		n := safePrefix(src)
		buf = mem.Append(buf, src.SliceTo(n))
		src = src.SliceFrom(n)
		if src.Len() == 0 {
			break
		}

		r, size := mem.DecodeRune(src)
		src = src.SliceFrom(size)
		switch {
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r < ' ':
			if c, ok := shortEsc[byte(r)]; ok {
				buf = append(buf, '\\', c)
			} else {
				buf = appendUnicode(buf, r)
			}
		default:
			buf = appendUnicode(buf, r)
		}
	}
	return append(buf, '"')
}

// safePrefix returns the length of the longest prefix of src that can be
// copied to a quoted string without escaping.
func safePrefix(src mem.RO) int {
	var n int
	for n < src.Len() {
		b := src.At(n)
		if b < utf8.RuneSelf {
			if b < ' ' || b == '"' || b == '\\' {
				return n
			}
			n++
			continue
		}
		r, size := mem.DecodeRune(src.SliceFrom(n))
		if r == '\u2028' || r == '\u2029' || r == utf8.RuneError {
			return n
		}
		n += size
	}
	return n
}

// appendUnicode appends the \uXXXX escape for r, which must be in the Basic
// Multilingual Plane.
func appendUnicode(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
}
