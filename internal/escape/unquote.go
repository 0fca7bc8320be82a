// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var (
	errIncomplete        = errors.New("incomplete escape sequence")
	errIncompleteUnicode = errors.New("incomplete Unicode escape")
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// surrogate pair of \u escapes is combined into a single rune. Invalid
// escapes and unpaired surrogates are replaced by the Unicode replacement
// rune. Unquote reports an error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(make([]byte, 0, src.Len()), src), nil
	}
	dec := make([]byte, 0, src.Len())
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errIncomplete
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))

		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errIncompleteUnicode
			}
			v, ok := parseHex4(src)
			src = src.SliceFrom(4)
			if ok && utf16.IsSurrogate(v) {
				v, src = pairSurrogate(v, src)
			} else if !ok {
				v = utf8.RuneError
			}
			dec = utf8.AppendRune(dec, v)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// pairSurrogate combines the surrogate hi with a following \u escape in src,
// and returns the combined rune and the remaining input. If src does not begin
// with a matching low surrogate, it returns utf8.RuneError and src unchanged.
func pairSurrogate(hi rune, src mem.RO) (rune, mem.RO) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return utf8.RuneError, src
	}
	lo, ok := parseHex4(src.SliceFrom(2))
	if !ok {
		return utf8.RuneError, src
	}
	r := utf16.DecodeRune(hi, lo)
	if r == utf8.RuneError {
		return r, src
	}
	return r, src.SliceFrom(6)
}

// parseHex4 decodes four hexadecimal digits from the front of data.
func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := range 4 {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
