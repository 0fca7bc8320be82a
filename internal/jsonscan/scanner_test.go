// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonscan_test

import (
	"strings"
	"testing"

	"github.com/creachadair/treeconv/internal/jsonscan"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jsonscan.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jsonscan.Token{jsonscan.True, jsonscan.False, jsonscan.Null}},

		// Punctuation
		{"{ [ ] } , :", []jsonscan.Token{
			jsonscan.LBrace, jsonscan.LSquare, jsonscan.RSquare, jsonscan.RBrace, jsonscan.Comma, jsonscan.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jsonscan.Token{jsonscan.String, jsonscan.String, jsonscan.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jsonscan.Token{jsonscan.String}},
		{`"\u0000Ǽꪜ"`, []jsonscan.Token{jsonscan.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100 1.5`, []jsonscan.Token{
			jsonscan.Integer, jsonscan.Integer, jsonscan.Integer,
			jsonscan.Number, jsonscan.Number, jsonscan.Number, jsonscan.Number, jsonscan.Number,
		}},

		// Mixed types
		{`{"root": [{"a": "b"}, {"c": 1}]}`, []jsonscan.Token{
			jsonscan.LBrace, jsonscan.String, jsonscan.Colon,
			jsonscan.LSquare,
			jsonscan.LBrace, jsonscan.String, jsonscan.Colon, jsonscan.String, jsonscan.RBrace,
			jsonscan.Comma,
			jsonscan.LBrace, jsonscan.String, jsonscan.Colon, jsonscan.Integer, jsonscan.RBrace,
			jsonscan.RSquare,
			jsonscan.RBrace,
		}},
	}

	for _, test := range tests {
		var got []jsonscan.Token
		s := jsonscan.NewScanner(strings.NewReader(test.input))
		for s.Next() {
			got = append(got, s.Token())
		}
		if !jsonscan.IsEOF(s.Err()) {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  []jsonscan.Token
	}{
		{`forthright`, nil},
		{`1 2 @`, []jsonscan.Token{jsonscan.Integer, jsonscan.Integer}},
		{`"unterminated`, nil},
		{`01`, nil},
		{`1.`, nil},
		{`"\q"`, nil},
		{`{"a": tru}`, []jsonscan.Token{jsonscan.LBrace, jsonscan.String, jsonscan.Colon}},
	}
	for _, test := range tests {
		var got []jsonscan.Token
		s := jsonscan.NewScanner(strings.NewReader(test.input))
		for s.Next() {
			got = append(got, s.Token())
		}
		if err := s.Err(); err == nil || jsonscan.IsEOF(err) {
			t.Errorf("Input: %#q: got %v, want a lexical error", test.input, err)
		} else {
			t.Logf("Input: %#q: got expected error: %v", test.input, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jsonscan.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jsonscan.LBrace, "1:0"}, {jsonscan.RBrace, "1:2"}}},
		{"true\n false\n", []tokPos{{jsonscan.True, "1:0"}, {jsonscan.False, "2:1"}}},
		{"[1,\n  2\n]", []tokPos{
			{jsonscan.LSquare, "1:0"}, {jsonscan.Integer, "1:1"}, {jsonscan.Comma, "1:2"},
			{jsonscan.Integer, "2:2"}, {jsonscan.RSquare, "3:0"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jsonscan.NewScanner(strings.NewReader(tc.input))
		for s.Next() {
			got = append(got, tokPos{s.Token(), s.Location().First.String()})
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{`""`, ``, false},
		{`"ok go"`, "ok go", false},
		{`"abc\ndef"`, "abc\ndef", false},
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},
		{`"a & b"`, "a & b", false},
		{`"Av. Paseo Colón 505"`, "Av. Paseo Colón 505", false},
		{`"a\"b"`, `a"b`, false},
		{`"a\\b\\cd"`, `a\b\cd`, false},
		{`17`, ``, true}, // not a string
	}

	for _, test := range tests {
		s := jsonscan.NewScanner(strings.NewReader(test.input))
		if !s.Next() {
			t.Fatalf("Next %#q failed: %v", test.input, s.Err())
		}
		got, err := s.Unquote()
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  jsonscan.Location
		want string
	}{
		{jsonscan.Location{First: jsonscan.LineCol{Line: 1, Column: 0}, Last: jsonscan.LineCol{Line: 1, Column: 4}}, "1:0"},
		{jsonscan.Location{First: jsonscan.LineCol{Line: 2, Column: 3}, Last: jsonscan.LineCol{Line: 4, Column: 1}}, "2:3-4:1"},
	}
	for _, test := range tests {
		if got := test.loc.String(); got != test.want {
			t.Errorf("Location %+v: got %q, want %q", test.loc, got, test.want)
		}
	}
}
