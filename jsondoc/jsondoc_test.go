// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsondoc_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/internal/jsonscan"
	"github.com/creachadair/treeconv/jsondoc"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

var (
	sd = treeconv.StartDoc()
	ed = treeconv.EndDoc()
	op = treeconv.Open
	cl = treeconv.Close
	va = treeconv.Value

	eventEq = cmp.Comparer(func(a, b treeconv.Event) bool { return a == b })
)

func recorder(out *[]treeconv.Event) *treeconv.EventLog {
	log := treeconv.NewEventLog()
	log.AddHandler(treeconv.HandlerFunc(func(e treeconv.Event) error {
		*out = append(*out, e)
		return nil
	}))
	return log
}

// minimize returns the compact form of a JSON document.
func minimize(t *testing.T, doc string) string {
	t.Helper()
	v, err := hujson.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse %#q: %v", doc, err)
	}
	v.Minimize()
	return v.String()
}

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []treeconv.Event
	}{
		{"Empty", `{"root": []}`, []treeconv.Event{sd, ed}},
		{"EmptyObject", `{"root": {}}`, []treeconv.Event{sd, ed}},
		{"Carriers", `{"root":[{"carriers":{"personal":{"name":"Telecom Personal"}}}]}`, []treeconv.Event{
			sd, op("carriers"), op("personal"), op("name"), va("Telecom Personal"),
			cl("name"), cl("personal"), cl("carriers"), ed,
		}},
		{"Siblings", `{"root": [{"a": {"b": "1", "c": "2"}}, {"d": "3"}]}`, []treeconv.Event{
			sd, op("a"), op("b"), va("1"), cl("b"), op("c"), va("2"), cl("c"), cl("a"),
			op("d"), va("3"), cl("d"), ed,
		}},
		{"RootObject", `{"root": {"a": "1", "b": "2"}}`, []treeconv.Event{
			sd, op("a"), va("1"), cl("a"), op("b"), va("2"), cl("b"), ed,
		}},
		{"NestedArray", `{"root": [{"a": [{"b": "1"}, {"c": "2"}]}]}`, []treeconv.Event{
			sd, op("a"), op("b"), va("1"), cl("b"), op("c"), va("2"), cl("c"), cl("a"), ed,
		}},
		{"Escapes", `{"root": [{"q": "say \"hi\"\né"}]}`, []treeconv.Event{
			sd, op("q"), va("say \"hi\"\né"), cl("q"), ed,
		}},
		{"Literals", `{"root": [{"n": 15, "f": -2.5e3, "t": true, "u": false}]}`, []treeconv.Event{
			sd, op("n"), va("15"), cl("n"), op("f"), va("-2.5e3"), cl("f"),
			op("t"), va("true"), cl("t"), op("u"), va("false"), cl("u"), ed,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []treeconv.Event
			if err := jsondoc.Read(strings.NewReader(tc.input), recorder(&got)); err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, eventEq); diff != "" {
				t.Errorf("Events (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestReadComments(t *testing.T) {
	const input = `{
  // The carriers.
  "root": [
    {"carriers": {"personal": {"name": "Telecom Personal",},},}, /* trailing */
  ],
}`
	want := []treeconv.Event{
		sd, op("carriers"), op("personal"), op("name"), va("Telecom Personal"),
		cl("name"), cl("personal"), cl("carriers"), ed,
	}

	if err := jsondoc.Read(strings.NewReader(input), treeconv.NewEventLog()); err == nil {
		t.Error("Read with comments: got nil, want error")
	}

	var got []treeconv.Event
	rd := jsondoc.Reader{AllowComments: true}
	if err := rd.Read(strings.NewReader(input), recorder(&got)); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(want, got, eventEq); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   error // if non-nil, the error must wrap this
		syntax bool  // the error must wrap a *jsonscan.SyntaxError
	}{
		{"Empty", ``, nil, true},
		{"NotObject", `["root"]`, nil, true},
		{"WrongKey", `{"base": []}`, jsondoc.ErrNotRooted, false},
		{"ExtraKey", `{"root": [], "other": []}`, jsondoc.ErrNotRooted, false},
		{"Trailing", `{"root": []} {}`, nil, true},
		{"Unterminated", `{"root": [{"a": "b"}]`, nil, true},
		{"BadToken", `{"root": [{"a": bogus}]}`, nil, true},
		{"BadString", `{"root": [{"a": "\q"}]}`, nil, true},
		{"Null", `{"root": [{"a": null}]}`, nil, false},
		{"RootString", `{"root": "x"}`, nil, false},
		{"ArrayScalar", `{"root": [{"a": ["x", "y"]}]}`, nil, false},
		{"TopScalar", `{"root": ["x"]}`, nil, false},
		{"Comma", `{"root": [{"a": "b",}]}`, nil, true},
		{"EmptyMemberObject", `{"root": [{"a": {}}]}`, nil, false},
		{"EmptyMemberArray", `{"root": [{"a": []}]}`, nil, false},
		{"EmptyMemberNested", `{"root": [{"a": [{}, {}]}]}`, nil, false},
		{"EmptyChild", `{"root": [{"a": {"b": "1", "c": {}}}]}`, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []treeconv.Event
			err := jsondoc.Read(strings.NewReader(tc.input), recorder(&got))
			var perr *treeconv.ProcessingError
			if !errors.As(err, &perr) {
				t.Fatalf("Read: got %v, want *ProcessingError", err)
			}
			t.Logf("Read: got expected error: %v", err)
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Read: got %v, want %v", err, tc.want)
			}
			var serr *jsonscan.SyntaxError
			if ok := errors.As(err, &serr); ok != tc.syntax {
				t.Errorf("Read: syntax error is %v, want %v", ok, tc.syntax)
			}
			for _, e := range got {
				if e.Kind() == treeconv.DocEnded {
					t.Errorf("Read pushed %v despite failing", e)
				}
			}
		})
	}
}

func TestReadIOError(t *testing.T) {
	bad := errors.New("network cable chewed")
	r := io.MultiReader(strings.NewReader(`{"root": [{"a": `), iotest.ErrReader(bad))
	if err := jsondoc.Read(r, treeconv.NewEventLog()); err != bad {
		t.Errorf("Read: got %v, want %v", err, bad)
	}
}

func TestReadHandlerError(t *testing.T) {
	bad := errors.New("handler refused")
	log := treeconv.NewEventLog()
	log.AddHandler(treeconv.HandlerFunc(func(e treeconv.Event) error {
		if e.IsOpen("b") {
			return bad
		}
		return nil
	}))
	err := jsondoc.Read(strings.NewReader(`{"root": [{"a": "1"}, {"b": "2"}]}`), log)
	if !errors.Is(err, bad) {
		t.Errorf("Read: got %v, want %v", err, bad)
	}
}

func render(t *testing.T, events ...treeconv.Event) string {
	t.Helper()
	var buf strings.Builder
	h := jsondoc.NewHandler(&buf)
	for _, e := range events {
		if err := h.Handle(e); err != nil {
			t.Fatalf("Handle %v: unexpected error: %v", e, err)
		}
	}
	return buf.String()
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		events []treeconv.Event
		want   string // minimized
	}{
		{"Carriers", []treeconv.Event{
			sd, op("carriers"), op("personal"), op("name"), va("Telecom Personal"),
			cl("name"), cl("personal"), cl("carriers"), ed,
		}, `{"root":[{"carriers":{"personal":{"name":"Telecom Personal"}}}]}`},
		{"Empty", []treeconv.Event{sd, ed}, `{"root":[]}`},
		{"TopLeaf", []treeconv.Event{
			sd, op("a"), va("x"), cl("a"), op("b"), va("y"), cl("b"), ed,
		}, `{"root":[{"a":"x"},{"b":"y"}]}`},
		{"Siblings", []treeconv.Event{
			sd, op("a"), op("b"), va("1"), cl("b"), op("c"), op("d"), va("2"), cl("d"), cl("c"), cl("a"), ed,
		}, `{"root":[{"a":{"b":"1","c":{"d":"2"}}}]}`},
		{"RepeatedNames", []treeconv.Event{
			sd, op("a"), op("a"), va("1"), cl("a"), op("a"), va("2"), cl("a"), cl("a"), ed,
		}, `{"root":[{"a":{"a":"1","a":"2"}}]}`},
		{"Escaped", []treeconv.Event{
			sd, op("q"), va("say \"hi\"\n\\"), cl("q"), ed,
		}, `{"root":[{"q":"say \"hi\"\n\\"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := minimize(t, render(t, tc.events...)); got != tc.want {
				t.Errorf("Output:\ngot:  %s\nwant: %s", got, tc.want)
			}
		})
	}
}

func TestHandlerPretty(t *testing.T) {
	got := render(t, sd, op("a"), op("b"), va("1"), cl("b"), cl("a"), op("c"), va("2"), cl("c"), ed)
	const want = `{
  "root": [
    {"a": {"b": "1"}},
    {"c": "2"}
  ]
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestHandlerAligned(t *testing.T) {
	got := render(t, sd,
		op("carriers"),
		op("personal"), op("name"), va("Telecom Personal"), cl("name"), cl("personal"),
		op("claro"), op("name"), va("Claro"), cl("name"), cl("claro"),
		cl("carriers"), ed)
	const want = `{
  "root": [
    {
      "carriers": {
        "personal": {"name": "Telecom Personal"},
        "claro":    {"name": "Claro"}
      }
    }
  ]
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []treeconv.Event
	}{
		{"MixedValueFirst", []treeconv.Event{sd, op("a"), va("x"), op("b"), va("y"), cl("b"), cl("a")}},
		{"MixedValueLast", []treeconv.Event{sd, op("a"), op("b"), va("y"), cl("b"), va("x"), cl("a")}},
		{"Mismatched", []treeconv.Event{sd, op("a"), op("b"), va("y"), cl("c"), cl("a")}},
		{"StrayClose", []treeconv.Event{sd, cl("a")}},
		{"StrayValue", []treeconv.Event{sd, va("a")}},
		{"Unclosed", []treeconv.Event{sd, op("a"), ed}},
		{"EmptyNode", []treeconv.Event{sd, op("a"), cl("a")}},
		{"EmptyChild", []treeconv.Event{sd, op("a"), op("b"), va("1"), cl("b"), op("c"), cl("c"), cl("a")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf strings.Builder
			h := jsondoc.NewHandler(&buf)
			var err error
			for _, e := range tc.events {
				if err = h.Handle(e); err != nil {
					break
				}
			}
			var perr *treeconv.ProcessingError
			if !errors.As(err, &perr) {
				t.Errorf("Handle: got %v, want *ProcessingError", err)
			} else {
				t.Logf("Handle: got expected error: %v", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Handler wrote %#q despite failing", buf.String())
			}
		})
	}
}

// Reading a JSON document and writing it back yields the same structure.
func TestRoundTrip(t *testing.T) {
	const input = `{"root":[{"a":{"b":"1","c":{"d":"2","e":"3"}}},{"f":"4"},{"g":{"h":"5"}}]}`
	var buf strings.Builder
	log := treeconv.NewEventLog()
	log.AddHandler(jsondoc.NewHandler(&buf))
	if err := jsondoc.Read(strings.NewReader(input), log); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := minimize(t, buf.String()); got != input {
		t.Errorf("Round trip:\ngot:  %s\nwant: %s", got, input)
	}
}
