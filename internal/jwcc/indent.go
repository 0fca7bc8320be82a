// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jwcc

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"
)

// A Formatter carries the settings for pretty-printing JSON values.
// A zero value is ready for use with default settings.
//
// The output is standard JSON. Objects with at most one member, and arrays
// of up to three strings, are rendered on one line when their contents allow.
// Other composites are rendered one element per line, and the values of
// single-line object members are aligned in a column.
type Formatter struct{}

func (f Formatter) indent() string { return "  " }

func (f Formatter) maxLineItems() int { return 3 }

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
func FormatToString(v Value) string {
	var buf bytes.Buffer
	Format(&buf, v) // writes to a buffer do not fail
	return buf.String()
}

// Format renders a pretty-printed representation of v to w using the settings
// from f.
func (f Formatter) Format(w io.Writer, v Value) error {
	tw := tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	f.formatValue(tw, v, "", "")
	return tw.Flush()
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

// formatValue writes a representation of v to w. The first line is prefixed
// by init, and subsequent lines are indented by indent.
func (f Formatter) formatValue(w writeFlusher, v Value, init, indent string) {
	switch t := v.(type) {
	case *Array:
		f.formatArray(w, t, init, indent)
	case *Datum:
		fmt.Fprint(w, init, t.JSON())
	case *Object:
		f.formatObject(w, t, init, indent)
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f Formatter) formatArray(w writeFlusher, a *Array, init, indent string) {
	if f.isBoring(a) {
		fmt.Fprint(w, init, "[")
		for i, v := range a.Values {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			f.formatValue(w, v, "", "")
		}
		io.WriteString(w, "]")
		return
	}

	fmt.Fprint(w, init, "[\n")
	adent := indent + f.indent()
	for i, v := range a.Values {
		f.formatValue(w, v, adent, adent)
		io.WriteString(w, separator(i, len(a.Values)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "]")
}

func (f Formatter) formatObject(w writeFlusher, o *Object, init, indent string) {
	if f.isBoring(o) {
		fmt.Fprint(w, init, "{")
		for i, m := range o.Members {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			fmt.Fprint(w, Datum{Value: m.Key}.JSON(), ": ")
			f.formatValue(w, m.Value, "", "")
		}
		io.WriteString(w, "}")
		return
	}

	fmt.Fprint(w, init, "{\n")
	mdent := indent + f.indent()
	for i, m := range o.Members {
		fmt.Fprint(w, mdent, Datum{Value: m.Key}.JSON(), f.objSep(m.Value))
		f.formatValue(w, m.Value, "", mdent)
		io.WriteString(w, separator(i, len(o.Members)))
	}
	w.Flush()
	fmt.Fprint(w, indent, "}")
}

// separator returns the text following element i of n in an expanded
// composite.
func separator(i, n int) string {
	if i+1 < n {
		return ",\n"
	}
	return "\n"
}

// objSep returns a key-value separator for the given value.
// Boring values get indented so they line up in columns;
// non-boring values are stapled directly to the key.
func (f Formatter) objSep(v Value) string {
	if f.isBoring(v) {
		return ":\t"
	}
	return ": "
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v Value) bool {
	switch t := v.(type) {
	case *Array:
		if len(t.Values) > f.maxLineItems() {
			return false
		}
		for _, v := range t.Values {
			if _, ok := v.(*Datum); !ok {
				return false
			}
		}
		return true
	case *Datum:
		return true
	case *Member:
		return f.isBoring(t.Value)
	case *Object:
		if len(t.Members) == 1 {
			return f.isBoring(t.Members[0].Value)
		}
		return len(t.Members) == 0
	default:
		return false
	}
}
