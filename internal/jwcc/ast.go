// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jwcc implements a tree of ordered JSON values and a pretty printer
// for them.
//
// Objects are ordered slices of members, so the order of keys is kept and a
// key may appear more than once. The only scalar is a string Datum, which is
// the single value type a converted document carries.
package jwcc

import (
	"fmt"
	"strings"

	"github.com/creachadair/treeconv/internal/escape"
	"go4.org/mem"
)

// A Value is a JSON value. The concrete type is one of *Array, *Datum, or
// *Object.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

// ArrayOf constructs an array of the given values. Each value must be a
// string or a Value.
func ArrayOf(vs ...any) *Array {
	out := &Array{Values: make([]Value, len(vs))}
	for i, v := range vs {
		out.Values[i] = ToValue(v)
	}
	return out
}

func (a Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(a.Values[0].JSON())
	for _, elt := range a.Values[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// Len reports the number of values in a.
func (a Array) Len() int { return len(a.Values) }

// A Datum is a string value.
type Datum struct {
	Value string
}

func (d Datum) JSON() string { return string(escape.Quote(mem.S(d.Value))) }

func (d Datum) String() string { return d.Value }

// A Member is a key-value pair in an object.
type Member struct {
	Key   string
	Value Value
}

func (m Member) JSON() string {
	return string(escape.Quote(mem.S(m.Key))) + ":" + m.Value.JSON()
}

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be a string or a Value.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// An Object is an ordered collection of key-value members. Keys need not be
// unique.
type Object struct {
	Members []*Member
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o.Members) }

func (o Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	sb.WriteString(o.Members[0].JSON())
	for _, m := range o.Members[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// ToValue converts a string or Value to a Value. It panics for any other
// type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case string:
		return &Datum{Value: t}
	case Value:
		return t
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}
