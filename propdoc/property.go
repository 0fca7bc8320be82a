// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package propdoc reads and writes documents in the dotted-path properties
// format. Each non-blank line of a properties document defines one leaf:
//
//	carriers.personal.name = "Telecom Personal"
//	carriers.personal.code = "TP"
//
// A path is one or more segments of word characters ([A-Za-z0-9_]) separated
// by single dots. The value is a non-empty run of characters other than '"'
// between double quotes. Whitespace is permitted around the "=" and at the
// end of the line.
package propdoc

import (
	"regexp"
	"strings"

	"github.com/creachadair/treeconv"
)

var propRE = regexp.MustCompile(`^(\w+(?:\.\w+)*)\s*=\s*"([^"]+)"\s*$`)

// A Property is a single dotted path and its value.
type Property struct {
	Path  []string
	Value string
}

// ParseProperty parses a single property line. If line does not match the
// properties grammar, the error has type *treeconv.FormatError.
func ParseProperty(line string) (Property, error) {
	m := propRE.FindStringSubmatch(line)
	if m == nil {
		return Property{}, &treeconv.FormatError{Text: line}
	}
	return Property{Path: strings.Split(m[1], "."), Value: m[2]}, nil
}

// Key returns the dotted path of p.
func (p Property) Key() string { return strings.Join(p.Path, ".") }

// String renders p as a properties line.
func (p Property) String() string { return p.Key() + ` = "` + p.Value + `"` }

// commonPrefix reports the number of leading path segments shared by a and b.
func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
