// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package treeconv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported document formats.
type Format byte

// Constants defining the supported formats.
const (
	Unknown    Format = iota // unrecognized format
	Properties               // dotted-path properties: a.b.c = "value"
	XML                      // XML
	JSON                     // JSON
)

var formatInfo = [...]struct {
	name, ext string
}{
	Unknown:    {"unknown", ""},
	Properties: {"PROPERTY", "properties"},
	XML:        {"XML", "xml"},
	JSON:       {"JSON", "json"},
}

// String returns the canonical name of f, as accepted by ParseFormat.
func (f Format) String() string {
	if int(f) >= len(formatInfo) {
		return formatInfo[Unknown].name
	}
	return formatInfo[f].name
}

// Extension returns the file extension (without the dot) for documents in
// format f, or "" if f is not a supported format.
func (f Format) Extension() string {
	if int(f) >= len(formatInfo) {
		return ""
	}
	return formatInfo[f].ext
}

// ParseFormat parses the name of a format. Names are not case-sensitive;
// either the canonical name (XML, JSON, PROPERTY) or the file extension
// (xml, json, properties) is accepted.
func ParseFormat(s string) (Format, error) {
	for i, fi := range formatInfo[1:] {
		if strings.EqualFold(s, fi.name) || strings.EqualFold(s, fi.ext) {
			return Format(i + 1), nil
		}
	}
	return Unknown, fmt.Errorf("unknown format %q", s)
}

// MustParseFormat is as ParseFormat, but panics if s is not a valid format.
func MustParseFormat(s string) Format {
	f, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FormatForPath reports the format of the file at path based on its
// extension. Extensions are matched exactly: "a.json" is JSON, "a.JSON" is
// not.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for i, fi := range formatInfo[1:] {
		if ext == fi.ext {
			return Format(i + 1), nil
		}
	}
	return Unknown, fmt.Errorf("no format for files with extension %q", ext)
}
