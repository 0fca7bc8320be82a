// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package readerr wraps an io.Reader to remember the first error other than
// io.EOF it reports, so that a parser can distinguish a failure of the
// underlying input from malformed content.
package readerr

import "io"

// A Reader wraps an io.Reader and records the first non-EOF error it reports.
type Reader struct {
	r   io.Reader
	err error
}

// New returns a Reader that delegates to r.
func New(r io.Reader) *Reader { return &Reader{r: r} }

// Read satisfies io.Reader.
func (t *Reader) Read(data []byte) (int, error) {
	nr, err := t.r.Read(data)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return nr, err
}

// Err returns the first non-EOF error reported by the underlying reader, or
// nil if there was none.
func (t *Reader) Err() error { return t.err }

// Check returns the recorded read error if there is one, otherwise err.
func (t *Reader) Check(err error) error {
	if t.err != nil {
		return t.err
	}
	return err
}
