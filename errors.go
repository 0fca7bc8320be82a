// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package treeconv

import "fmt"

// ProcessingError is the concrete type of errors reported when a document
// cannot be converted: a malformed source, a path collision, or a failure to
// write the target. The Err field, if set, is the underlying cause.
type ProcessingError struct {
	Message string
	Err     error
}

// Processingf returns a *ProcessingError wrapping err with a formatted
// message. The err argument may be nil.
func Processingf(err error, msg string, args ...any) *ProcessingError {
	return &ProcessingError{Message: fmt.Sprintf(msg, args...), Err: err}
}

// Error satisfies the error interface.
func (p *ProcessingError) Error() string {
	if p.Err == nil {
		return p.Message
	}
	return p.Message + ": " + p.Err.Error()
}

// Unwrap supports error wrapping.
func (p *ProcessingError) Unwrap() error { return p.Err }

// FormatError reports a source line that does not match the grammar of its
// format.
type FormatError struct {
	Line int    // 1-based line number, or 0 if unknown
	Text string // the offending input
}

// Error satisfies the error interface.
func (f *FormatError) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("line %d: invalid format: %q", f.Line, f.Text)
	}
	return fmt.Sprintf("invalid format: %q", f.Text)
}
