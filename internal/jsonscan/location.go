// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonscan

import "fmt"

// Span is the half-open range [Pos, End) of byte offsets covered by a token.
type Span struct {
	Pos int
	End int
}

// LineCol is a position in the input as a 1-based line number and a 0-based
// byte offset within that line.
type LineCol struct {
	Line   int
	Column int
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Location is the position of a token, as byte offsets and as the line and
// column of its first and last bytes.
type Location struct {
	Span
	First, Last LineCol
}

// String renders l as "line:col" for a token within one line, or as
// "line:col-line:col" otherwise.
func (l Location) String() string {
	if l.First.Line == l.Last.Line {
		return l.First.String()
	}
	return l.First.String() + "-" + l.Last.String()
}
