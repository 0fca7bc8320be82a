// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package propdoc

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/internal/pathtree"
)

// ErrEmpty is reported by Read when the input contains no properties.
var ErrEmpty = errors.New("document contains no properties")

// maxLine is the longest input line Read will accept.
const maxLine = 1 << 20

// A line is a non-blank input line and its 1-based line number.
type line struct {
	num  int
	text string
}

// readLines returns the non-blank lines of r. Errors reading r are returned
// unchanged.
func readLines(r io.Reader) ([]line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLine)
	var lines []line
	var num int
	for sc.Scan() {
		num++
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, line{num: num, text: sc.Text()})
	}
	if err := sc.Err(); err == bufio.ErrTooLong {
		return nil, treeconv.Processingf(err, "line %d", num+1)
	} else if err != nil {
		return nil, err
	}
	return lines, nil
}

// Read reads a properties document from r and pushes its events to log. It
// satisfies the signature of treeconv.Reader.
//
// Each property is checked against the paths of the properties before it. A
// property whose path extends or shortens the path of an earlier property, or
// repeats it, is reported as a *treeconv.ProcessingError wrapping
// pathtree.ErrCollision.
func Read(r io.Reader, log *treeconv.EventLog) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	} else if len(lines) == 0 {
		return treeconv.Processingf(ErrEmpty, "reading properties")
	}

	if err := log.Push(treeconv.StartDoc()); err != nil {
		return err
	}
	var tree pathtree.Tree
	var prev []string
	for _, ln := range lines {
		p, err := ParseProperty(ln.text)
		if err != nil {
			var ferr *treeconv.FormatError
			if errors.As(err, &ferr) {
				ferr.Line = ln.num
			}
			return treeconv.Processingf(err, "invalid property")
		}
		if err := tree.Add(pathtree.Chain(p.Path...)); err != nil {
			return treeconv.Processingf(err, "line %d: property %q collides with another", ln.num, p.Key())
		}

		// Close the trailing segments of the previous path that are not
		// shared, then open the new ones.
		n := commonPrefix(prev, p.Path)
		if err := closeNodes(log, prev[n:]); err != nil {
			return err
		}
		for _, seg := range p.Path[n:] {
			if err := log.Push(treeconv.Open(seg)); err != nil {
				return err
			}
		}
		if err := log.Push(treeconv.Value(p.Value)); err != nil {
			return err
		}
		prev = p.Path
	}
	if err := closeNodes(log, prev); err != nil {
		return err
	}
	return log.Push(treeconv.EndDoc())
}

// closeNodes pushes close events for segs, deepest first.
func closeNodes(log *treeconv.EventLog, segs []string) error {
	for i := len(segs) - 1; i >= 0; i-- {
		if err := log.Push(treeconv.Close(segs[i])); err != nil {
			return err
		}
	}
	return nil
}
