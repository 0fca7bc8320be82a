// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package convert implements conversion of documents between formats.
//
// A conversion connects one reader, selected by the source format, to one
// handler, selected by the target format, through a single event log:
//
//	err := convert.Convert("carriers.properties", "carriers.json", treeconv.JSON)
//
// If a conversion fails, the output file is removed.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/jsondoc"
	"github.com/creachadair/treeconv/propdoc"
	"github.com/creachadair/treeconv/xmldoc"
)

var (
	// ErrUnsupportedFormat is reported for a source or target format that has
	// no reader or handler.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSameFile is reported when the input and output paths name the same
	// file.
	ErrSameFile = errors.New("input and output are the same file")
)

// Convert converts the document at inPath to the target format and writes the
// result to outPath, using a zero Converter.
func Convert(inPath, outPath string, target treeconv.Format) error {
	return Converter{}.Convert(inPath, outPath, target)
}

// A Converter carries settings for document conversion. The zero value is
// ready for use with default settings.
type Converter struct {
	// If set, diagnostic messages are written here.
	Log Logger

	// If true, JSON sources may contain comments and trailing commas.
	AllowComments bool
}

func (c Converter) logger() Logger {
	if c.Log == nil {
		return NopLogger{}
	}
	return c.Log
}

// Convert converts the document at inPath to the target format and writes the
// result to outPath. The source format is chosen by the extension of inPath.
//
// The input is opened before the output file is created, and if outPath
// already names the same file as inPath, Convert reports ErrSameFile without
// modifying it. The output file is removed if the conversion fails, does not
// reach the end of the document, or produces no output. Errors opening,
// reading, or writing files are returned unchanged.
func (c Converter) Convert(inPath, outPath string, target treeconv.Format) (err error) {
	log := c.logger().With("input", inPath, "output", outPath)

	src, err := treeconv.FormatForPath(inPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	rd, err := c.ReaderFor(src)
	if err != nil {
		return err
	}
	if err := checkTarget(target); err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := checkSameFile(in, outPath); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	var ended bool
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err == nil && ended {
			fi, serr := os.Stat(outPath)
			if serr != nil || fi.Size() != 0 {
				log.Info("conversion complete", "source", src, "target", target)
				return
			}
			log.Warn("conversion produced no output")
		}
		log.Debug("removing output file", "error", err)
		if rerr := os.Remove(outPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			log.Warn("unable to remove output file", "error", rerr)
		}
	}()

	h, err := HandlerFor(target, bw)
	if err != nil {
		return err
	}
	elog := treeconv.NewEventLog()
	elog.AddHandler(h)
	elog.AddHandler(treeconv.HandlerFunc(func(e treeconv.Event) error {
		if e.Kind() == treeconv.DocEnded {
			ended = true
			return bw.Flush()
		}
		return nil
	}))
	log.Debug("converting", "reader", src, "handler", target)
	return rd.Read(in, elog)
}

// Transcode reads a document in format src from r, and writes it in format
// dst to w. Output written to w is not buffered.
func (c Converter) Transcode(r io.Reader, src treeconv.Format, w io.Writer, dst treeconv.Format) error {
	rd, err := c.ReaderFor(src)
	if err != nil {
		return err
	}
	h, err := HandlerFor(dst, w)
	if err != nil {
		return err
	}
	elog := treeconv.NewEventLog()
	elog.AddHandler(h)
	c.logger().Debug("transcoding", "reader", src, "handler", dst)
	return rd.Read(r, elog)
}

// ReaderFor returns a reader for documents in format f.
func (c Converter) ReaderFor(f treeconv.Format) (treeconv.Reader, error) {
	switch f {
	case treeconv.Properties:
		return treeconv.ReaderFunc(propdoc.Read), nil
	case treeconv.XML:
		return treeconv.ReaderFunc(xmldoc.Read), nil
	case treeconv.JSON:
		return jsondoc.Reader{AllowComments: c.AllowComments}, nil
	default:
		return nil, fmt.Errorf("%w: no reader for %v", ErrUnsupportedFormat, f)
	}
}

// HandlerFor returns a handler that writes documents in format f to w.
func HandlerFor(f treeconv.Format, w io.Writer) (treeconv.Handler, error) {
	switch f {
	case treeconv.Properties:
		return propdoc.NewHandler(w), nil
	case treeconv.XML:
		return xmldoc.NewHandler(w), nil
	case treeconv.JSON:
		return jsondoc.NewHandler(w), nil
	default:
		return nil, fmt.Errorf("%w: no handler for %v", ErrUnsupportedFormat, f)
	}
}

// checkSameFile reports ErrSameFile if outPath exists and is the same file as
// in. A missing output is not an error.
func checkSameFile(in *os.File, outPath string) error {
	ofi, err := os.Stat(outPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	ifi, err := in.Stat()
	if err != nil {
		return err
	}
	if os.SameFile(ifi, ofi) {
		return fmt.Errorf("%w: %q", ErrSameFile, outPath)
	}
	return nil
}

func checkTarget(f treeconv.Format) error {
	_, err := HandlerFor(f, io.Discard)
	return err
}
