// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tablefmt

import (
	"bufio"
	"io"
	"strings"
)

// A Writer writes records in the header-less comma-separated format
// read by Reader.
//
// Unlike encoding/csv, the Writer does not quote fields that merely
// begin with a space, so a leading space, which is significant in
// categorical fields, is written back the way it was read.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes record rec. Output is buffered; call Flush before the
// underlying writer is closed.
func (w *Writer) Write(rec *Record) error {
	if w.err != nil {
		return w.err
	}
	for i, f := range rec.Fields {
		if i > 0 {
			w.w.WriteByte(',')
		}
		if strings.ContainsAny(f, ",\"\r\n") {
			w.w.WriteByte('"')
			w.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
			w.w.WriteByte('"')
		} else {
			w.w.WriteString(f)
		}
	}
	_, w.err = w.w.WriteString("\n")
	return w.err
}

// Flush writes any buffered records and reports the first error
// from any Write or Flush.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}
