// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tablefmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// A Reader reads header-less comma-separated records.
//
// Its API is modeled on bufio.Scanner. The Record returned by Record
// is overwritten by the next call to Scan; a caller should Clone
// anything it needs to retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	c        *csv.Reader
	schema   *Schema
	fileName string
	err      error // current I/O error

	record    Record
	recordErr error
}

// SyntaxError represents a malformed record on a particular line of
// an input.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRecord = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader that parses records of the given
// schema from r. fileName is used in error messages; it is purely
// diagnostic.
func NewReader(r io.Reader, fileName string, schema *Schema) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, schema)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string, schema *Schema) {
	r.c = csv.NewReader(ior)
	// Arity is checked against the schema so a bad row becomes a
	// SyntaxError rather than a csv.ErrFieldCount.
	r.c.FieldsPerRecord = -1
	r.schema = schema
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.err = nil
	r.recordErr = noRecord
	r.record.Fields = r.record.Fields[:0]
	r.record.Line = 0
}

// Scan advances the reader to the next record and returns true if a
// record was read. The caller should use the Record method to get the
// record. If an I/O error occurs, or this reaches the end of the
// input, it returns false and the caller should use the Err method to
// check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.c == nil {
		return false
	}

	fields, err := r.c.Read()
	if err == io.EOF {
		return false
	}
	var perr *csv.ParseError
	switch {
	case err == nil:
	case errors.As(err, &perr):
		// Quoting problems only spoil this record.
		r.recordErr = &SyntaxError{r.fileName, perr.StartLine, perr.Err.Error()}
		return true
	default:
		r.err = fmt.Errorf("%s: %w", r.fileName, err)
		return false
	}

	line, _ := r.c.FieldPos(0)
	r.record.Line = line
	r.record.Fields = append(r.record.Fields[:0], fields...)
	r.recordErr = nil
	if r.schema != nil && len(fields) != r.schema.Len() {
		r.recordErr = &SyntaxError{r.fileName, line,
			fmt.Sprintf("want %d fields, got %d", r.schema.Len(), len(fields))}
	}
	return true
}

// Record returns the last record read, or an error if the record was
// malformed.
//
// Syntax errors are non-fatal, so the caller can continue to call
// Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recordErr != nil {
		return nil, r.recordErr
	}
	return &r.record, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
