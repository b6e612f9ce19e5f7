// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tablefmt provides a streaming reader and writer for
// header-less, comma-separated tables whose columns are assigned by
// position, such as the UCI "adult" census extract.
//
// The reader is structured like bufio.Scanner so consumers can
// process arbitrarily large inputs one record at a time and build
// whatever in-memory model suits them.
package tablefmt

import "fmt"

// Kind classifies how a column's values are interpreted.
type Kind int

const (
	// Categorical columns are compared as exact strings.
	Categorical Kind = iota
	// Numeric columns hold integers or decimals, possibly with
	// surrounding white space.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Column is a single named, positional column of a Schema.
type Column struct {
	Name string
	Kind Kind
}

// A Schema is the ordered list of columns of a table. Because the
// input carries no header row, field i of every record belongs to
// column i of the schema.
type Schema struct {
	Columns []Column

	index map[string]int
}

// NewSchema returns a schema with the given columns. It panics if two
// columns share a name.
func NewSchema(cols ...Column) *Schema {
	s := &Schema{Columns: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, ok := s.index[c.Name]; ok {
			panic("duplicate column " + c.Name)
		}
		s.index[c.Name] = i
	}
	return s
}

// Len returns the number of columns, which is also the required
// number of fields per record.
func (s *Schema) Len() int {
	return len(s.Columns)
}

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Column returns the named column, or an error naming the missing
// column.
func (s *Schema) Column(name string) (Column, error) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, &ColumnError{Name: name}
	}
	return s.Columns[i], nil
}

// Names returns the column names in positional order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnError reports a reference to a column that is not in the
// schema.
type ColumnError struct {
	Name string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

// AdultSchema is the fixed column layout of the UCI adult data set.
var AdultSchema = NewSchema(
	Column{"age", Numeric},
	Column{"workclass", Categorical},
	Column{"fnlwgt", Numeric},
	Column{"education", Categorical},
	Column{"education-num", Numeric},
	Column{"marital-status", Categorical},
	Column{"occupation", Categorical},
	Column{"relationship", Categorical},
	Column{"race", Categorical},
	Column{"sex", Categorical},
	Column{"capital-gain", Numeric},
	Column{"capital-loss", Numeric},
	Column{"hours-per-week", Numeric},
	Column{"native-country", Categorical},
	Column{"salary", Categorical},
)

// Record is a single row of a table.
type Record struct {
	// Fields holds the raw field text in schema order. Fields are
	// not trimmed: a leading space is part of the value.
	Fields []string

	// Line is the 1-based input line the record started on. It is
	// purely diagnostic.
	Line int
}

// Field returns the value of field i, or "" if i is out of range.
func (r *Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Clone makes a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	return &Record{
		Fields: append([]string(nil), r.Fields...),
		Line:   r.Line,
	}
}
