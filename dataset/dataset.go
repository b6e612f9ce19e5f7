// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds a table in memory as typed columns and
// derives row-filtered views of it.
package dataset

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/dsexplore/agedist/rowfilter"
	"github.com/dsexplore/agedist/tablefmt"
)

// A Dataset is an immutable table. Views returned by Select share
// records with their parent.
type Dataset struct {
	schema *tablefmt.Schema
	rows   []*tablefmt.Record

	// frame holds the typed columns. It is the zero DataFrame
	// when rows is empty.
	frame dataframe.DataFrame
}

// ValueError reports a field of a numeric column that does not hold
// a number.
type ValueError struct {
	Column string
	Line   int
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("line %d: column %q: non-numeric value %q", e.Line, e.Column, e.Value)
}

// Load reads every record of src, which may be a local path or an
// http(s) URL. Any malformed record aborts the load.
func Load(ctx context.Context, client *http.Client, src string, schema *tablefmt.Schema) (*Dataset, error) {
	s := tablefmt.Sources{Paths: []string{src}, Schema: schema, Client: client}
	defer s.Close()

	var rows []*tablefmt.Record
	for s.Scan(ctx) {
		rec, err := s.Record()
		if err != nil {
			return nil, errors.Wrap(err, "loading dataset")
		}
		rows = append(rows, rec.Clone())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "loading dataset")
	}
	return FromRecords(schema, rows)
}

// FromRecords builds a dataset from records laid out by schema. Every
// record must have exactly one field per column.
func FromRecords(schema *tablefmt.Schema, rows []*tablefmt.Record) (*Dataset, error) {
	for _, rec := range rows {
		if len(rec.Fields) != schema.Len() {
			return nil, &tablefmt.SyntaxError{FileName: "<records>", Line: rec.Line,
				Msg: fmt.Sprintf("want %d fields, got %d", schema.Len(), len(rec.Fields))}
		}
	}
	d := &Dataset{schema: schema, rows: rows}
	if len(rows) == 0 {
		return d, nil
	}

	types := make(map[string]series.Type)
	for _, c := range schema.Columns {
		if c.Kind == tablefmt.Numeric {
			types[c.Name] = series.Float
		}
	}
	// The first record is the header; the input itself has none.
	records := make([][]string, 0, len(rows)+1)
	records = append(records, schema.Names())
	for _, rec := range rows {
		fields := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			if schema.Columns[i].Kind == tablefmt.Numeric {
				f = strings.TrimSpace(f)
			}
			fields[i] = f
		}
		records = append(records, fields)
	}
	d.frame = dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if d.frame.Err != nil {
		return nil, errors.Wrap(d.frame.Err, "building columns")
	}
	return d, nil
}

// Len returns the number of rows in d.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Column returns the raw values of the named column.
func (d *Dataset) Column(name string) ([]string, error) {
	i, ok := d.schema.Index(name)
	if !ok {
		return nil, &tablefmt.ColumnError{Name: name}
	}
	out := make([]string, len(d.rows))
	for j, rec := range d.rows {
		out[j] = rec.Fields[i]
	}
	return out, nil
}

// Floats returns the values of the named numeric column in row
// order. It fails if the column does not exist, is categorical, or
// holds a value that is not a number.
func (d *Dataset) Floats(name string) ([]float64, error) {
	col, err := d.schema.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != tablefmt.Numeric {
		return nil, errors.Errorf("column %q is %s, not numeric", name, col.Kind)
	}
	if len(d.rows) == 0 {
		return []float64{}, nil
	}
	s := d.frame.Col(name)
	if s.Err != nil {
		return nil, errors.Wrapf(s.Err, "column %q", name)
	}
	vals := s.Float()
	pos, _ := d.schema.Index(name)
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			rec := d.rows[i]
			return nil, &ValueError{Column: name, Line: rec.Line, Value: rec.Fields[pos]}
		}
	}
	return vals, nil
}

// Select returns the view of d containing the rows matched by f, in
// their original order.
func (d *Dataset) Select(f *rowfilter.Filter) *Dataset {
	var idx []int
	for i, rec := range d.rows {
		if f.Match(rec) {
			idx = append(idx, i)
		}
	}
	return d.subset(idx)
}

func (d *Dataset) subset(idx []int) *Dataset {
	view := &Dataset{schema: d.schema, rows: make([]*tablefmt.Record, len(idx))}
	for j, i := range idx {
		view.rows[j] = d.rows[i]
	}
	if len(idx) > 0 {
		view.frame = d.frame.Subset(idx)
	}
	return view
}

// Partition splits d into the rows matched by a and the rows matched
// by b. Rows matched by neither are left out of both views. A row
// matched by both is an error, since the views must not overlap.
func Partition(d *Dataset, a, b *rowfilter.Filter) (va, vb *Dataset, err error) {
	var ia, ib []int
	for i, rec := range d.rows {
		ma, mb := a.Match(rec), b.Match(rec)
		switch {
		case ma && mb:
			return nil, nil, errors.Errorf("line %d matches both %s and %s", rec.Line, a, b)
		case ma:
			ia = append(ia, i)
		case mb:
			ib = append(ib, i)
		}
	}
	return d.subset(ia), d.subset(ib), nil
}
