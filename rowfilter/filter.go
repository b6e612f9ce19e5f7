// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rowfilter selects table rows with boolean key:value
// queries.
//
// It supports the following query syntax:
//
//	key:value     - Test if column key equals value exactly.
//	key:(x y ...) - Test if key equals any of x, y, etc.
//	x y ...       - Test if x, y, etc. are all true
//	x AND y       - Same as x y
//	x OR y        - Test if x or y are true
//	-x            - Negate x
//	*             - Match every row
//	(...)         - Subexpression
//
// Keys and values can be double-quoted, which is necessary for
// values with leading spaces such as salary:" <=50K".
package rowfilter

import (
	"github.com/dsexplore/agedist/rowfilter/internal/kvql"
	"github.com/dsexplore/agedist/tablefmt"
)

// A Filter filters table rows.
type Filter struct {
	// query is the parsed query. Its leaves carry the extractor
	// of the column they test.
	query kvql.Query
}

// NewFilter constructs a row filter from a boolean query over the
// columns of schema. It returns a *kvql.SyntaxError if the query is
// malformed or names an unknown column; in the latter case the error
// wraps a *tablefmt.ColumnError.
func NewFilter(query string, schema *tablefmt.Schema) (*Filter, error) {
	q, err := kvql.Parse(query, schema)
	if err != nil {
		return nil, err
	}
	return &Filter{query: q}, nil
}

// MustFilter is like NewFilter but panics if the query cannot be
// compiled. It is intended for queries fixed at compile time.
func MustFilter(query string, schema *tablefmt.Schema) *Filter {
	f, err := NewFilter(query, schema)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the normalized form of f's query.
func (f *Filter) String() string {
	return f.query.String()
}

// Match returns whether rec satisfies f.
func (f *Filter) Match(rec *tablefmt.Record) bool {
	return f.match(rec, f.query)
}

func (f *Filter) match(rec *tablefmt.Record, node kvql.Query) bool {
	switch node := node.(type) {
	case *kvql.QueryOp:
		switch node.Op {
		case kvql.OpNot:
			return !f.match(rec, node.Exprs[0])
		case kvql.OpAnd:
			for _, sub := range node.Exprs {
				if !f.match(rec, sub) {
					return false
				}
			}
			return true
		case kvql.OpOr:
			for _, sub := range node.Exprs {
				if f.match(rec, sub) {
					return true
				}
			}
			return false
		}
	case *kvql.QueryMatch:
		return node.Match(rec)
	}
	panic("unknown query node")
}
