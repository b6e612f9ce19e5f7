// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvql

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dsexplore/agedist/tablefmt"
)

// Query is a node in the query tree. It can either be a QueryOp or a
// QueryMatch.
type Query interface {
	isQuery()
	String() string
}

// QueryMatch is a leaf in a Query tree that tests one column of a
// record for an exact value.
type QueryMatch struct {
	Off   int // Byte offset of the key in the original query.
	Key   string
	Value string

	field tablefmt.Extractor
}

func (q *QueryMatch) isQuery() {}
func (q *QueryMatch) String() string {
	return quote(q.Key) + ":" + quote(q.Value)
}

func quote(s string) string {
	if s == "" || s == "AND" || s == "OR" {
		return strconv.Quote(s)
	}
	for i, r := range s {
		if unicode.IsSpace(r) || r == '"' || isOp(r) || (i == 0 && (r == '-' || r == '*')) {
			return strconv.Quote(s)
		}
	}
	return s
}

// Match reports whether the q.Key column of rec equals q.Value byte
// for byte.
func (q *QueryMatch) Match(rec *tablefmt.Record) bool {
	return q.field(rec) == q.Value
}

// QueryOp is a boolean operator in the Query tree. OpNot must have
// exactly one child node. OpAnd and OpOr may have zero or more child
// nodes.
type QueryOp struct {
	Op    Op
	Exprs []Query
}

func (q *QueryOp) isQuery() {}
func (q *QueryOp) String() string {
	var op string
	switch q.Op {
	case OpNot:
		return fmt.Sprintf("-%s", q.Exprs[0])
	case OpAnd:
		if len(q.Exprs) == 0 {
			return "*"
		}
		op = " AND "
	case OpOr:
		op = " OR "
	}
	var buf strings.Builder
	buf.WriteByte('(')
	for i, e := range q.Exprs {
		if i > 0 {
			buf.WriteString(op)
		}
		buf.WriteString(e.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// Op specifies a type of boolean operator.
type Op int

const (
	OpAnd Op = 1 + iota
	OpOr
	OpNot
)
