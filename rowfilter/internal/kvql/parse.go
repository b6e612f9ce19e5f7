// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kvql parses row queries: boolean combinations of
// column:value tests over the columns of a table schema.
//
// Grammar:
//
//	query  = and {"OR" and} .
//	and    = term {["AND"] term} .
//	term   = "-" term
//	       | "*"
//	       | "(" query ")"
//	       | column ":" values .
//	values = word | "(" word {word} ")" .
//	word   = [^ ():"]* | "\"" [^"]* "\"" .
package kvql

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dsexplore/agedist/tablefmt"
)

// SyntaxError reports a malformed query or a query naming a column
// the schema does not have.
type SyntaxError struct {
	Query string
	Off   int // Byte offset in Query
	Msg   string

	// Err is the underlying cause, such as a *tablefmt.ColumnError.
	Err error
}

func (e *SyntaxError) Error() string {
	col := utf8.RuneCountInString(e.Query[:e.Off])
	return fmt.Sprintf("bad query at column %d: %s\n\t%s\n\t%s^",
		col+1, e.Msg, e.Query, strings.Repeat(" ", col))
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses q into a Query tree. Every key must name a column of
// schema; an unknown key is a *SyntaxError positioned at the key.
func Parse(q string, schema *tablefmt.Schema) (Query, error) {
	toks, err := Tokenize(q)
	if err != nil {
		return nil, err
	}
	p := &parser{query: q, toks: toks, schema: schema}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != 0 {
		return nil, p.fail(t, "unexpected "+strconv.Quote(t.Tok))
	}
	return root, nil
}

// parser consumes toks, which always end with a Kind 0 token.
type parser struct {
	query  string
	toks   []Tok
	pos    int
	schema *tablefmt.Schema
}

func (p *parser) peek() Tok {
	return p.toks[p.pos]
}

func (p *parser) next() Tok {
	t := p.toks[p.pos]
	if t.Kind != 0 {
		p.pos++
	}
	return t
}

func (p *parser) fail(at Tok, msg string) *SyntaxError {
	return &SyntaxError{Query: p.query, Off: at.Off, Msg: msg}
}

func isWord(t Tok) bool {
	return t.Kind == 'w' || t.Kind == 'q'
}

func startsTerm(t Tok) bool {
	return isWord(t) || t.Kind == '(' || t.Kind == '-' || t.Kind == '*'
}

// join returns the single term as is and wraps several in op.
func join(op Op, terms []Query) Query {
	if len(terms) == 1 {
		return terms[0]
	}
	return &QueryOp{op, terms}
}

func (p *parser) or() (Query, error) {
	var terms []Query
	for {
		q, err := p.and()
		if err != nil {
			return nil, err
		}
		terms = append(terms, q)
		if p.peek().Kind != 'O' {
			return join(OpOr, terms), nil
		}
		p.next()
	}
}

func (p *parser) and() (Query, error) {
	var terms []Query
	for {
		t := p.peek()
		switch {
		case startsTerm(t):
			q, err := p.term()
			if err != nil {
				return nil, err
			}
			terms = append(terms, q)
			continue
		case t.Kind == 'A' && len(terms) > 0:
			p.next()
			if !startsTerm(p.peek()) {
				return nil, p.fail(p.peek(), "nothing to match")
			}
			continue
		case t.Kind == 'A' || t.Kind == 'O' || t.Kind == ')' || t.Kind == 0:
		default:
			return nil, p.fail(t, "unexpected "+strconv.Quote(t.Tok))
		}
		if len(terms) == 0 {
			return nil, p.fail(t, "nothing to match")
		}
		return join(OpAnd, terms), nil
	}
}

func (p *parser) term() (Query, error) {
	t := p.next()
	switch t.Kind {
	case '-':
		q, err := p.term()
		if err != nil {
			return nil, err
		}
		return &QueryOp{OpNot, []Query{q}}, nil
	case '*':
		return &QueryOp{OpAnd, nil}, nil
	case '(':
		q, err := p.or()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != ')' {
			return nil, p.fail(p.peek(), `missing ")"`)
		}
		p.next()
		return q, nil
	}
	if !isWord(t) {
		return nil, p.fail(t, "expected column:value or subexpression")
	}
	if p.peek().Kind != ':' {
		return nil, p.fail(t, "expected key:value")
	}
	p.next()
	return p.values(t)
}

// values parses the right-hand side of key:... and resolves key.
func (p *parser) values(key Tok) (Query, error) {
	var words []string
	switch v := p.next(); {
	case isWord(v):
		words = append(words, v.Tok)
	case v.Kind == '(':
		for isWord(p.peek()) {
			words = append(words, p.next().Tok)
		}
		end := p.peek()
		if end.Kind != ')' {
			return nil, p.fail(end, "expected value")
		}
		if len(words) == 0 {
			return nil, p.fail(end, "nothing to match")
		}
		p.next()
	default:
		return nil, p.fail(v, "expected value")
	}

	field, err := tablefmt.NewExtractor(p.schema, key.Tok)
	if err != nil {
		e := p.fail(key, err.Error())
		e.Err = err
		return nil, e
	}
	terms := make([]Query, len(words))
	for i, w := range words {
		terms[i] = &QueryMatch{Off: key.Off, Key: key.Tok, Value: w, field: field}
	}
	return join(OpOr, terms), nil
}
