// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvql

import (
	"unicode"
	"unicode/utf8"
)

// Tok is a single token in the kvql lexical syntax.
type Tok struct {
	// Kind specifies the category of this token. It is either 'w'
	// or 'q' for an unquoted or quoted word, respectively, 'A' or
	// 'O' for an unquoted AND or OR, an operator character, or 0
	// for the end-of-string token.
	Kind byte
	Off  int    // Byte offset of the beginning of this token
	Tok  string // Literal token contents; quoted words are unquoted
}

func isOp(ch rune) bool {
	return ch == '(' || ch == ')' || ch == ':'
}

// Tokenize splits q into a stream of tokens. Each token is either a
// quoted or unquoted word, or a single character operator. Quoted
// words are enclosed in double-quotes and keep any white space they
// contain, including leading and trailing spaces.
func Tokenize(q string) ([]Tok, error) {
	qOrig := q
	var toks []Tok
	for len(q) > 0 {
		off := len(qOrig) - len(q)
		switch {
		case isOp(rune(q[0])):
			toks = append(toks, Tok{q[0], off, q[:1]})
			q = q[1:]

		case q[0] == '-' || q[0] == '*':
			// "-" and "*" are operators only at the start
			// of a word so values like "Self-emp-inc" work.
			toks = append(toks, Tok{q[0], off, q[:1]})
			q = q[1:]

		case q[0] == '"':
			pos := 1
			for pos < len(q) && q[pos] != '"' {
				pos++
			}
			if pos == len(q) {
				return nil, &SyntaxError{Query: qOrig, Off: off, Msg: "missing end quote"}
			}
			toks = append(toks, Tok{'q', off, q[1:pos]})
			q = q[pos+1:]

		default:
			if n := isSpace(q); n > 0 {
				q = q[n:]
				continue
			}
			end := len(q)
			for i, r := range q {
				if unicode.IsSpace(r) || isOp(r) || r == '"' {
					end = i
					break
				}
			}
			kind := byte('w')
			switch q[:end] {
			case "AND":
				kind = 'A'
			case "OR":
				kind = 'O'
			}
			toks = append(toks, Tok{kind, off, q[:end]})
			q = q[end:]
		}
	}
	// An EOF token saves the parser bounds checks and gives the
	// end of the query a position.
	toks = append(toks, Tok{0, len(qOrig), ""})
	return toks, nil
}

func isSpace(q string) int {
	if q[0] == ' ' {
		return 1
	}
	r, size := utf8.DecodeRuneInString(q)
	if unicode.IsSpace(r) {
		return size
	}
	return 0
}
