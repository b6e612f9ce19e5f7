// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tablefmt

import "fmt"

// An Extractor returns some field of a record.
type Extractor func(*Record) string

// NewExtractor returns a function that extracts the named column from
// records of the given schema. The key must name a column of schema.
func NewExtractor(schema *Schema, key string) (Extractor, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}
	i, ok := schema.Index(key)
	if !ok {
		return nil, &ColumnError{Name: key}
	}
	return func(rec *Record) string {
		return rec.Field(i)
	}, nil
}
