// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	row1 = "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K\n"
	row2 = "38, Private, 215646, HS-grad, 9, Divorced, Handlers-cleaners, Not-in-family, White, Male, 0, 0, 40, United-States, >50K\n"
	row3 = "31, Private, 45781, Masters, 14, Never-married, Prof-specialty, Not-in-family, White, Female, 14084, 0, 50, United-States, >50K\n"
)

func writeInput(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestFilterRows(t *testing.T) {
	a := writeInput(t, "a.data", row1+row2)
	b := writeInput(t, "b.data", "truncated, row\n"+row3)

	core, logs := observer.New(zapcore.WarnLevel)
	var out bytes.Buffer
	err := filterRows(context.Background(), `salary:" >50K"`, []string{a, b}, &out, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, row2+row3, out.String())
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "want 15 fields, got 2")
	assert.Equal(t, b, logs.All()[0].ContextMap()["input"])
}

func TestFilterRowsQueries(t *testing.T) {
	in := writeInput(t, "adult.data", row1+row2+row3)
	check := func(query, want string) {
		t.Helper()
		var out bytes.Buffer
		err := filterRows(context.Background(), query, []string{in}, &out, zap.NewNop())
		require.NoError(t, err, query)
		assert.Equal(t, want, out.String(), query)
	}
	check(`*`, row1+row2+row3)
	check(`sex:" Female"`, row3)
	check(`-salary:" >50K"`, row1)
	check(`age:(39 31)`, row1+row3)
	check(`education:" Masters" OR workclass:" State-gov"`, row1+row3)
	check(`salary:" >50K" sex:" Male"`, row2)
}

func TestFilterRowsErrors(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	err := filterRows(ctx, `salary:`, nil, &out, zap.NewNop())
	assert.Error(t, err)

	err = filterRows(ctx, `height:6`, nil, &out, zap.NewNop())
	assert.ErrorContains(t, err, `unknown column "height"`)

	err = filterRows(ctx, `*`, []string{filepath.Join(t.TempDir(), "missing")}, &out, zap.NewNop())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
