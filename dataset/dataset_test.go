// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsexplore/agedist/rowfilter"
	"github.com/dsexplore/agedist/tablefmt"
)

const adultRows = `39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K
50, Self-emp-not-inc, 83311, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 0, 0, 13, United-States, <=50K
38, Private, 215646, HS-grad, 9, Divorced, Handlers-cleaners, Not-in-family, White, Male, 0, 0, 40, United-States, >50K
53, Private, 234721, 11th, 7, Married-civ-spouse, Handlers-cleaners, Husband, Black, Male, 0, 0, 40, United-States, ?

`

func load(t *testing.T, data string) *Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adult.data")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	ds, err := Load(context.Background(), nil, path, tablefmt.AdultSchema)
	require.NoError(t, err)
	return ds
}

func TestLoad(t *testing.T) {
	ds := load(t, adultRows)
	assert.Equal(t, 4, ds.Len())

	ages, err := ds.Floats("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{39, 50, 38, 53}, ages)

	// Numeric fields are parsed despite their leading space.
	wgt, err := ds.Floats("fnlwgt")
	require.NoError(t, err)
	assert.Equal(t, 77516.0, wgt[0])

	salary, err := ds.Column("salary")
	require.NoError(t, err)
	assert.Equal(t, []string{" <=50K", " <=50K", " >50K", " ?"}, salary)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(adultRows))
	}))
	defer srv.Close()

	ds, err := Load(context.Background(), srv.Client(), srv.URL+"/adult.data", tablefmt.AdultSchema)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
}

func TestLoadFailures(t *testing.T) {
	ctx := context.Background()
	t.Run("arity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.data")
		require.NoError(t, os.WriteFile(path, []byte("39, State-gov\n"), 0o644))
		_, err := Load(ctx, nil, path, tablefmt.AdultSchema)
		var serr *tablefmt.SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 1, serr.Line)
	})
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		_, err := Load(ctx, srv.Client(), srv.URL, tablefmt.AdultSchema)
		assert.Error(t, err)
	})
}

func TestFloatsErrors(t *testing.T) {
	ds := load(t, adultRows)

	_, err := ds.Floats("height")
	var cerr *tablefmt.ColumnError
	require.ErrorAs(t, err, &cerr)

	_, err = ds.Floats("salary")
	assert.Error(t, err)

	bad := strings.Replace(adultRows, "38, Private", "?, Private", 1)
	ds = load(t, bad)
	_, err = ds.Floats("age")
	var verr *ValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, verr.Line)
	assert.Equal(t, "?", verr.Value)
}

func TestPartition(t *testing.T) {
	ds := load(t, adultRows)
	schema := tablefmt.AdultSchema
	low := rowfilter.MustFilter(`salary:" <=50K"`, schema)
	high := rowfilter.MustFilter(`salary:" >50K"`, schema)

	a, b, err := Partition(ds, low, high)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())

	ages, err := a.Floats("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{39, 50}, ages)
	ages, err = b.Floats("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{38}, ages)

	// The malformed row stays in the population.
	all, err := ds.Floats("age")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// Empty views are valid.
	none := ds.Select(rowfilter.MustFilter(`salary:nobody`, schema))
	assert.Equal(t, 0, none.Len())
	ages, err = none.Floats("age")
	require.NoError(t, err)
	assert.Empty(t, ages)
	_, err = none.Floats("height")
	assert.Error(t, err)

	_, _, err = Partition(ds, low, rowfilter.MustFilter(`age:39`, schema))
	assert.Error(t, err)
}
