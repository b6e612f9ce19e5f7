// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histplot

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

// columns is a Table backed by a map.
type columns map[string][]float64

func (c columns) Floats(name string) ([]float64, error) {
	xs, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return xs, nil
}

func TestBinValues(t *testing.T) {
	check := func(xs []float64, n int, want ...int) {
		t.Helper()
		b, err := BinValues(xs, n)
		require.NoError(t, err)
		require.Len(t, b.Bins, n)
		got := make([]int, n)
		total := 0
		for i, bin := range b.Bins {
			got[i] = bin.Count
			total += bin.Count
		}
		assert.Equal(t, want, got, "bins of %v", xs)
		assert.Equal(t, len(xs), total)
		assert.Equal(t, b.Max, b.Bins[n-1].Max)
	}
	check([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5, 2, 2, 2, 2, 3)
	// The maximum lands in the last bin.
	check([]float64{17, 90}, 2, 1, 1)
	check([]float64{1, 1, 1, 2}, 1, 4)
	// A constant sample is centered in [x-0.5, x+0.5].
	check([]float64{40, 40, 40}, 2, 0, 3)
	check([]float64{40, 40, 40}, 3, 0, 3, 0)

	b, err := BinValues([]float64{0, 30}, 3)
	require.NoError(t, err)
	assert.Equal(t, 10.0, b.Width)
	assert.Equal(t, Bin{Min: 10, Max: 20, Count: 0}, b.Bins[1])

	// An empty sample spans [0, 1] with nothing in it.
	b, err = BinValues(nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, b.N)
	assert.Equal(t, 0.0, b.Min)
	assert.Equal(t, 1.0, b.Max)
	for _, bin := range b.Bins {
		assert.Zero(t, bin.Count)
	}
	_, err = BinValues([]float64{1}, 0)
	assert.Error(t, err)
}

func TestFigureOverlay(t *testing.T) {
	tbl := columns{"age": {25, 38, 28, 44, 18, 34, 29, 63, 24, 55, 65, 36, 26, 58, 48}}
	low := columns{"age": {25, 38, 28, 18, 34, 29, 63, 24, 36, 26}}
	high := columns{"age": {44, 55, 65, 58, 48}}

	f := NewFigure()
	const title = "Age Distribution: US Population"
	for i, s := range []struct {
		tbl   Table
		label string
	}{{tbl, "Age"}, {low, "<=$50K"}, {high, ">$50K"}} {
		require.NoError(t, f.Histogram(s.tbl, "age", title, "Age (years)", "Frequency", s.label))
		// Exactly one legend entry per call.
		assert.Len(t, f.Legend(), i+1)
	}
	assert.Equal(t, []string{"Age", "<=$50K", ">$50K"}, f.Legend())
	assert.Equal(t, title, f.Title())
	for _, s := range f.Series() {
		assert.Len(t, s.Bins, DefaultBins)
	}
	assert.Equal(t, 15, f.Series()[0].N)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf, "png", 6*vg.Inch, 4*vg.Inch))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	path := filepath.Join(t.TempDir(), "ages.svg")
	require.NoError(t, f.Save(path, 6*vg.Inch, 4*vg.Inch))
	svg, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	var tbuf bytes.Buffer
	WriteTable(&tbuf, f.Series()...)
	assert.Contains(t, tbuf.String(), ">$50K")
	assert.Contains(t, tbuf.String(), "[63.6, 65]")
}

func TestFigureErrors(t *testing.T) {
	tbl := columns{"age": {1, 2, 3}}
	f := NewFigure()
	assert.Error(t, f.Histogram(tbl, "height", "t", "x", "y", "Height"))
	assert.Error(t, f.Histogram(tbl, "age", "t", "x", "y", "Age", Bins(0)))
	assert.Error(t, f.Histogram(tbl, "age", "t", "x", "y", "Age", Bins(-3)))
	// Failed calls leave no trace on the figure.
	assert.Empty(t, f.Legend())

	require.NoError(t, f.Histogram(tbl, "age", "t", "x", "y", "Age", Bins(2)))
	assert.Len(t, f.Series()[0].Bins, 2)
}

func TestFigureEmptyTable(t *testing.T) {
	f := NewFigure()
	require.NoError(t, f.Histogram(columns{"age": {25, 38, 44}}, "age", "t", "x", "y", "Age"))
	require.NoError(t, f.Histogram(columns{"age": {}}, "age", "t", "x", "y", ">$50K"))
	assert.Equal(t, []string{"Age", ">$50K"}, f.Legend())

	empty := f.Series()[1]
	require.Len(t, empty.Bins, DefaultBins)
	for _, bin := range empty.Bins {
		assert.Zero(t, bin.Count)
	}

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf, "svg", 4*vg.Inch, 3*vg.Inch))
	assert.Contains(t, buf.String(), "<svg")
}

func TestPalette(t *testing.T) {
	f := NewFigure()
	f.SetPalette(Palettes["dark2"])
	f.SetPalette(nil)
	assert.Equal(t, color.NRGBA{27, 158, 119, overlayAlpha}, seriesColor(f.palette, 0))
	// Colors wrap around.
	assert.Equal(t, seriesColor(f.palette, 1), seriesColor(f.palette, len(Dark2_8)+1))
}
