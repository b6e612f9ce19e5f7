// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package histplot draws frequency histograms of numeric table
// columns onto a shared figure, so several distributions can be
// overlaid and compared.
package histplot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// A Table provides the numeric values of a named column.
type Table interface {
	Floats(column string) ([]float64, error)
}

// Series records one histogram drawn on a Figure.
type Series struct {
	Label  string
	Column string
	*Binned
}

// A Figure is a drawing surface that accumulates histograms. Each
// call to Histogram adds a layer on top of the previous ones.
type Figure struct {
	plot    *plot.Plot
	palette []color.Color
	series  []Series
}

// NewFigure returns an empty figure with its legend in the upper
// right corner.
func NewFigure() *Figure {
	p := plot.New()
	p.Legend.Top = true
	return &Figure{plot: p, palette: Set1_9}
}

// SetPalette sets the colors given to series drawn after the call.
func (f *Figure) SetPalette(pal []color.Color) {
	if len(pal) > 0 {
		f.palette = pal
	}
}

// An Option adjusts a single Histogram call.
type Option func(*options)

type options struct {
	bins int
}

// Bins sets the number of equal-width bins. It must be positive.
func Bins(n int) Option {
	return func(o *options) { o.bins = n }
}

// Histogram draws the distribution of column in tbl onto f and labels
// the figure with title and axis labels. The series is added to the
// legend under label.
func (f *Figure) Histogram(tbl Table, column, title, xLabel, yLabel, label string, opts ...Option) error {
	o := options{bins: DefaultBins}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bins <= 0 {
		return fmt.Errorf("histogram %q: bin count must be positive, got %d", label, o.bins)
	}
	xs, err := tbl.Floats(column)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", label, err)
	}
	binned, err := BinValues(xs, o.bins)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", label, err)
	}

	bins := make([]plotter.HistogramBin, len(binned.Bins))
	for i, b := range binned.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     binned.Width,
		FillColor: seriesColor(f.palette, len(f.series)),
		LineStyle: plotter.DefaultLineStyle,
	}

	f.plot.Title.Text = title
	f.plot.X.Label.Text = xLabel
	f.plot.Y.Label.Text = yLabel
	f.plot.Add(h)
	f.plot.Legend.Add(label, h)
	f.series = append(f.series, Series{Label: label, Column: column, Binned: binned})
	return nil
}

// Series returns the histograms drawn so far, in drawing order.
func (f *Figure) Series() []Series {
	return f.series
}

// Legend returns the legend labels, in drawing order.
func (f *Figure) Legend() []string {
	labels := make([]string, len(f.series))
	for i, s := range f.series {
		labels[i] = s.Label
	}
	return labels
}

// Title returns the figure title.
func (f *Figure) Title() string {
	return f.plot.Title.Text
}

// Save renders f to path. The image format is taken from the file
// extension, for example ".png", ".svg" or ".pdf".
func (f *Figure) Save(path string, width, height vg.Length) error {
	return f.plot.Save(width, height, path)
}

// WriteTo renders f in the given format ("png", "svg", ...) to w.
func (f *Figure) WriteTo(w io.Writer, format string, width, height vg.Length) error {
	wt, err := f.plot.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
