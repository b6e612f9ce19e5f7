// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ranktest

import (
	"io"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	mstats "github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
)

// Distribution summarizes one sample.
type Distribution struct {
	// Values is the sample in increasing order.
	Values []float64

	// Center is the median.
	Center float64

	Mean, StdDev float64
	Q1, Q3       float64
	Min, Max     float64
}

// NewDistribution summarizes values, which it does not modify.
func NewDistribution(values []float64) (*Distribution, error) {
	if len(values) == 0 {
		return nil, ErrSampleSize
	}
	samp := stats.Sample{Xs: append([]float64(nil), values...)}
	// Speed up order statistics.
	samp.Sort()

	data := mstats.Float64Data(samp.Xs)
	mean, err := mstats.Mean(data)
	if err != nil {
		return nil, err
	}
	var sd float64
	if len(values) > 1 {
		if sd, err = mstats.StandardDeviationSample(data); err != nil {
			return nil, err
		}
	}
	return &Distribution{
		Values: samp.Xs,
		Center: samp.Quantile(0.5),
		Mean:   mean,
		StdDev: sd,
		Q1:     samp.Quantile(0.25),
		Q3:     samp.Quantile(0.75),
		Min:    samp.Xs[0],
		Max:    samp.Xs[len(samp.Xs)-1],
	}, nil
}

// Comparison is the result of comparing two distributions.
type Comparison struct {
	*Result

	// Delta is the difference of the medians, d2 minus d.
	Delta float64
}

// Compare tests d against d2 with the given method.
func (d *Distribution) Compare(d2 *Distribution, method Method) (Comparison, error) {
	r, err := MannWhitneyU(d.Values, d2.Values, method)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Result: r, Delta: d2.Center - d.Center}, nil
}

// Named pairs a distribution with the label it is reported under.
type Named struct {
	Name string
	Dist *Distribution
}

// WriteSummary writes a table with one row per distribution.
func WriteSummary(w io.Writer, dists ...Named) {
	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Series", "N", "Mean", "Std Dev", "Min", "Q1", "Median", "Q3", "Max"})
	for _, nd := range dists {
		d := nd.Dist
		table.Append([]string{nd.Name, strconv.Itoa(len(d.Values)),
			f(d.Mean), f(d.StdDev), f(d.Min), f(d.Q1), f(d.Center), f(d.Q3), f(d.Max)})
	}
	table.Render()
}
