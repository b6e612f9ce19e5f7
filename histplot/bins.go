// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histplot

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// DefaultBins is the number of bins used when none is requested.
const DefaultBins = 15

// A Bin is one equal-width slice of a sample's range. A value x is in
// the bin if Min <= x < Max, except that the last bin also holds
// values equal to its Max.
type Bin struct {
	Min, Max float64
	Count    int
}

// Binned is a sample partitioned into equal-width bins.
type Binned struct {
	Min, Max float64
	Width    float64
	Bins     []Bin
	N        int
}

// BinValues partitions the range of xs into n equal-width bins and
// counts the values in each. A sample whose values are all equal is
// binned over [x-0.5, x+0.5] and an empty sample over [0, 1].
func BinValues(xs []float64, n int) (*Binned, error) {
	if n <= 0 {
		return nil, fmt.Errorf("bin count must be positive, got %d", n)
	}
	lo, hi := 0.0, 1.0
	if len(xs) > 0 {
		lo, hi = xs[0], xs[0]
	}
	for _, x := range xs {
		if x < lo {
			lo = x
		} else if x > hi {
			hi = x
		}
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	h := stats.NewLinearHist(lo, hi, n)
	for _, x := range xs {
		h.Add(x)
	}
	under, counts, over := h.Counts()
	// Only hi itself (or a value rounded up to it) overflows, and
	// the last bin is closed on the right.
	width := (hi - lo) / float64(n)
	out := &Binned{Min: lo, Max: hi, Width: width, Bins: make([]Bin, n), N: len(xs)}
	for i := range out.Bins {
		out.Bins[i] = Bin{
			Min:   lo + float64(i)*width,
			Max:   lo + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	out.Bins[0].Count += int(under)
	out.Bins[n-1].Count += int(over)
	out.Bins[n-1].Max = hi
	return out, nil
}
