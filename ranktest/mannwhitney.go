// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ranktest compares two independent samples with the
// Mann-Whitney U rank-sum test and summarizes their distributions.
package ranktest

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrSampleSize is returned when a sample is empty.
	ErrSampleSize = stats.ErrSampleSize

	// ErrSamplesEqual is returned when every value of both samples
	// is tied, so the ranks carry no information.
	ErrSamplesEqual = stats.ErrSamplesEqual
)

// Method selects how the significance level is computed.
type Method int

const (
	// Asymptotic uses the normal approximation of the U
	// distribution with tie and continuity correction at any
	// sample size.
	Asymptotic Method = iota

	// Exact uses the exact U distribution for small samples and
	// falls back to the normal approximation for large ones.
	Exact
)

func (m Method) String() string {
	switch m {
	case Asymptotic:
		return "asymptotic"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses the String form of a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "asymptotic", "":
		return Asymptotic, nil
	case "exact":
		return Exact, nil
	}
	return 0, fmt.Errorf("unknown method %q", s)
}

// Result is the outcome of a two-sided Mann-Whitney U test.
type Result struct {
	N1, N2 int

	// U is the U statistic of the first sample: the number of
	// pairs (a, b) with a from the first sample, b from the
	// second, and a > b, with ties counting one half.
	U float64

	// P is the two-sided significance level.
	P float64

	Method Method
}

// MannWhitneyU tests whether x1 and x2 are drawn from the same
// distribution against the alternative that their locations differ.
// Neither sample is modified.
func MannWhitneyU(x1, x2 []float64, method Method) (*Result, error) {
	if method == Exact {
		r, err := stats.MannWhitneyUTest(x1, x2, stats.LocationDiffers)
		if err != nil {
			return nil, err
		}
		return &Result{N1: r.N1, N2: r.N2, U: r.U, P: r.P, Method: Exact}, nil
	}

	n1, n2 := len(x1), len(x2)
	if n1 == 0 || n2 == 0 {
		return nil, ErrSampleSize
	}
	r1, ties := rankSum(x1, x2)
	if len(ties) == 1 {
		return nil, ErrSamplesEqual
	}
	u1 := r1 - float64(n1*(n1+1))/2

	var t float64
	for _, k := range ties {
		t += float64(k*k*k - k)
	}
	n := float64(n1 + n2)
	sigma := math.Sqrt(float64(n1*n2) * ((n + 1) - t/(n*(n-1))) / 12)
	if !(sigma > 0) {
		return nil, ErrSamplesEqual
	}

	// Continuity correction toward the mean. Using |numer| keeps
	// P identical when the samples are swapped.
	numer := math.Abs(u1 - float64(n1*n2)/2)
	numer = math.Max(numer-0.5, 0)
	p := 2 * stats.StdNormal.CDF(-numer/sigma)

	return &Result{N1: n1, N2: n2, U: u1, P: math.Min(p, 1), Method: Asymptotic}, nil
}

// rankSum returns the sum of the midranks of x1's values in the
// combined sample and the sizes of each group of tied values in the
// combined sample, in increasing value order.
func rankSum(x1, x2 []float64) (r1 float64, ties []int) {
	type obs struct {
		v     float64
		first bool
	}
	merged := make([]obs, 0, len(x1)+len(x2))
	for _, v := range x1 {
		merged = append(merged, obs{v, true})
	}
	for _, v := range x2 {
		merged = append(merged, obs{v, false})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].v < merged[j].v })

	for i := 0; i < len(merged); {
		start, v := i, merged[i].v
		nx1 := 0
		// Consume the run tied with v.
		for ; i < len(merged) && merged[i].v == v; i++ {
			if merged[i].first {
				nx1++
			}
		}
		// Ranks start+1 .. i share their average.
		rank := float64(start+1+i) / 2
		r1 += rank * float64(nx1)
		ties = append(ties, i-start)
	}
	return r1, ties
}

// Compare runs the asymptotic test on x1 and x2, prints the statistic
// and significance level to w, and returns them.
func Compare(w io.Writer, x1, x2 []float64) (u, p float64, err error) {
	r, err := MannWhitneyU(x1, x2, Asymptotic)
	if err != nil {
		return 0, 0, err
	}
	if err := Print(w, r); err != nil {
		return 0, 0, err
	}
	return r.U, r.P, nil
}

// Print writes the two result lines for r. U is written in plain
// decimal notation at any magnitude.
func Print(w io.Writer, r *Result) error {
	u := strconv.FormatFloat(r.U, 'f', -1, 64)
	if _, err := fmt.Fprintln(w, "U-Statistic: ", u); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "p-value: ", r.P)
	return err
}
