// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histplot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const barWidth = 30

// WriteTable writes the bin counts of each series as a text table
// with a bar proportional to the largest bin of that series.
func WriteTable(w io.Writer, series ...Series) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Series", "Range", "Count", ""})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range series {
		max := 0
		for _, b := range s.Bins {
			if b.Count > max {
				max = b.Count
			}
		}
		for i, b := range s.Bins {
			close := ")"
			if i == len(s.Bins)-1 {
				close = "]"
			}
			bar := 0
			if max > 0 {
				bar = b.Count * barWidth / max
			}
			table.Append([]string{
				s.Label,
				fmt.Sprintf("[%.4g, %.4g%s", b.Min, b.Max, close),
				strconv.Itoa(b.Count),
				strings.Repeat("#", bar),
			})
		}
	}
	table.Render()
}
