// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csvfilter reads census records from input files, filters
// them, and writes the matching records to stdout. If no inputs are
// provided, it reads from stdin. Inputs may also be http(s) URLs.
//
// It supports the following query syntax:
//
//	key:value     - Test if column key equals value. Key and value can be quoted.
//	key:(x y ...) - Test if column key equals any of x, y, etc.
//	x y ...       - Test if x, y, etc. are all true
//	x AND y       - Same as x y
//	x OR y        - Test if x or y are true
//	-x            - Negate x
//	(...)         - Subexpression
//	*             - Match everything
//
// Keys are the column names of the adult census data: age,
// workclass, fnlwgt, education, education-num, marital-status,
// occupation, relationship, race, sex, capital-gain, capital-loss,
// hours-per-week, native-country, and salary.
//
// Values are compared exactly, including the leading space that
// follows each comma in the data. For example, the query
//
//	salary:" >50K" sex:(" Female")
//
// matches women earning more than $50K a year.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsexplore/agedist/rowfilter"
	"github.com/dsexplore/agedist/tablefmt"
)

var rootCmd = &cobra.Command{
	Use:   "csvfilter query [inputs...]",
	Short: "Filter census records by a boolean column query",
	Long: `csvfilter reads census records from input files, filters them, and
writes the matching records to stdout. If no inputs are provided, it reads
from stdin. Malformed records are reported on stderr and skipped.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
		logger, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return filterRows(ctx, args[0], args[1:], cmd.OutOrStdout(), logger)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csvfilter:", err)
		os.Exit(1)
	}
}

// filterRows copies the records of inputs matching query to out.
func filterRows(ctx context.Context, query string, inputs []string, out io.Writer, log *zap.Logger) error {
	filter, err := rowfilter.NewFilter(query, tablefmt.AdultSchema)
	if err != nil {
		return err
	}

	writer := tablefmt.NewWriter(out)
	files := tablefmt.Sources{Paths: inputs, Schema: tablefmt.AdultSchema, AllowStdin: true}
	defer files.Close()
	for files.Scan(ctx) {
		rec, err := files.Record()
		if err != nil {
			// Non-fatal record parse error. Warn
			// but keep going.
			log.Warn("Skipping record", zap.String("input", files.Path()), zap.Error(err))
			continue
		}
		if !filter.Match(rec) {
			continue
		}
		if err := writer.Write(rec); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	return writer.Flush()
}
