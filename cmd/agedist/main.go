// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command agedist compares the age distributions of two salary
// groups of the UCI adult census data.
//
// It loads the data set, draws overlaid histograms of the population
// and of the two groups onto one figure, and runs a two-sided
// Mann-Whitney U test of the ">50K" group against the "<=50K" group.
// The statistic and its p-value are printed to stdout:
//
//	U-Statistic:  <u>
//	p-value:  <p>
//
// Run without arguments it fetches the data from the UCI archive and
// writes age_distribution.png. Every setting can be changed with a
// YAML file given by -config; flags override the file.
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
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/dsexplore/agedist/config"
	"github.com/dsexplore/agedist/dataset"
	"github.com/dsexplore/agedist/histplot"
	"github.com/dsexplore/agedist/ranktest"
	"github.com/dsexplore/agedist/rowfilter"
	"github.com/dsexplore/agedist/tablefmt"
)

var (
	configPath  string
	flagSource  string
	flagBins    int
	flagOut     string
	flagExact   bool
	flagSummary bool
	flagLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "agedist",
	Short: "Compare age distributions of two salary groups",
	Long: `agedist loads the UCI adult census data, draws the age distribution of
the whole population and of the "<=50K" and ">50K" salary groups as
overlaid histograms, and tests whether the two groups' ages differ with a
two-sided Mann-Whitney U test.

Rows whose salary is neither label are drawn in the population histogram
but left out of both groups.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "read settings from YAML `file`")
	f.StringVar(&flagSource, "source", "", "data `path or URL` (default the UCI adult data)")
	f.IntVar(&flagBins, "bins", 0, "number of histogram bins (default 15)")
	f.StringVar(&flagOut, "out", "", "write the figure to `file`; the extension selects the format")
	f.BoolVar(&flagExact, "exact", false, "use the exact U distribution for small samples")
	f.BoolVar(&flagSummary, "summary", false, "also print group summaries and bin counts")
	f.StringVar(&flagLevel, "log-level", "", "log `level` (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "agedist:", err)
		os.Exit(1)
	}
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return run(ctx, cfg, runOptions{summary: flagSummary}, cmd.OutOrStdout(), logger)
}

// newLogger returns a production logger writing JSON lines to stderr
// at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Sampling = nil
	return zc.Build()
}

// loadConfig merges the config file, if any, with the flags set on
// the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
	if flags.Changed("bins") {
		cfg.Chart.Bins = flagBins
	}
	if flags.Changed("out") {
		cfg.Output.Path = flagOut
	}
	if flags.Changed("exact") && flagExact {
		cfg.Method = ranktest.Exact.String()
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type runOptions struct {
	// summary adds distribution and bin tables to the output.
	summary bool
}

func run(ctx context.Context, cfg *config.Config, opts runOptions, stdout io.Writer, log *zap.Logger) error {
	schema := tablefmt.AdultSchema
	below, err := rowfilter.NewFilter(cfg.Below.Query, schema)
	if err != nil {
		return errors.Wrapf(err, "group %q", cfg.Below.Label)
	}
	above, err := rowfilter.NewFilter(cfg.Above.Query, schema)
	if err != nil {
		return errors.Wrapf(err, "group %q", cfg.Above.Label)
	}
	method, err := ranktest.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}

	log.Info("Loading dataset", zap.String("source", cfg.Source))
	ds, err := dataset.Load(ctx, nil, cfg.Source, schema)
	if err != nil {
		return err
	}
	lo, hi, err := dataset.Partition(ds, below, above)
	if err != nil {
		return err
	}
	log.Info("Dataset loaded",
		zap.Int("rows", ds.Len()),
		zap.Int(cfg.Below.Label, lo.Len()),
		zap.Int(cfg.Above.Label, hi.Len()))
	if excluded := ds.Len() - lo.Len() - hi.Len(); excluded > 0 {
		log.Warn("Rows in neither group", zap.Int("rows", excluded))
	}

	fig := histplot.NewFigure()
	fig.SetPalette(histplot.Palettes[cfg.Chart.Palette])
	layers := []struct {
		tbl   *dataset.Dataset
		label string
	}{
		{ds, cfg.Population},
		{lo, cfg.Below.Label},
		{hi, cfg.Above.Label},
	}
	for _, l := range layers {
		err := fig.Histogram(l.tbl, cfg.Column, cfg.Chart.Title, cfg.Chart.XLabel, cfg.Chart.YLabel,
			l.label, histplot.Bins(cfg.Chart.Bins))
		if err != nil {
			return err
		}
	}
	w, h := vg.Length(cfg.Output.Width)*vg.Inch, vg.Length(cfg.Output.Height)*vg.Inch
	if err := fig.Save(cfg.Output.Path, w, h); err != nil {
		return errors.Wrap(err, "saving figure")
	}
	log.Info("Figure written", zap.String("path", cfg.Output.Path))

	xa, err := hi.Floats(cfg.Column)
	if err != nil {
		return err
	}
	xb, err := lo.Floats(cfg.Column)
	if err != nil {
		return err
	}
	if method == ranktest.Asymptotic {
		if _, _, err := ranktest.Compare(stdout, xa, xb); err != nil {
			return errors.Wrap(err, "comparing groups")
		}
	} else {
		r, err := ranktest.MannWhitneyU(xa, xb, method)
		if err != nil {
			return errors.Wrap(err, "comparing groups")
		}
		if err := ranktest.Print(stdout, r); err != nil {
			return err
		}
	}

	if opts.summary {
		var named []ranktest.Named
		for _, l := range layers {
			xs, err := l.tbl.Floats(cfg.Column)
			if err != nil {
				return err
			}
			d, err := ranktest.NewDistribution(xs)
			if err != nil {
				return errors.Wrapf(err, "summarizing %q", l.label)
			}
			named = append(named, ranktest.Named{Name: l.label, Dist: d})
		}
		fmt.Fprintln(stdout)
		ranktest.WriteSummary(stdout, named...)
		fmt.Fprintln(stdout)
		histplot.WriteTable(stdout, fig.Series()...)
	}
	return nil
}
