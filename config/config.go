// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of an age distribution run.
package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dsexplore/agedist/histplot"
	"github.com/dsexplore/agedist/ranktest"
)

// AdultURL is the UCI location of the adult census extract.
const AdultURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/adult/adult.data"

// Config holds all settings of a run.
type Config struct {
	// Source is a local path or http(s) URL of the data.
	Source string `yaml:"source"`

	// Column is the numeric column whose distribution is drawn
	// and compared.
	Column string `yaml:"column"`

	// Population labels the histogram of every row.
	Population string `yaml:"population_label"`

	// Below and Above select the two compared subgroups. The test
	// is run as Above against Below.
	Below Group `yaml:"below"`
	Above Group `yaml:"above"`

	Chart  ChartConfig  `yaml:"chart"`
	Output OutputConfig `yaml:"output"`

	// Method is "asymptotic" or "exact".
	Method string `yaml:"method"`

	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

// Group is a labeled subgroup query.
type Group struct {
	Label string `yaml:"label"`
	Query string `yaml:"query"`
}

// ChartConfig configures the histograms.
type ChartConfig struct {
	Title  string `yaml:"title"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
	Bins   int    `yaml:"bins"`

	// Palette names a color set of histplot.Palettes.
	Palette string `yaml:"palette"`
}

// OutputConfig configures the rendered figure.
type OutputConfig struct {
	// Path is the image file; its extension picks the format.
	Path string `yaml:"path"`
	// Width and Height are in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Default returns the settings of the census age comparison.
func Default() *Config {
	return &Config{
		Source:     AdultURL,
		Column:     "age",
		Population: "Age",
		Below:      Group{Label: "<=$50K", Query: `salary:" <=50K"`},
		Above:      Group{Label: ">$50K", Query: `salary:" >50K"`},
		Chart: ChartConfig{
			Title:   "Age Distribution: US Population",
			XLabel:  "Age (years)",
			YLabel:  "Frequency",
			Bins:    15,
			Palette: "set1",
		},
		Output:   OutputConfig{Path: "age_distribution.png", Width: 8, Height: 6},
		Method:   "asymptotic",
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks that cfg describes a runnable analysis.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Source == "":
		return errors.New("source is empty")
	case cfg.Column == "":
		return errors.New("column is empty")
	case cfg.Below.Query == "" || cfg.Above.Query == "":
		return errors.New("both subgroup queries are required")
	case cfg.Chart.Bins <= 0:
		return errors.Errorf("bins must be positive, got %d", cfg.Chart.Bins)
	case cfg.Output.Width <= 0 || cfg.Output.Height <= 0:
		return errors.Errorf("output size must be positive, got %gx%g", cfg.Output.Width, cfg.Output.Height)
	}
	if _, ok := histplot.Palettes[cfg.Chart.Palette]; !ok {
		return errors.Errorf("unknown palette %q", cfg.Chart.Palette)
	}
	if _, err := ranktest.ParseMethod(cfg.Method); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}
