// Package config holds run settings that are not part of a netlist:
// default terminations, the fallback sweep, worker count and the check
// tolerance. Settings are read from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-cascade/internal/consts"
	"github.com/edp1096/toy-cascade/pkg/analysis"
)

type SweepConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Count int     `yaml:"count"`
}

type Config struct {
	SourceImpedance float64     `yaml:"source_impedance"`
	LoadImpedance   float64     `yaml:"load_impedance"`
	Sweep           SweepConfig `yaml:"sweep"`
	Workers         int         `yaml:"workers"` // 0 uses GOMAXPROCS
	CheckTolerance  float64     `yaml:"check_tolerance"`
}

func Default() *Config {
	return &Config{
		SourceImpedance: consts.SourceImpedance,
		LoadImpedance:   consts.LoadImpedance,
		Sweep: SweepConfig{
			Start: consts.SweepStart,
			End:   consts.SweepEnd,
			Count: consts.SweepCount,
		},
		CheckTolerance: consts.CheckTolerance,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, so omitted keys keep their default
// and explicit values, zero included, are kept. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case !finite(c.SourceImpedance) || c.SourceImpedance < 0:
		return fmt.Errorf("source_impedance %g must be non-negative", c.SourceImpedance)
	case !finite(c.LoadImpedance) || c.LoadImpedance < 0:
		return fmt.Errorf("load_impedance %g must be non-negative", c.LoadImpedance)
	case c.Workers < 0:
		return fmt.Errorf("workers %d must not be negative", c.Workers)
	case !finite(c.CheckTolerance) || c.CheckTolerance <= 0:
		return fmt.Errorf("check_tolerance %g must be positive", c.CheckTolerance)
	}

	return c.DefaultSweep().Validate()
}

// DefaultSweep is the linear sweep used when a netlist gives no bounds.
func (c *Config) DefaultSweep() analysis.Sweep {
	return analysis.Sweep{
		Start: c.Sweep.Start,
		End:   c.Sweep.End,
		Count: c.Sweep.Count,
		Scale: analysis.Linear,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
