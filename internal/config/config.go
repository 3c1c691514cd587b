// Package config loads simulator settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerev/internal/uth"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete configuration file
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Rules      *RulesConfig      `hcl:"rules,block"`
	Paytable   *PaytableConfig   `hcl:"paytable,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// RulesConfig sets the stakes in chips. The blind defaults to the ante.
type RulesConfig struct {
	Ante  float64  `hcl:"ante,optional"`
	Blind *float64 `hcl:"blind,optional"`
}

// PaytableConfig sets the blind bet multipliers. Omitted entries keep the
// standard table; an explicit 0 pushes the blind for that hand.
type PaytableConfig struct {
	RoyalFlush    *float64 `hcl:"royal_flush,optional"`
	StraightFlush *float64 `hcl:"straight_flush,optional"`
	FourOfAKind   *float64 `hcl:"four_of_a_kind,optional"`
	FullHouse     *float64 `hcl:"full_house,optional"`
	Flush         *float64 `hcl:"flush,optional"`
	Straight      *float64 `hcl:"straight,optional"`
}

// SimulationConfig controls how runs are executed
type SimulationConfig struct {
	Iterations       int      `hcl:"iterations,optional"`
	Seed             int64    `hcl:"seed,optional"`
	Workers          int      `hcl:"workers,optional"`
	Lines            []string `hcl:"lines,optional"`
	ProgressInterval string   `hcl:"progress_interval,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	p := uth.DefaultPaytable()
	return &Config{
		LogLevel: "info",
		Rules:    &RulesConfig{Ante: 1, Blind: ptr(1.0)},
		Paytable: &PaytableConfig{
			RoyalFlush:    ptr(p.RoyalFlush),
			StraightFlush: ptr(p.StraightFlush),
			FourOfAKind:   ptr(p.FourOfAKind),
			FullHouse:     ptr(p.FullHouse),
			Flush:         ptr(p.Flush),
			Straight:      ptr(p.Straight),
		},
		Simulation: &SimulationConfig{
			Seed:             1,
			Lines:            []string{uth.MaxBet.Name, uth.FlopBet.Name, uth.RiverBet.Name},
			ProgressInterval: uth.DefaultProgressInterval.String(),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills in defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func ptr[T any](v T) *T {
	return &v
}

// applyDefaults fills every unset value from Default. Zero still means unset
// for the ante, seed and log level, which have no meaningful zero.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}

	if c.Rules == nil {
		c.Rules = d.Rules
	}
	if c.Rules.Ante == 0 {
		c.Rules.Ante = d.Rules.Ante
	}
	if c.Rules.Blind == nil {
		c.Rules.Blind = ptr(c.Rules.Ante)
	}

	if c.Paytable == nil {
		c.Paytable = d.Paytable
	}
	for _, f := range []struct{ v, def **float64 }{
		{&c.Paytable.RoyalFlush, &d.Paytable.RoyalFlush},
		{&c.Paytable.StraightFlush, &d.Paytable.StraightFlush},
		{&c.Paytable.FourOfAKind, &d.Paytable.FourOfAKind},
		{&c.Paytable.FullHouse, &d.Paytable.FullHouse},
		{&c.Paytable.Flush, &d.Paytable.Flush},
		{&c.Paytable.Straight, &d.Paytable.Straight},
	} {
		if *f.v == nil {
			*f.v = *f.def
		}
	}

	if c.Simulation == nil {
		c.Simulation = d.Simulation
	}
	if c.Simulation.Seed == 0 {
		c.Simulation.Seed = d.Simulation.Seed
	}
	if len(c.Simulation.Lines) == 0 {
		c.Simulation.Lines = d.Simulation.Lines
	}
	if c.Simulation.ProgressInterval == "" {
		c.Simulation.ProgressInterval = d.Simulation.ProgressInterval
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if err := c.UTHRules().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Simulation.Iterations < 0 {
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidConfig, c.Simulation.Iterations)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Simulation.Workers)
	}
	if _, err := c.Lines(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if d, err := time.ParseDuration(c.Simulation.ProgressInterval); err != nil || d <= 0 {
		return fmt.Errorf("%w: progress_interval %q", ErrInvalidConfig, c.Simulation.ProgressInterval)
	}
	return nil
}

// UTHRules converts the rules and pay table blocks.
func (c *Config) UTHRules() uth.Rules {
	return uth.Rules{
		Ante:  c.Rules.Ante,
		Blind: *c.Rules.Blind,
		Paytable: uth.Paytable{
			RoyalFlush:    *c.Paytable.RoyalFlush,
			StraightFlush: *c.Paytable.StraightFlush,
			FourOfAKind:   *c.Paytable.FourOfAKind,
			FullHouse:     *c.Paytable.FullHouse,
			Flush:         *c.Paytable.Flush,
			Straight:      *c.Paytable.Straight,
		},
	}
}

// Lines resolves the configured line names.
func (c *Config) Lines() ([]uth.Line, error) {
	lines := make([]uth.Line, 0, len(c.Simulation.Lines))
	for _, name := range c.Simulation.Lines {
		l, err := uth.LineByName(name)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// SimulatorConfig builds the simulator configuration. Logger and clock are
// left to the caller.
func (c *Config) SimulatorConfig() (uth.Config, error) {
	lines, err := c.Lines()
	if err != nil {
		return uth.Config{}, err
	}
	interval, err := time.ParseDuration(c.Simulation.ProgressInterval)
	if err != nil {
		return uth.Config{}, fmt.Errorf("progress_interval: %w", err)
	}
	return uth.Config{
		Rules:            c.UTHRules(),
		Lines:            lines,
		Iterations:       c.Simulation.Iterations,
		Seed:             c.Simulation.Seed,
		Workers:          c.Simulation.Workers,
		ProgressInterval: interval,
	}, nil
}
