package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"clinch-calc/internal/model"
	"clinch-calc/internal/montecarlo"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
//
// Numeric side fields are kept as text so files can use either "1.85" or
// "1,85"; they are parsed by model.Validate.
type Config struct {
	// Optional: load a base scenario from another YAML file and overlay this
	// file's non-empty fields on top of it.
	BaseFile string `yaml:"base_file"`

	Leader    SideConfig `yaml:"leader"`
	Chaser    SideConfig `yaml:"chaser"`
	Remaining string     `yaml:"remaining"`

	Simulation SimulationConfig `yaml:"simulation"`
}

type SideConfig struct {
	Name   string `yaml:"name"`
	Points string `yaml:"points"`
	Ppg    string `yaml:"ppg"`
}

type SimulationConfig struct {
	Volatility float64 `yaml:"volatility"`
	Trials     int     `yaml:"trials"`
	Workers    int     `yaml:"workers"`
	// Seed makes runs reproducible; leave unset for a fresh seed per run.
	Seed *uint64 `yaml:"seed"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful when flags will fill in the missing fields afterwards.
func LoadUnchecked(path string) (*Config, error) {
	return loadFile(path, 0)
}

// maxBaseDepth bounds base_file chains so a cycle cannot recurse forever.
const maxBaseDepth = 8

func loadFile(path string, depth int) (*Config, error) {
	if depth > maxBaseDepth {
		return nil, fmt.Errorf("base_file chain deeper than %d at %s", maxBaseDepth, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.BaseFile == "" {
		return &c, nil
	}

	basePath := c.BaseFile
	if !filepath.IsAbs(basePath) {
		// Prefer paths relative to the including file, falling back to the
		// working directory.
		cand := filepath.Join(filepath.Dir(path), basePath)
		if _, err := os.Stat(cand); err == nil {
			basePath = cand
		}
	}
	base, err := loadFile(basePath, depth+1)
	if err != nil {
		return nil, fmt.Errorf("load base_file %s: %w", c.BaseFile, err)
	}
	merged := Merge(*base, c)
	merged.BaseFile = ""
	return &merged, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Scenario(); err != nil {
		return fmt.Errorf("scenario invalid: %w", err)
	}
	if v := c.Simulation.Volatility; v < 0 || v > montecarlo.MaxVolatility {
		return fmt.Errorf("simulation.volatility must be within [0, %g]", montecarlo.MaxVolatility)
	}
	if c.Simulation.Trials < 0 {
		return errors.New("simulation.trials must be >= 0")
	}
	if c.Simulation.Workers < 0 {
		return errors.New("simulation.workers must be >= 0")
	}
	return nil
}

// Raw returns the scenario fields as unparsed input.
func (c *Config) Raw() model.RawInput {
	return model.RawInput{
		LeaderName:   c.Leader.Name,
		ChaserName:   c.Chaser.Name,
		PointsLeader: c.Leader.Points,
		PointsChaser: c.Chaser.Points,
		Remaining:    c.Remaining,
		PpgLeader:    c.Leader.Ppg,
		PpgChaser:    c.Chaser.Ppg,
	}
}

// Scenario validates the scenario fields. The error is a *model.ValidationError.
func (c *Config) Scenario() (model.Scenario, error) {
	return model.Validate(c.Raw())
}

// SimulationOptions converts the simulation block, drawing a fresh seed when
// none is configured.
func (c *Config) SimulationOptions() montecarlo.Options {
	seed := montecarlo.RandomSeed()
	if c.Simulation.Seed != nil {
		seed = *c.Simulation.Seed
	}
	return montecarlo.Options{
		Volatility: c.Simulation.Volatility,
		Trials:     c.Simulation.Trials,
		Workers:    c.Simulation.Workers,
		Seed:       seed,
	}
}

// Merge overlays non-empty fields from override onto base.
func Merge(base, override Config) Config {
	out := base
	out.Leader = mergeSide(base.Leader, override.Leader)
	out.Chaser = mergeSide(base.Chaser, override.Chaser)
	if override.Remaining != "" {
		out.Remaining = override.Remaining
	}
	if override.Simulation.Volatility != 0 {
		out.Simulation.Volatility = override.Simulation.Volatility
	}
	if override.Simulation.Trials != 0 {
		out.Simulation.Trials = override.Simulation.Trials
	}
	if override.Simulation.Workers != 0 {
		out.Simulation.Workers = override.Simulation.Workers
	}
	if override.Simulation.Seed != nil {
		out.Simulation.Seed = override.Simulation.Seed
	}
	return out
}

func mergeSide(base, override SideConfig) SideConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Points != "" {
		out.Points = override.Points
	}
	if override.Ppg != "" {
		out.Ppg = override.Ppg
	}
	return out
}
