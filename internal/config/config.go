package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/optable/derange/internal/hash"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBoard   = 3
	DefaultTrials  = 1000
	DefaultHistory = 1000
	DefaultHash    = "murmur3"
)

var ErrInvalidConfig = fmt.Errorf("invalid configuration")

// Config of a simulation run. Board is the side of a square board,
// so a run covers Board*Board items unless Items is set.
type Config struct {
	Board        int    `yaml:"board"`
	Items        int    `yaml:"items"`
	Trials       int    `yaml:"trials"`
	Seed         string `yaml:"seed"`
	CountInitial bool   `yaml:"count_initial"`
	History      int    `yaml:"history"`
	Hash         string `yaml:"hash"`
	Verbosity    int    `yaml:"verbosity"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// Default configuration: a 3x3 board, like the one the simulator opens with
func Default() Config {
	return Config{
		Board:   DefaultBoard,
		Trials:  DefaultTrials,
		History: DefaultHistory,
		Hash:    DefaultHash,
	}
}

// Load reads a YAML file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// N is the number of items on the board
func (c Config) N() int {
	if c.Items > 0 {
		return c.Items
	}
	return c.Board * c.Board
}

// Width of the grid the items are laid out on
func (c Config) Width() int {
	if c.Items > 0 {
		return 0
	}
	return c.Board
}

// SeedBytes decodes the hex seed, nil when unset
func (c Config) SeedBytes() ([]byte, error) {
	if c.Seed == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: seed is not hex: %v", ErrInvalidConfig, err)
	}
	return b, nil
}

// Validate reports every problem at once
func (c Config) Validate() error {
	var errs []error
	if c.Items < 0 {
		errs = append(errs, fmt.Errorf("%w: items %d", ErrInvalidConfig, c.Items))
	}
	if c.Items == 0 && c.Board < 1 {
		errs = append(errs, fmt.Errorf("%w: board %d", ErrInvalidConfig, c.Board))
	}
	if c.Trials < 0 {
		errs = append(errs, fmt.Errorf("%w: trials %d", ErrInvalidConfig, c.Trials))
	}
	if c.History < 0 {
		errs = append(errs, fmt.Errorf("%w: history %d", ErrInvalidConfig, c.History))
	}
	if _, err := hash.Parse(c.Hash); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	if _, err := c.SeedBytes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
