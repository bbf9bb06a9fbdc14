// Package config loads the ccs settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read when no -config flag is given.
const DefaultPath = "ccs.yaml"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("config file not found")

// Config holds the simulation settings shared by every command.
type Config struct {
	Seed     uint64   `yaml:"seed" json:"seed"`
	Accounts int      `yaml:"accounts" json:"accounts"`
	Currency string   `yaml:"currency" json:"currency"`
	Today    string   `yaml:"today,omitempty" json:"today,omitempty"` // YYYY-MM-DD, empty for the current day
	Exclude  []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Include  []string `yaml:"include,omitempty" json:"include,omitempty"` // nil for every portfolio, [] for none
	Where    string   `yaml:"where,omitempty" json:"where,omitempty"`
	Listen   string   `yaml:"listen" json:"listen"`
	Model    string   `yaml:"model" json:"model"`
}

// Default returns the settings used when there is no file.
func Default() *Config {
	return &Config{
		Seed:     cartera.DefaultSeed,
		Accounts: cartera.DefaultCount,
		Currency: cartera.DefaultCurrency,
		Listen:   "localhost:8080",
		Model:    "gemini-2.5-flash",
	}
}

// Load reads the file at path on top of the defaults.
// A missing file yields an error wrapping ErrNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load config %q: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file at DefaultPath yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) && path == DefaultPath {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Accounts <= 0 {
		return fmt.Errorf("invalid config: accounts must be positive, got %d", c.Accounts)
	}
	if !cartera.IsCurrency(c.Currency) {
		return fmt.Errorf("invalid config: unknown currency %q", c.Currency)
	}
	if c.Today != "" {
		if _, err := date.Parse(c.Today); err != nil {
			return fmt.Errorf("invalid config: today: %w", err)
		}
	}
	if _, err := c.Filter(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Filter returns the initial filter.
func (c *Config) Filter() (cartera.Filter, error) {
	return cartera.ParseFilter(c.Exclude, c.Include, c.Where)
}

// Now returns the creation time of the table: noon UTC on Today, or the current time.
func (c *Config) Now() time.Time {
	if c.Today == "" {
		return time.Now()
	}
	d, err := date.Parse(c.Today)
	if err != nil {
		return time.Now()
	}
	return d.At(12, 0, time.UTC)
}

// GeneratorOptions returns the options to generate the base table with.
func (c *Config) GeneratorOptions() cartera.GeneratorOptions {
	return cartera.GeneratorOptions{
		Count:    c.Accounts,
		Seed:     c.Seed,
		Now:      c.Now(),
		Currency: c.Currency,
	}
}
