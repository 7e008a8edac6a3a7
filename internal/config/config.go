// Package config loads tracking settings for the lineage command from YAML.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/LdDl/cell-lineage/lineage"
)

const (
	DefaultIntersectTolerance = 0.1
	maxFileSize               = 1 * 1024 * 1024 // 1MB
)

// Config is the root of the settings file. Omitted fields keep defaults,
// so partial files are safe.
type Config struct {
	Tracking TrackingConfig `yaml:"tracking"`
	Filter   FilterConfig   `yaml:"filter"`
}

// TrackingConfig holds tracker parameters
type TrackingConfig struct {
	IntersectTolerance *float64 `yaml:"intersect_tolerance,omitempty"`
	Workers            *int     `yaml:"workers,omitempty"`
}

// FilterConfig holds optional lineage length bounds. Nil bound is disabled
type FilterConfig struct {
	MinLength *int `yaml:"min_length,omitempty"`
	MaxLength *int `yaml:"max_length,omitempty"`
}

// Empty returns Config with every field unset
func Empty() *Config {
	return &Config{}
}

// Load reads Config from a .yaml/.yml file and validates it
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, errors.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes Config from YAML bytes and validates it
func Parse(data []byte) (*Config, error) {
	cfg := Empty()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate checks that configured values are in range
func (cfg *Config) Validate() error {
	if tol := cfg.Tracking.IntersectTolerance; tol != nil {
		if *tol < 0 || *tol > 1 {
			return errors.Errorf("intersect_tolerance must be between 0 and 1, got %f", *tol)
		}
	}
	if workers := cfg.Tracking.Workers; workers != nil && *workers < 1 {
		return errors.Errorf("workers must be positive, got %d", *workers)
	}
	if minLen := cfg.Filter.MinLength; minLen != nil && *minLen < 1 {
		return errors.Errorf("min_length must be positive, got %d", *minLen)
	}
	if maxLen := cfg.Filter.MaxLength; maxLen != nil && *maxLen < 1 {
		return errors.Errorf("max_length must be positive, got %d", *maxLen)
	}
	if cfg.Filter.MinLength != nil && cfg.Filter.MaxLength != nil && *cfg.Filter.MinLength > *cfg.Filter.MaxLength {
		return errors.Errorf("min_length %d is greater than max_length %d", *cfg.Filter.MinLength, *cfg.Filter.MaxLength)
	}
	return nil
}

func (cfg *Config) GetIntersectTolerance() float64 {
	if cfg.Tracking.IntersectTolerance == nil {
		return DefaultIntersectTolerance
	}
	return *cfg.Tracking.IntersectTolerance
}

func (cfg *Config) GetWorkers() int {
	if cfg.Tracking.Workers == nil {
		return runtime.GOMAXPROCS(0)
	}
	return *cfg.Tracking.Workers
}

// GetLengthFilter converts filter section into lineage.LengthFilter
func (cfg *Config) GetLengthFilter() lineage.LengthFilter {
	filter := lineage.LengthFilter{}
	if cfg.Filter.MinLength != nil {
		filter.MinOn = true
		filter.Min = *cfg.Filter.MinLength
	}
	if cfg.Filter.MaxLength != nil {
		filter.MaxOn = true
		filter.Max = *cfg.Filter.MaxLength
	}
	return filter
}
