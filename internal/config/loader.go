// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidBlockSize  = errors.New("invalid block size")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrMissingInput      = errors.New("input is required")
	ErrMissingOutput     = errors.New("output is required")
)

// Load reads the YAML configuration file at path, applies each overlay in
// order and returns the validated result. An empty path starts from
// Defaults, so overlays alone can supply a complete configuration.
func Load(path string, overlays ...func(*Config)) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()

		if cfg, err = Parse(f); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	for _, overlay := range overlays {
		overlay(cfg)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of Defaults and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a YAML config from r on top of Defaults without validating
// it, so that callers can apply overrides first. Unknown keys are rejected
// and an empty document yields Defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks cfg and returns every problem found joined into one error.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q: %w; valid values: debug, info, warn, error", cfg.LogLevel, ErrInvalidLogLevel))
	}
	if cfg.Audio.BlockSize < 1 || cfg.Audio.BlockSize > BlockSizeMax {
		errs = append(errs, fmt.Errorf("audio.block_size %d: %w; must be in [1, %d]", cfg.Audio.BlockSize, ErrInvalidBlockSize, BlockSizeMax))
	}
	if cfg.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d: %w", cfg.Audio.SampleRate, ErrInvalidSampleRate))
	}
	if cfg.Input == "" {
		errs = append(errs, ErrMissingInput)
	}
	if cfg.Output == "" {
		errs = append(errs, ErrMissingOutput)
	}

	return errors.Join(errs...)
}
