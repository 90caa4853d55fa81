// SPDX-License-Identifier: EPL-2.0

// Package config holds the sizing constants of the audio core and the YAML
// configuration of the host simulator.
package config

import (
	"log/slog"
	"time"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to a slog level. Unknown or empty values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the top-level simulator configuration.
type Config struct {
	LogLevel LogLevel      `yaml:"log_level"`
	Audio    AudioConfig   `yaml:"audio"`
	Input    string        `yaml:"input"`
	Output   string        `yaml:"output"`
	Realtime bool          `yaml:"realtime"`
	Monitor  bool          `yaml:"monitor"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// AudioConfig parameterizes the block pipeline.
type AudioConfig struct {
	// BlockSize is the number of stereo frames per transfer-complete event.
	BlockSize int `yaml:"block_size"`
	// SampleRate in Hz.
	SampleRate int `yaml:"sample_rate"`
}

// BlockPeriod is the time budget for one block.
func (a AudioConfig) BlockPeriod() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(a.BlockSize) * time.Second / time.Duration(a.SampleRate)
}

// MetricsConfig controls the Prometheus endpoint. An empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Defaults returns the reference configuration: 48 frames at 48 kHz.
func Defaults() *Config {
	return &Config{
		LogLevel: LogInfo,
		Audio: AudioConfig{
			BlockSize:  DefaultBlockSize,
			SampleRate: DefaultSampleRate,
		},
		Realtime: true,
	}
}
