// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads settings for the gpuctx command.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
)

// Config holds the settings of one gpuctx run.
// Zero values mean "unspecified" and are replaced by Default values.
type Config struct {
	Platform        string   `json:"platform" yaml:"platform" toml:"platform"`
	Backends        []string `json:"backends" yaml:"backends" toml:"backends"`
	PowerPreference string   `json:"power_preference" yaml:"power_preference" toml:"power_preference"`
	Label           string   `json:"label" yaml:"label" toml:"label"`
	TargetTag       string   `json:"target_tag" yaml:"target_tag" toml:"target_tag"`
	Debug           bool     `json:"debug" yaml:"debug" toml:"debug"`
	TraceDriver     bool     `json:"trace_driver" yaml:"trace_driver" toml:"trace_driver"`
	Shader          string   `json:"shader" yaml:"shader" toml:"shader"`
	ShaderRoot      string   `json:"shader_root" yaml:"shader_root" toml:"shader_root"`
	SkipValidation  bool     `json:"skip_validation" yaml:"skip_validation" toml:"skip_validation"`
	Fail            []string `json:"fail" yaml:"fail" toml:"fail"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Platform:        gpuctx.PlatformWGPU,
		Backends:        []string{gpuctx.PrimaryGPU.String(), gpuctx.PortableGL.String()},
		PowerPreference: "none",
		Label:           "gpuctx-device",
		TargetTag:       "canvas",
		ShaderRoot:      ".",
		LogLevel:        "warn",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults returns c with every unspecified field taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Platform == "" {
		c.Platform = d.Platform
	}
	if len(c.Backends) == 0 {
		c.Backends = d.Backends
	}
	if c.PowerPreference == "" {
		c.PowerPreference = d.PowerPreference
	}
	if c.Label == "" {
		c.Label = d.Label
	}
	if c.TargetTag == "" {
		c.TargetTag = d.TargetTag
	}
	if c.ShaderRoot == "" {
		c.ShaderRoot = d.ShaderRoot
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// BackendKinds parses Backends.
func (c Config) BackendKinds() ([]gpuctx.BackendKind, error) {
	kinds := make([]gpuctx.BackendKind, 0, len(c.Backends))
	for _, s := range c.Backends {
		k, err := gpuctx.ParseBackendKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Power parses PowerPreference ("none", "low-power", "high-performance").
func (c Config) Power() (gputypes.PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(c.PowerPreference)) {
	case "", "none", "default":
		return gputypes.PowerPreferenceNone, nil
	case "low-power", "low", "lowpower":
		return gputypes.PowerPreferenceLowPower, nil
	case "high-performance", "high", "highperformance":
		return gputypes.PowerPreferenceHighPerformance, nil
	default:
		return gputypes.PowerPreferenceNone, fmt.Errorf("config: unknown power preference %q", c.PowerPreference)
	}
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

// Options converts the negotiation settings into gpuctx options.
// The platform is chosen by the caller.
func (c Config) Options() ([]gpuctx.Option, error) {
	kinds, err := c.BackendKinds()
	if err != nil {
		return nil, err
	}
	power, err := c.Power()
	if err != nil {
		return nil, err
	}
	opts := []gpuctx.Option{
		gpuctx.WithBackends(kinds...),
		gpuctx.WithPowerPreference(power),
	}
	if c.Label != "" {
		opts = append(opts, gpuctx.WithLabel(c.Label))
	}
	if c.TargetTag != "" {
		opts = append(opts, gpuctx.WithTargetTag(c.TargetTag))
	}
	return opts, nil
}
