// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/ik5/regionedit/internal/logging"
	"github.com/ik5/regionedit/region"
)

// Config holds the settings shared by every command.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL, default=info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT, default=console" validate:"oneof=console json"`
	LogFile   string `env:"LOG_FILE"`

	// Editing
	RegionPolicy string `env:"REGION_POLICY, default=replace" validate:"oneof=replace suppress"`

	// Audio. SampleRate 0 keeps the rate of the source file.
	SampleRate      int `env:"SAMPLE_RATE, default=0" validate:"gte=0,lte=384000"`
	SpeakerBufferMS int `env:"SPEAKER_BUFFER_MS, default=100" validate:"gte=10,lte=5000"`

	// Waveform images
	PlotWidth  int `env:"PLOT_WIDTH, default=800" validate:"gt=0,lte=16384"`
	PlotHeight int `env:"PLOT_HEIGHT, default=400" validate:"gt=0,lte=16384"`
}

// Load reads env files into the process environment and then decodes the
// environment into a validated Config. Variables already set take
// precedence over file values. Without envFiles, a missing .env in the
// working directory is ignored.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && (len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("config: reading env file: %w", err)
	}

	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes and validates a Config from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Policy returns the region policy.
func (c *Config) Policy() region.Policy {
	p, err := region.ParsePolicy(c.RegionPolicy)
	if err != nil {
		return region.PolicyReplace
	}
	return p
}

func (c *Config) SpeakerBuffer() time.Duration {
	return time.Duration(c.SpeakerBufferMS) * time.Millisecond
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		File:   c.LogFile,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogLevel: %s, LogFormat: %s, LogFile: %s, RegionPolicy: %s, SampleRate: %d, SpeakerBufferMS: %d, PlotWidth: %d, PlotHeight: %d}",
		c.LogLevel,
		c.LogFormat,
		c.LogFile,
		c.RegionPolicy,
		c.SampleRate,
		c.SpeakerBufferMS,
		c.PlotWidth,
		c.PlotHeight,
	)
}
