// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Run configuration for the substrate facade, loadable from YAML.

package facade

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("facade: invalid config")

// Config holds parameters immutable per run. Worker count may be changed
// afterwards through the Control "workers" key.
type Config struct {
	TickPeriod time.Duration `yaml:"tick_period"` // real time per tick
	TickStart  uint32        `yaml:"tick_start"`  // initial tick, set near 2^32 to exercise wraparound
	MaxIdle    time.Duration `yaml:"max_idle"`    // longest dispatcher sleep with nothing due
	Workers    int           `yaml:"workers"`     // executor workers, 0 means one per CPU
	Heartbeat  uint32        `yaml:"heartbeat"`   // ticks between gauge refreshes, 0 disables
	LogLevel   string        `yaml:"log_level"`   // logiface level keyword
	Metrics    bool          `yaml:"metrics"`     // record counters into Control
	Debug      bool          `yaml:"debug"`       // register queue depth probes
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		TickPeriod: time.Millisecond,
		TickStart:  0,
		MaxIdle:    100 * time.Millisecond,
		Workers:    4,
		Heartbeat:  1000,
		LogLevel:   "info",
		Metrics:    true,
		Debug:      true,
	}
}

// Validate reports the first invalid field as an *api.Error wrapping
// ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(field string, value any, msg string) error {
		return api.NewError(api.ErrCodeInvalidConfig, msg).
			Wrap(ErrInvalidConfig).
			WithContext("field", field).
			WithContext("value", value)
	}
	switch {
	case c.TickPeriod <= 0:
		return invalid("tick_period", c.TickPeriod, "tick period must be positive")
	case c.MaxIdle < 0:
		return invalid("max_idle", c.MaxIdle, "max idle must not be negative")
	case c.Workers < 0:
		return invalid("workers", c.Workers, "worker count must not be negative")
	case c.Heartbeat > 1<<31-1:
		return invalid("heartbeat", c.Heartbeat, "heartbeat exceeds the comparable tick range")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return invalid("log_level", c.LogLevel, err.Error())
	}
	return nil
}

// DecodeConfig reads YAML over DefaultConfig. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("facade: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and validates the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("facade: open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}
