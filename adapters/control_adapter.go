// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"io"

	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/control"
)

var (
	_ api.Control = (*ControlAdapter)(nil)
	_ api.Debug   = (*control.DebugProbes)(nil)
)

// ControlAdapter aggregates config, metrics, debug probes and reload hooks.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
	reload  *control.ReloadHooks
}

// NewControlAdapter builds an adapter with platform probes registered.
func NewControlAdapter() *ControlAdapter {
	adapter := &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
		reload:  &control.ReloadHooks{},
	}
	adapter.config.OnReload(adapter.reload.Trigger)
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	if cfg == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "nil config map")
	}
	c.config.SetConfig(cfg)
	return nil
}

// LoadConfig merges a YAML mapping into the config store.
func (c *ControlAdapter) LoadConfig(r io.Reader) error {
	return c.config.LoadYAML(r)
}

// ConfigInt reads an integer config override.
func (c *ControlAdapter) ConfigInt(key string, def int) int {
	return c.config.GetInt(key, def)
}

func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.reload.Register(fn)
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) AddCounter(key string, delta int64) {
	c.metrics.AddCounter(key, delta)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Metrics exposes the registry for components that record directly.
func (c *ControlAdapter) Metrics() *control.MetricsRegistry {
	return c.metrics
}

// Debug exposes the probe registry.
func (c *ControlAdapter) Debug() api.Debug {
	return c.debug
}
