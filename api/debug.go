// Package api
// Author: momentics
//
// Live introspection of queue depths and dispatcher state.

package api

// Debug exposes named probes sampled on demand.
type Debug interface {
	// DumpState samples every registered probe.
	DumpState() map[string]any

	// RegisterProbe registers or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}
