// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, metrics, reload hooks and debug introspection for
// the dispatch substrate.
//
// Provides concurrent-safe state handling primitives including:
//   - Key/value config snapshots, atomic merges and YAML loading
//   - Reload hook registries, constructed per owner rather than global
//   - Gauges and counters with JSON export
//   - Debug probe registration and state dumps
package control
