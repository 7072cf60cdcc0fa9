// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown stops a component's goroutines and releases blocked
// consumers. It returns an error on failure.
type GracefulShutdown interface {
	Shutdown() error
}
