// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import (
	"errors"
	"fmt"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

var (
	// ErrExecutorClosed indicates the executor has been shut down. It
	// matches api.ErrClosed.
	ErrExecutorClosed = fmt.Errorf("executor: %w", api.ErrClosed)

	// ErrDispatcherRunning indicates Run was called on a running dispatcher
	ErrDispatcherRunning = errors.New("dispatcher already running")

	// ErrNilTask indicates a nil task, which is reserved as the shutdown value
	ErrNilTask = errors.New("nil task")
)

// Metrics receives runtime counters. control.MetricsRegistry implements it.
type Metrics interface {
	AddCounter(key string, delta int64)
	Set(key string, value any)
}

type noMetrics struct{}

func (noMetrics) AddCounter(string, int64) {}
func (noMetrics) Set(string, any)          {}
