// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch.

package api

// Executor abstracts a resizable pool of task workers.
type Executor interface {
	// Submit schedules task for execution.
	Submit(task func()) error

	// NumWorkers returns current number of active worker routines.
	NumWorkers() int

	// Resize adjusts the concurrency at runtime.
	Resize(newCount int)
}
