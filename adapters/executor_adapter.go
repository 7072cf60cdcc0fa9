// File: adapters/executor_adapter.go
// Package adapters provides glue between internal concurrency and api.Executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements the api.Executor interface by delegating to the
// internal concurrency.Executor, whose task type is a named func.

package adapters

import (
	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/internal/concurrency"
)

var (
	_ api.Executor         = (*ExecutorAdapter)(nil)
	_ api.GracefulShutdown = (*ExecutorAdapter)(nil)
)

// ExecutorAdapter wraps an internal concurrency.Executor to satisfy the api.Executor contract.
type ExecutorAdapter struct {
	exec *concurrency.Executor
}

// NewExecutorAdapter wraps exec.
func NewExecutorAdapter(exec *concurrency.Executor) *ExecutorAdapter {
	return &ExecutorAdapter{exec: exec}
}

// Submit dispatches a task function to be executed asynchronously.
// Returns an error if the executor has been closed.
func (ea *ExecutorAdapter) Submit(task func()) error {
	if task == nil {
		return concurrency.ErrNilTask
	}
	return ea.exec.Submit(task)
}

// NumWorkers returns the current number of active worker goroutines.
func (ea *ExecutorAdapter) NumWorkers() int {
	return ea.exec.NumWorkers()
}

// Resize dynamically adjusts the size of the worker pool.
func (ea *ExecutorAdapter) Resize(newCount int) {
	ea.exec.Resize(newCount)
}

// Shutdown releases every worker and waits for them.
func (ea *ExecutorAdapter) Shutdown() error {
	return ea.exec.Shutdown()
}
