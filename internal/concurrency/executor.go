// File: internal/concurrency/executor.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor runs tasks on worker threads fed by one MessageQueue. Workers
// block in Wait; a nil task is the shutdown sentinel, so shrinking or
// closing the pool is a matter of releasing one sentinel per worker. Tasks
// queued before the sentinels still run.

package concurrency

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"

	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/msgq"
	"github.com/DaveBerkeley/panglos-sub001/platform"
)

type TaskFunc func()

// Executor manages a pool of worker threads.
type Executor struct {
	queue     *msgq.MessageQueue[TaskFunc]
	threads   api.ThreadFactory
	mu        sync.Mutex
	gate      sync.RWMutex // Submit holds R across check+Put, Close holds W to set closed
	workers   int          // target worker count, guarded by mu
	nextID    int
	closed    atomic.Bool
	completed atomic.Uint64
	panics    atomic.Uint64
	logger    *logiface.Logger[logiface.Event]
	metrics   Metrics
}

// ExecutorOption configures an Executor.
type ExecutorOption func(e *Executor)

// WithExecutorLogger attaches a logger.
func WithExecutorLogger(l *logiface.Logger[logiface.Event]) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// WithExecutorMetrics attaches a metrics sink.
func WithExecutorMetrics(m Metrics) ExecutorOption {
	return func(e *Executor) { e.metrics = m }
}

// WithThreadFactory replaces the default platform.Threads.
func WithThreadFactory(t api.ThreadFactory) ExecutorOption {
	return func(e *Executor) { e.threads = t }
}

// WithTaskQueue supplies the queue workers consume, e.g. one built with a
// deferred post hook.
func WithTaskQueue(q *msgq.MessageQueue[TaskFunc]) ExecutorOption {
	return func(e *Executor) { e.queue = q }
}

// NewExecutor creates a new Executor with the given number of workers.
func NewExecutor(numWorkers int, opts ...ExecutorOption) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	e := &Executor{metrics: noMetrics{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.queue == nil {
		e.queue = msgq.New[TaskFunc]()
	}
	if e.threads == nil {
		e.threads = platform.NewThreads(e.logger)
	}
	e.mu.Lock()
	e.grow(numWorkers)
	e.mu.Unlock()
	return e
}

// Submit enqueues a task. Returns error if closed.
func (e *Executor) Submit(task TaskFunc) error {
	if task == nil {
		return ErrNilTask
	}
	e.gate.RLock()
	defer e.gate.RUnlock()
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	e.queue.Put(task)
	return nil
}

// Resize scales the worker pool. Surplus workers exit after finishing the
// tasks queued ahead of their sentinel.
func (e *Executor) Resize(newCount int) {
	if newCount <= 0 {
		newCount = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return
	}
	switch {
	case newCount > e.workers:
		e.grow(newCount - e.workers)
	case newCount < e.workers:
		e.queue.Release(e.workers - newCount)
		e.workers = newCount
	}
	e.metrics.Set("executor.workers", e.workers)
}

// Close stops accepting tasks, releases every worker and waits for them.
// Every Submit that returned nil is queued ahead of the sentinels and runs.
func (e *Executor) Close() {
	e.gate.Lock()
	if !e.closed.CompareAndSwap(false, true) {
		e.gate.Unlock()
		return
	}
	e.gate.Unlock()
	e.mu.Lock()
	n := e.workers
	e.workers = 0
	e.mu.Unlock()
	e.logger.Debug().Int("workers", n).Log("executor releasing workers")
	e.queue.Release(n)
	e.threads.Wait()
}

// Shutdown implements api.GracefulShutdown.
func (e *Executor) Shutdown() error {
	e.Close()
	return nil
}

// NumWorkers returns the target worker count.
func (e *Executor) NumWorkers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workers
}

// Completed returns the number of tasks run, including ones that panicked.
func (e *Executor) Completed() uint64 { return e.completed.Load() }

// Pending returns the number of queued tasks and sentinels.
func (e *Executor) Pending() int { return e.queue.Len() }

// grow starts n workers. Caller holds mu.
func (e *Executor) grow(n int) {
	for i := 0; i < n; i++ {
		id := e.nextID
		e.nextID++
		e.threads.Go("executor-"+strconv.Itoa(id), e.work)
	}
	e.workers += n
}

func (e *Executor) work() {
	for {
		task := e.queue.Wait()
		if e.queue.IsSentinel(task) {
			return
		}
		e.safeExecute(task)
	}
}

func (e *Executor) safeExecute(task TaskFunc) {
	defer func() {
		e.completed.Add(1)
		e.metrics.AddCounter("executor.completed", 1)
		if r := recover(); r != nil {
			e.panics.Add(1)
			e.metrics.AddCounter("executor.panics", 1)
			e.logger.Err().Err(fmt.Errorf("panic: %v", r)).Log("task panicked")
		}
	}()
	task()
}

var _ api.GracefulShutdown = (*Executor)(nil)
