// File: api/sync.go
// Package api defines the synchronisation contracts collaborators supply.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "context"

// Locker is the mutual exclusion contract (lock/unlock).
type Locker interface {
	Lock()
	Unlock()
}

// Semaphore is a counting semaphore (post/wait).
type Semaphore interface {
	// Post increments the count, waking at most one waiter.
	Post()
	// Wait blocks until the count is positive, then decrements it.
	Wait()
	// WaitContext is Wait, abandoned with ctx.Err() when ctx is done.
	WaitContext(ctx context.Context) error
}

// PostHook redirects semaphore posts, e.g. to defer them out of an
// interrupt-like context.
type PostHook interface {
	Post(sem Semaphore)
}

// ThreadFactory starts caller-owned threads of execution.
type ThreadFactory interface {
	// Go runs fn on a new thread of execution.
	Go(name string, fn func())
	// Wait blocks until every thread started by Go has returned.
	Wait()
}
