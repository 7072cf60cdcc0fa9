// Package api
// Author: momentics
//
// Instrumented implementations of the synchronisation contracts for tests.

package api

import (
	"context"
	"sync"
	"sync/atomic"
)

// CountingLocker is a Locker that counts acquisitions.
type CountingLocker struct {
	mu    sync.Mutex
	locks atomic.Int64
}

func (l *CountingLocker) Lock()   { l.mu.Lock(); l.locks.Add(1) }
func (l *CountingLocker) Unlock() { l.mu.Unlock() }

// Locks returns how many times Lock has been called.
func (l *CountingLocker) Locks() int64 { return l.locks.Load() }

// RecordingHook is a PostHook that counts posts before forwarding them.
type RecordingHook struct {
	posts atomic.Int64
}

func (h *RecordingHook) Post(sem Semaphore) {
	h.posts.Add(1)
	sem.Post()
}

// Posts returns how many posts passed through the hook.
func (h *RecordingHook) Posts() int64 { return h.posts.Load() }

// ChanSemaphore is a Semaphore over a buffered channel, bounded by its
// capacity. Posting beyond the capacity blocks.
type ChanSemaphore chan struct{}

// NewChanSemaphore returns a semaphore holding up to n pending posts.
func NewChanSemaphore(n int) ChanSemaphore { return make(ChanSemaphore, n) }

func (s ChanSemaphore) Post() { s <- struct{}{} }
func (s ChanSemaphore) Wait() { <-s }

func (s ChanSemaphore) WaitContext(ctx context.Context) error {
	select {
	case <-s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ Locker    = (*CountingLocker)(nil)
	_ PostHook  = (*RecordingHook)(nil)
	_ Semaphore = ChanSemaphore(nil)
)
