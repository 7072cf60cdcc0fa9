// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Counting semaphore over golang.org/x/sync/semaphore. The weighted
// semaphore starts fully held; each Post releases one unit and each Wait
// acquires one, so the count of released units is the semaphore value.

package platform

import (
	"context"
	"math"

	"golang.org/x/sync/semaphore"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

var _ api.Semaphore = (*Semaphore)(nil)

// Semaphore is a counting semaphore with an initial count of zero.
type Semaphore struct {
	w *semaphore.Weighted
}

// NewSemaphore returns a semaphore with count zero.
func NewSemaphore() *Semaphore {
	w := semaphore.NewWeighted(math.MaxInt64)
	if !w.TryAcquire(math.MaxInt64) {
		panic("platform: fresh semaphore not acquirable")
	}
	return &Semaphore{w: w}
}

// Post increments the count, waking at most one waiter. It never blocks.
func (s *Semaphore) Post() {
	s.w.Release(1)
}

// Wait blocks until the count is positive, then decrements it.
func (s *Semaphore) Wait() {
	_ = s.w.Acquire(context.Background(), 1)
}

// WaitContext is Wait, returning ctx.Err() if ctx is done first.
func (s *Semaphore) WaitContext(ctx context.Context) error {
	return s.w.Acquire(ctx, 1)
}

// TryWait decrements the count if it is positive.
func (s *Semaphore) TryWait() bool {
	return s.w.TryAcquire(1)
}
