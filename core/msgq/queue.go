// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MessageQueue hands values between any number of producers and consumers.
// A lock serialises the container; a counting semaphore whose count tracks
// queued values puts waiting consumers to sleep.

package msgq

import (
	"context"
	"reflect"

	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/platform"
)

// MessageQueue is a blocking, thread-safe FIFO handoff.
type MessageQueue[T any] struct {
	items      Container[T]
	mu         api.Locker
	sem        api.Semaphore
	hook       api.PostHook
	sentinel   T
	isSentinel func(T) bool
}

// Option configures a MessageQueue.
type Option[T any] func(q *MessageQueue[T])

// WithContainer replaces the default FIFO container.
func WithContainer[T any](c Container[T]) Option[T] {
	return func(q *MessageQueue[T]) { q.items = c }
}

// WithLocker replaces the default mutex.
func WithLocker[T any](l api.Locker) Option[T] {
	return func(q *MessageQueue[T]) { q.mu = l }
}

// WithSemaphore replaces the default semaphore. It must start at zero.
func WithSemaphore[T any](s api.Semaphore) Option[T] {
	return func(q *MessageQueue[T]) { q.sem = s }
}

// WithPostHook redirects the post performed by Put.
func WithPostHook[T any](h api.PostHook) Option[T] {
	return func(q *MessageQueue[T]) { q.hook = h }
}

// WithCapacity backs the queue with a Bounded container of n slots, n a
// power of two. Put and Get then never allocate; Put on a full queue panics.
func WithCapacity[T any](n int) Option[T] {
	return func(q *MessageQueue[T]) { q.items = NewBounded[T](n) }
}

// WithSentinel sets the shutdown value used by Release and recognised by
// IsSentinel. The default is the zero value of T.
func WithSentinel[T any](value T, is func(T) bool) Option[T] {
	return func(q *MessageQueue[T]) {
		q.sentinel = value
		q.isSentinel = is
	}
}

// New returns an empty queue.
func New[T any](opts ...Option[T]) *MessageQueue[T] {
	q := &MessageQueue[T]{}
	for _, opt := range opts {
		opt(q)
	}
	if q.items == nil {
		q.items = NewFIFO[T]()
	}
	if q.mu == nil {
		q.mu = platform.NewMutex()
	}
	if q.sem == nil {
		q.sem = platform.NewSemaphore()
	}
	if q.hook == nil {
		q.hook = DirectPost{}
	}
	if q.isSentinel == nil {
		q.isSentinel = isZero[T]
	}
	return q
}

// Put appends v and posts the semaphore once, after releasing the lock.
func (q *MessageQueue[T]) Put(v T) {
	q.mu.Lock()
	q.items.Push(v)
	q.mu.Unlock()
	q.hook.Post(q.sem)
}

// Get pops the front value without blocking; ok is false when empty.
//
// The semaphore is left as is, so a later Wait may wake to an empty
// container. Wait absorbs that by waiting again.
func (q *MessageQueue[T]) Get() (v T, ok bool) {
	q.mu.Lock()
	v, ok = q.items.Pop()
	q.mu.Unlock()
	return v, ok
}

// Wait blocks until a value is available and returns it.
func (q *MessageQueue[T]) Wait() T {
	for {
		q.sem.Wait()
		if v, ok := q.Get(); ok {
			return v
		}
	}
}

// WaitContext is Wait, returning ctx.Err() if ctx is done first.
func (q *MessageQueue[T]) WaitContext(ctx context.Context) (T, error) {
	for {
		if err := q.sem.WaitContext(ctx); err != nil {
			var zero T
			return zero, err
		}
		if v, ok := q.Get(); ok {
			return v, nil
		}
	}
}

// Empty reports whether no value is queued.
func (q *MessageQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Len returns the number of queued values.
func (q *MessageQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Release puts the sentinel n times, one per consumer to be shut down.
// The queue does not know how many consumers exist.
func (q *MessageQueue[T]) Release(n int) {
	for i := 0; i < n; i++ {
		q.Put(q.sentinel)
	}
}

// IsSentinel reports whether v is the shutdown value.
func (q *MessageQueue[T]) IsSentinel(v T) bool {
	return q.isSentinel(v)
}

func isZero[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
