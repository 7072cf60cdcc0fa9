// File: core/ring/ring.go
// Package ring implements a fixed-capacity single-producer/single-consumer
// ring buffer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffer keeps two free-running uint32 cursors. Occupancy is wr-rd in
// uint32 arithmetic, so it stays correct after either cursor wraps. Push and
// Pop are unchecked: the producer consults Full and the consumer consults
// Empty before calling them. Enqueue/Dequeue are the checked equivalents and
// implement api.Ring.

package ring

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*RingBuffer[any])(nil)

// MaxCapacity is the largest capacity whose occupancy fits the cursor width.
const MaxCapacity = 1 << 31

// RingBuffer is a lock-free ring buffer for one producer and one consumer.
type RingBuffer[T any] struct {
	data []T
	mask uint32
	_    cpu.CacheLinePad
	rd   atomic.Uint32 // written by the consumer only
	_    cpu.CacheLinePad
	wr   atomic.Uint32 // written by the producer only
	_    cpu.CacheLinePad
}

// New allocates a ring buffer of capacity n. It panics unless n is a power
// of two no larger than MaxCapacity.
func New[T any](n int) *RingBuffer[T] {
	if n <= 0 || uint64(n) > MaxCapacity || n&(n-1) != 0 {
		panic("ring: capacity must be a power of two")
	}
	return &RingBuffer[T]{
		data: make([]T, n),
		mask: uint32(n - 1),
	}
}

// Push stores v at the write cursor. Pushing into a full buffer overwrites
// the oldest unread slot.
func (r *RingBuffer[T]) Push(v T) {
	wr := r.wr.Load()
	r.data[wr&r.mask] = v
	r.wr.Store(wr + 1)
}

// Pop returns the value at the read cursor. Popping an empty buffer returns
// stale data.
func (r *RingBuffer[T]) Pop() T {
	rd := r.rd.Load()
	v := r.data[rd&r.mask]
	r.rd.Store(rd + 1)
	return v
}

// Enqueue adds item; returns false if full.
func (r *RingBuffer[T]) Enqueue(item T) bool {
	if r.Full() {
		return false
	}
	r.Push(item)
	return true
}

// Dequeue removes and returns item; ok false if empty.
func (r *RingBuffer[T]) Dequeue() (item T, ok bool) {
	if r.Empty() {
		return item, false
	}
	return r.Pop(), true
}

// Size returns wr-rd using wrapping uint32 subtraction.
func (r *RingBuffer[T]) Size() uint32 {
	return r.wr.Load() - r.rd.Load()
}

// Len returns number of items currently in buffer.
func (r *RingBuffer[T]) Len() int { return int(r.Size()) }

// Cap returns fixed buffer capacity.
func (r *RingBuffer[T]) Cap() int { return len(r.data) }

// Empty reports whether there is nothing to pop.
func (r *RingBuffer[T]) Empty() bool { return r.Size() == 0 }

// Full reports whether a Push would overwrite unread data.
func (r *RingBuffer[T]) Full() bool { return r.Size() >= uint32(len(r.data)) }

// reset positions both cursors at start, discarding contents. Tests use it
// to place the cursors next to the wrap point.
func (r *RingBuffer[T]) reset(start uint32) {
	r.rd.Store(start)
	r.wr.Store(start)
}
