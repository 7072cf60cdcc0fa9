// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Sequential containers a MessageQueue can store values in.

package msgq

import (
	"github.com/eapache/queue"

	"github.com/DaveBerkeley/panglos-sub001/core/ring"
)

// Container is the sequential storage behind a MessageQueue. The queue
// serialises every call, so implementations need no locking.
type Container[T any] interface {
	Push(v T)
	Pop() (T, bool)
	Len() int
}

// FIFO is an unbounded container over github.com/eapache/queue. It
// allocates: values are stored as interface{}, so non-pointer T is boxed on
// every Push, and the backing array is resized as the queue grows and drains.
type FIFO[T any] struct {
	q *queue.Queue
}

// NewFIFO returns an empty FIFO.
func NewFIFO[T any]() *FIFO[T] {
	return &FIFO[T]{q: queue.New()}
}

func (f *FIFO[T]) Push(v T) { f.q.Add(v) }

func (f *FIFO[T]) Pop() (v T, ok bool) {
	if f.q.Length() == 0 {
		return v, false
	}
	// comma-ok keeps nil interface values as the zero T
	v, _ = f.q.Remove().(T)
	return v, true
}

func (f *FIFO[T]) Len() int { return f.q.Length() }

// Bounded is a fixed-capacity container over a ring buffer. It never
// allocates after construction. Pushing into a full Bounded panics.
type Bounded[T any] struct {
	r *ring.RingBuffer[T]
}

// NewBounded returns a container holding up to n values; n must be a
// power of two.
func NewBounded[T any](n int) *Bounded[T] {
	return &Bounded[T]{r: ring.New[T](n)}
}

func (b *Bounded[T]) Push(v T) {
	if !b.r.Enqueue(v) {
		panic("msgq: bounded container full")
	}
}

func (b *Bounded[T]) Pop() (T, bool) { return b.r.Dequeue() }

func (b *Bounded[T]) Len() int { return b.r.Len() }
