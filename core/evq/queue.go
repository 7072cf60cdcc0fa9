// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EvQueue keeps events ordered by modular distance, so that a queue spanning
// the 2^32 wrap still fires in real-time order. It is not synchronised: one
// owning context drives it, or the caller wraps it in a lock.

package evq

import (
	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/ilist"
)

var _ api.Scheduler[*Event] = (*EvQueue)(nil)

// EvQueue is an ordered queue of caller-owned events.
type EvQueue struct {
	list *ilist.List[*Event]
}

// New returns an empty queue.
func New() *EvQueue {
	return &EvQueue{list: ilist.New(eventLink)}
}

// Add inserts ev after every queued event that is not later than it, so
// equal ticks fire in insertion order. Adding a scheduled event panics.
func (q *EvQueue) Add(ev *Event) {
	if ev == nil {
		panic("evq: nil event")
	}
	if ev.Scheduled() {
		panic("evq: event already scheduled")
	}
	var prev *Event
	for it := q.list.Front(); it != nil; it = q.list.Next(it) {
		if Compare(it.When, ev.When) < 0 {
			break
		}
		prev = it
	}
	q.list.InsertAfter(prev, ev)
}

// Del unlinks ev. Deleting an event that is not in this queue panics.
func (q *EvQueue) Del(ev *Event) {
	if ev == nil || !q.list.Contains(ev) {
		panic("evq: del of an event not in this queue")
	}
	q.list.Remove(ev)
}

// Reschedule sets ev.When and re-sorts it. An unscheduled event is simply
// added.
func (q *EvQueue) Reschedule(ev *Event, when Tick) {
	if ev == nil {
		panic("evq: nil event")
	}
	if q.list.Contains(ev) {
		q.list.Remove(ev)
	}
	ev.When = when
	q.Add(ev)
}

// Pop unlinks and returns the head if it is due at now. It does not fire it.
func (q *EvQueue) Pop(now Tick) (*Event, bool) {
	head := q.list.Front()
	if head == nil || !Due(head.When, now) {
		return nil, false
	}
	q.list.PopHead()
	return head, true
}

// Run pops and fires events until none is due at now, and reports whether
// any fired. Handlers may add or delete events, including re-adding
// themselves; one re-added at or before now fires again in this call.
func (q *EvQueue) Run(now Tick) bool {
	fired := false
	for {
		ev, ok := q.Pop(now)
		if !ok {
			return fired
		}
		fired = true
		ev.Fire(now)
	}
}

// Peek returns the head event without unlinking it, or nil.
func (q *EvQueue) Peek() *Event { return q.list.Front() }

// Empty reports whether nothing is scheduled.
func (q *EvQueue) Empty() bool { return q.list.Empty() }

// Len counts the queued events. O(n).
func (q *EvQueue) Len() int { return q.list.Len() }

// Contains reports whether ev is queued here.
func (q *EvQueue) Contains(ev *Event) bool { return ev != nil && q.list.Contains(ev) }

// Until returns the ticks remaining before the head is due at now, zero if
// it is already due. ok is false when the queue is empty.
func (q *EvQueue) Until(now Tick) (d Tick, ok bool) {
	head := q.list.Front()
	if head == nil {
		return 0, false
	}
	if c := Compare(now, head.When); c > 0 {
		return Tick(c), true
	}
	return 0, true
}

// Each visits queued events head to tail until fn returns false.
func (q *EvQueue) Each(fn func(ev *Event) bool) { q.list.Each(fn) }
