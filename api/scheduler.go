// Package api
// Author: momentics
//
// Scheduler contract for tick-driven event dispatch.

package api

// Tick is a free-running counter value. It wraps silently at 2^32, so two
// ticks are only comparable while they lie within 2^31 of each other.
type Tick uint32

// Clock supplies the current tick to a dispatcher.
type Clock interface {
	// Now returns the current tick value.
	Now() Tick
}

// Scheduler abstracts a time-ordered queue of events keyed by Tick.
type Scheduler[E any] interface {
	// Add inserts ev, keeping the queue ordered by distance from now.
	Add(ev E)

	// Del unlinks a queued event.
	Del(ev E)

	// Reschedule moves ev to a new tick and re-sorts it.
	Reschedule(ev E, when Tick)

	// Pop unlinks and returns the head event if it is due at now.
	Pop(now Tick) (E, bool)

	// Run fires every event due at now, reporting whether any fired.
	Run(now Tick) bool
}
