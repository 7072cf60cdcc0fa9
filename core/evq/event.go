// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Schedulable unit of work.

package evq

import "github.com/DaveBerkeley/panglos-sub001/core/ilist"

// Handler runs when its event becomes due. now is the tick passed to Run.
// A periodic handler re-adds ev with a later When.
type Handler func(ev *Event, now Tick)

// Event is one schedulable unit of work. The caller owns it and must not
// reuse or drop it while it is scheduled.
type Event struct {
	When    Tick
	Handler Handler
	// Name labels the event in logs and debug output.
	Name string

	link ilist.Link[*Event]
}

// NewEvent returns an unscheduled event.
func NewEvent(name string, when Tick, handler Handler) *Event {
	return &Event{Name: name, When: when, Handler: handler}
}

// Scheduled reports whether the event is linked into a queue.
func (e *Event) Scheduled() bool { return e.link.Linked() }

// Fire invokes the handler, if any.
func (e *Event) Fire(now Tick) {
	if e.Handler != nil {
		e.Handler(e, now)
	}
}

func eventLink(e *Event) *ilist.Link[*Event] { return &e.link }
