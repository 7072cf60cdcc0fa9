// Package ilist provides allocation-free intrusive singly-linked lists.
//
// The link slot lives inside the caller's item type and is located through an
// accessor supplied at construction:
//
//	type job struct {
//		link ilist.Link[*job]
//		id   int
//	}
//
//	q := ilist.NewDeque(func(j *job) *ilist.Link[*job] { return &j.link })
//	q.PushTail(&job{id: 1})
//
// An item belongs to at most one list at a time. Pushing an item that is
// still linked panics; popping or removing it releases the slot.
//
// Nothing in this package locks. Callers serialise access.
package ilist
