// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Doubly-ended view (head and tail) over intrusive items.

package ilist

// Deque is an intrusive list with head and tail pointers, supporting
// PushHead, PushTail and PopHead in O(1).
type Deque[T comparable] struct {
	head T
	tail T
	link LinkFunc[T]
}

// NewDeque returns an empty deque using link to reach each item's slot.
func NewDeque[T comparable](link LinkFunc[T]) *Deque[T] {
	if link == nil {
		panic("ilist: nil link accessor")
	}
	return &Deque[T]{link: link}
}

// Empty reports whether the deque has no items.
func (d *Deque[T]) Empty() bool {
	var zero T
	return d.head == zero
}

// Head returns the head item, or the zero value when empty.
func (d *Deque[T]) Head() T { return d.head }

// Tail returns the tail item, or the zero value when empty.
func (d *Deque[T]) Tail() T { return d.tail }

// Contains reports whether item is linked into this deque. O(1).
func (d *Deque[T]) Contains(item T) bool {
	return d.link(item).owner == any(d)
}

// Len counts the items by traversal.
//
// NOTE: This is an O(n) operation.
func (d *Deque[T]) Len() (n int) {
	var zero T
	for it := d.head; it != zero; it = d.link(it).next {
		n++
	}
	return n
}

// PushHead makes item the new head. On an empty deque it is also the tail.
func (d *Deque[T]) PushHead(item T) {
	mustItem(item)
	k := d.link(item)
	k.claim(d)
	if d.Empty() {
		d.tail = item
	}
	k.next = d.head
	d.head = item
}

// PushTail makes item the new tail. On an empty deque it is also the head.
func (d *Deque[T]) PushTail(item T) {
	mustItem(item)
	k := d.link(item)
	k.claim(d)
	if d.Empty() {
		d.head = item
	} else {
		d.link(d.tail).next = item
	}
	d.tail = item
}

// PopHead unlinks and returns the head item; ok is false when empty.
// Popping the last item clears the tail.
func (d *Deque[T]) PopHead() (item T, ok bool) {
	if d.Empty() {
		return item, false
	}
	item = d.head
	k := d.link(item)
	d.head = k.next
	if d.Empty() {
		var zero T
		d.tail = zero
	}
	k.release()
	return item, true
}
