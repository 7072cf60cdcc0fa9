// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Head-only intrusive list. The scheduler keeps its ordered queue here.

package ilist

// List is an intrusive singly-linked list with a head pointer only.
type List[T comparable] struct {
	head T
	link LinkFunc[T]
}

// New returns an empty list using link to reach each item's slot.
func New[T comparable](link LinkFunc[T]) *List[T] {
	if link == nil {
		panic("ilist: nil link accessor")
	}
	return &List[T]{link: link}
}

// Empty reports whether the list has no items.
func (l *List[T]) Empty() bool {
	var zero T
	return l.head == zero
}

// Front returns the head item, or the zero value when empty.
func (l *List[T]) Front() T { return l.head }

// Next returns the item following item, or the zero value at the end.
func (l *List[T]) Next(item T) T { return l.link(item).next }

// Contains reports whether item is linked into this list. O(1).
func (l *List[T]) Contains(item T) bool {
	return l.link(item).owner == any(l)
}

// Len counts the items by traversal.
//
// NOTE: This is an O(n) operation.
func (l *List[T]) Len() (n int) {
	var zero T
	for it := l.head; it != zero; it = l.link(it).next {
		n++
	}
	return n
}

// PushHead makes item the new head.
func (l *List[T]) PushHead(item T) {
	mustItem(item)
	k := l.link(item)
	k.claim(l)
	k.next = l.head
	l.head = item
}

// PopHead unlinks and returns the head item; ok is false when empty.
func (l *List[T]) PopHead() (item T, ok bool) {
	if l.Empty() {
		return item, false
	}
	item = l.head
	k := l.link(item)
	l.head = k.next
	k.release()
	return item, true
}

// InsertAfter links item directly after prev. A zero prev inserts at the
// head. prev must belong to this list.
func (l *List[T]) InsertAfter(prev, item T) {
	var zero T
	if prev == zero {
		l.PushHead(item)
		return
	}
	if !l.Contains(prev) {
		panic("ilist: insert after an item not in this list")
	}
	mustItem(item)
	k := l.link(item)
	k.claim(l)
	pk := l.link(prev)
	k.next = pk.next
	pk.next = item
}

// Remove unlinks item wherever it sits. Removing an item that is not in
// this list panics.
func (l *List[T]) Remove(item T) {
	if !l.Contains(item) {
		panic("ilist: remove of an item not in this list")
	}
	var zero, prev T
	for it := l.head; it != zero; prev, it = it, l.link(it).next {
		if it != item {
			continue
		}
		next := l.link(it).next
		if prev == zero {
			l.head = next
		} else {
			l.link(prev).next = next
		}
		l.link(it).release()
		return
	}
	panic("ilist: corrupt list, owned item not reachable")
}

// Each calls fn for every item head to tail until fn returns false.
// fn must not modify the list.
func (l *List[T]) Each(fn func(item T) bool) {
	var zero T
	for it := l.head; it != zero; it = l.link(it).next {
		if !fn(it) {
			return
		}
	}
}
