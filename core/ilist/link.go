// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Link slot embedded by queueable items.

package ilist

// Link is the intrusive link slot. The zero value is an unlinked slot.
type Link[T comparable] struct {
	next  T
	owner any
}

// Linked reports whether the slot currently belongs to a list.
func (k *Link[T]) Linked() bool { return k.owner != nil }

// LinkFunc locates the link slot of an item.
type LinkFunc[T comparable] func(item T) *Link[T]

// claim marks the slot as owned by list, panicking if it is already owned.
func (k *Link[T]) claim(list any) {
	if k.owner != nil {
		panic("ilist: item already linked")
	}
	k.owner = list
}

func (k *Link[T]) release() {
	var zero T
	k.next = zero
	k.owner = nil
}

func mustItem[T comparable](item T) {
	var zero T
	if item == zero {
		panic("ilist: zero item")
	}
}
