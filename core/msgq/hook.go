// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Post hooks decide where a Put's semaphore post is executed.

package msgq

import (
	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/ring"
)

// DirectPost posts immediately in the caller's context.
type DirectPost struct{}

func (DirectPost) Post(sem api.Semaphore) { sem.Post() }

// DeferredPost records posts made from an interrupt-like context, where the
// real semaphore must not be touched, and replays them when the owning task
// calls Flush. One context posts and one context flushes.
type DeferredPost struct {
	pending *ring.RingBuffer[api.Semaphore]
}

// NewDeferredPost returns a hook able to hold n unflushed posts; n must be a
// power of two.
func NewDeferredPost(n int) *DeferredPost {
	return &DeferredPost{pending: ring.New[api.Semaphore](n)}
}

// Post records sem for the next Flush. Overflowing the pending ring panics.
func (d *DeferredPost) Post(sem api.Semaphore) {
	if !d.pending.Enqueue(sem) {
		panic("msgq: deferred post ring full")
	}
}

// Flush performs every recorded post and returns how many it performed.
func (d *DeferredPost) Flush() int {
	n := 0
	for {
		sem, ok := d.pending.Dequeue()
		if !ok {
			return n
		}
		sem.Post()
		n++
	}
}

// Pending returns the number of unflushed posts.
func (d *DeferredPost) Pending() int { return d.pending.Len() }

var (
	_ api.PostHook = DirectPost{}
	_ api.PostHook = (*DeferredPost)(nil)
)
