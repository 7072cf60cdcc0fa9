// File: internal/concurrency/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Tick sources for the dispatcher.

package concurrency

import (
	"sync/atomic"
	"time"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

var (
	_ api.Clock = (*MonotonicClock)(nil)
	_ api.Clock = (*ManualClock)(nil)
)

// MonotonicClock counts fixed-length ticks since construction, starting at
// an arbitrary offset. The count wraps at 2^32 like a hardware timer.
type MonotonicClock struct {
	start  time.Time
	period time.Duration
	offset api.Tick
}

// NewMonotonicClock returns a clock whose first tick is offset. Starting
// near the wrap point exercises wraparound early.
func NewMonotonicClock(period time.Duration, offset api.Tick) *MonotonicClock {
	if period <= 0 {
		panic("concurrency: tick period must be positive")
	}
	return &MonotonicClock{start: time.Now(), period: period, offset: offset}
}

// Now returns the current tick.
func (c *MonotonicClock) Now() api.Tick {
	elapsed := uint64(time.Since(c.start) / c.period)
	return c.offset + api.Tick(elapsed)
}

// Period returns the length of one tick.
func (c *MonotonicClock) Period() time.Duration { return c.period }

// ManualClock only moves when told to.
type ManualClock struct {
	now atomic.Uint32
}

// NewManualClock returns a clock reading start.
func NewManualClock(start api.Tick) *ManualClock {
	c := &ManualClock{}
	c.now.Store(uint32(start))
	return c
}

func (c *ManualClock) Now() api.Tick { return api.Tick(c.now.Load()) }

// Set moves the clock to t.
func (c *ManualClock) Set(t api.Tick) { c.now.Store(uint32(t)) }

// Advance moves the clock forward by n ticks, wrapping, and returns the
// new value.
func (c *ManualClock) Advance(n api.Tick) api.Tick {
	return api.Tick(c.now.Add(uint32(n)))
}
