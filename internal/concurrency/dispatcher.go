// File: internal/concurrency/dispatcher.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher owns an event queue and services it against a tick clock. The
// queue itself is unsynchronised; every access here goes through mu, so
// Add/Del/Reschedule may be called from any goroutine, including event
// handlers. Handlers run with mu released.

package concurrency

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"

	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/evq"
)

// Dispatcher fires scheduled events when the clock reaches them.
type Dispatcher struct {
	mu      sync.Mutex
	queue   *evq.EvQueue
	clock   api.Clock
	period  time.Duration // real time per tick, used to size sleeps
	maxIdle time.Duration // longest sleep with nothing scheduled
	wake    chan struct{} // cap 1, nudged when the head may have changed
	quitCh  chan struct{} // closed on Stop()
	doneCh  chan struct{} // closed after Run() exits
	stop    sync.Once
	running atomic.Bool
	fired   atomic.Uint64
	panics  atomic.Uint64
	logger  *logiface.Logger[logiface.Event]
	metrics Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(d *Dispatcher)

// WithDispatcherLogger attaches a logger.
func WithDispatcherLogger(l *logiface.Logger[logiface.Event]) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithDispatcherMetrics attaches a metrics sink.
func WithDispatcherMetrics(m Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithMaxIdle bounds how long Run sleeps with an empty queue.
func WithMaxIdle(v time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.maxIdle = v }
}

// NewDispatcher returns a dispatcher reading clock, whose ticks last period.
func NewDispatcher(clock api.Clock, period time.Duration, opts ...DispatcherOption) *Dispatcher {
	if clock == nil {
		panic("concurrency: nil clock")
	}
	if period <= 0 {
		panic("concurrency: tick period must be positive")
	}
	d := &Dispatcher{
		queue:   evq.New(),
		clock:   clock,
		period:  period,
		maxIdle: 100 * time.Millisecond,
		wake:    make(chan struct{}, 1),
		quitCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		metrics: noMetrics{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Now reads the dispatcher's clock.
func (d *Dispatcher) Now() api.Tick { return d.clock.Now() }

// Add schedules ev.
func (d *Dispatcher) Add(ev *evq.Event) {
	d.mu.Lock()
	d.queue.Add(ev)
	d.mu.Unlock()
	d.nudge()
}

// After schedules a new event delay ticks from now and returns it.
func (d *Dispatcher) After(name string, delay api.Tick, h evq.Handler) *evq.Event {
	ev := evq.NewEvent(name, d.clock.Now()+delay, h)
	d.Add(ev)
	return ev
}

// Del unschedules ev, which must be queued here.
func (d *Dispatcher) Del(ev *evq.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue.Del(ev)
}

// Cancel unschedules ev if it is queued and reports whether it was.
func (d *Dispatcher) Cancel(ev *evq.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.queue.Contains(ev) {
		return false
	}
	d.queue.Del(ev)
	return true
}

// Reschedule moves ev to when. No other goroutine sees ev unqueued midway.
func (d *Dispatcher) Reschedule(ev *evq.Event, when api.Tick) {
	d.mu.Lock()
	d.queue.Reschedule(ev, when)
	d.mu.Unlock()
	d.nudge()
}

// Pending returns the number of scheduled events.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Len()
}

// Fired returns the number of events fired so far.
func (d *Dispatcher) Fired() uint64 { return d.fired.Load() }

// Poll fires every event due at the current tick and reports whether any
// fired. It suits a caller-owned tick handler in place of Run.
func (d *Dispatcher) Poll() bool {
	now := d.clock.Now()
	fired := false
	for {
		d.mu.Lock()
		ev, ok := d.queue.Pop(now)
		d.mu.Unlock()
		if !ok {
			break
		}
		fired = true
		d.fire(ev, now)
	}
	if fired {
		d.metrics.Set("dispatcher.pending", d.Pending())
	}
	return fired
}

// Run services the queue until ctx is done or Stop is called. A Dispatcher
// runs once.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDispatcherRunning
	}
	defer close(d.doneCh)

	d.logger.Info().Log("dispatcher started")
	defer d.logger.Info().Uint64("fired", d.fired.Load()).Log("dispatcher stopped")

	// Create a reusable timer, initially stopped
	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.quitCh:
			return nil
		default:
		}

		d.Poll()

		wait := d.nextWait()
		if wait == 0 {
			continue
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return ctx.Err()
		case <-d.quitCh:
			stopTimer(timer)
			return nil
		case <-d.wake:
			stopTimer(timer)
		case <-timer.C:
		}
	}
}

// Stop signals Run to exit and waits for it.
func (d *Dispatcher) Stop() {
	d.stop.Do(func() { close(d.quitCh) })
	if d.running.Load() {
		<-d.doneCh
	}
}

func (d *Dispatcher) nextWait() time.Duration {
	d.mu.Lock()
	until, ok := d.queue.Until(d.clock.Now())
	d.mu.Unlock()
	if !ok {
		return d.maxIdle
	}
	if until == 0 {
		return 0
	}
	// clamp before multiplying; until*period overflows for long periods
	if time.Duration(until) > d.maxIdle/d.period {
		return d.maxIdle
	}
	return time.Duration(until) * d.period
}

func (d *Dispatcher) nudge() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) fire(ev *evq.Event, now api.Tick) {
	defer func() {
		if r := recover(); r != nil {
			d.panics.Add(1)
			d.metrics.AddCounter("dispatcher.panics", 1)
			d.logger.Err().
				Str("event", ev.Name).
				Uint64("tick", uint64(now)).
				Err(fmt.Errorf("panic: %v", r)).
				Log("event handler panicked")
		}
	}()
	d.fired.Add(1)
	d.metrics.AddCounter("dispatcher.fired", 1)
	ev.Fire(now)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
