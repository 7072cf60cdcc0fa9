package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/evq"
)

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
	values   map[string]any
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counters: map[string]int64{}, values: map[string]any{}}
}

func (m *recordingMetrics) AddCounter(key string, delta int64) {
	m.mu.Lock()
	m.counters[key] += delta
	m.mu.Unlock()
}

func (m *recordingMetrics) Set(key string, value any) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

func (m *recordingMetrics) counter(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key]
}

func TestDispatcherPollWithManualClock(t *testing.T) {
	clock := NewManualClock(0xfffffff0)
	metrics := newRecordingMetrics()
	d := NewDispatcher(clock, time.Millisecond, WithDispatcherMetrics(metrics))

	var fired []string
	h := func(ev *evq.Event, now api.Tick) { fired = append(fired, ev.Name) }
	d.After("a", 5, h)
	d.After("b", 20, h) // lands after the wrap
	d.After("c", 40, h)

	assert.False(t, d.Poll())
	clock.Advance(5)
	assert.True(t, d.Poll())
	assert.Equal(t, []string{"a"}, fired)

	clock.Advance(15)
	assert.Equal(t, api.Tick(4), clock.Now())
	assert.True(t, d.Poll())
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, d.Pending())
	assert.Equal(t, int64(2), metrics.counter("dispatcher.fired"))
}

func TestDispatcherCancelAndReschedule(t *testing.T) {
	clock := NewManualClock(100)
	d := NewDispatcher(clock, time.Millisecond)
	var n atomic.Int32
	h := func(*evq.Event, api.Tick) { n.Add(1) }

	a := d.After("a", 10, h)
	b := d.After("b", 10, h)
	assert.True(t, d.Cancel(a))
	assert.False(t, d.Cancel(a))
	d.Reschedule(b, 200)

	clock.Set(150)
	assert.False(t, d.Poll())
	clock.Set(200)
	assert.True(t, d.Poll())
	assert.Equal(t, int32(1), n.Load())

	assert.Panics(t, func() { d.Del(a) })
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	clock := NewManualClock(0)
	metrics := newRecordingMetrics()
	d := NewDispatcher(clock, time.Millisecond, WithDispatcherMetrics(metrics))
	ran := false
	d.After("bad", 0, func(*evq.Event, api.Tick) { panic("boom") })
	d.After("good", 0, func(*evq.Event, api.Tick) { ran = true })

	assert.NotPanics(t, func() { d.Poll() })
	assert.True(t, ran)
	assert.Equal(t, int64(1), metrics.counter("dispatcher.panics"))
	assert.Equal(t, uint64(2), d.Fired())
}

func TestDispatcherRunFiresPeriodicEvent(t *testing.T) {
	clock := NewMonotonicClock(time.Millisecond, 0xffffff00)
	d := NewDispatcher(clock, clock.Period(), WithMaxIdle(5*time.Millisecond))

	var count atomic.Int32
	done := make(chan struct{})
	d.After("periodic", 2, func(ev *evq.Event, now api.Tick) {
		if count.Add(1) == 5 {
			close(done)
			return
		}
		ev.When = now + 2
		d.Add(ev)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("periodic event fired %d times", count.Load())
	}
	d.Stop()
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(5), count.Load())
}

func TestDispatcherRunHonoursContext(t *testing.T) {
	d := NewDispatcher(NewManualClock(0), time.Millisecond, WithMaxIdle(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, d.Run(context.Background()), ErrDispatcherRunning)
}

func TestDispatcherAddWakesRun(t *testing.T) {
	clock := NewManualClock(0)
	d := NewDispatcher(clock, time.Millisecond, WithMaxIdle(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	fired := make(chan struct{})
	d.After("now", 0, func(*evq.Event, api.Tick) { close(fired) })
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("Add did not wake an idle Run")
	}
	d.Stop()
}

func TestNewDispatcherPreconditions(t *testing.T) {
	assert.Panics(t, func() { NewDispatcher(nil, time.Millisecond) })
	assert.Panics(t, func() { NewDispatcher(NewManualClock(0), 0) })
	assert.Panics(t, func() { NewMonotonicClock(0, 0) })
}

func TestMonotonicClockWraps(t *testing.T) {
	c := NewMonotonicClock(time.Nanosecond, 0xffffffff)
	time.Sleep(time.Millisecond)
	// a millisecond of nanosecond ticks has carried the counter past zero
	assert.Less(t, uint32(c.Now()), uint32(0xf0000000))
}

func TestDispatcherNextWaitClampsLongPeriods(t *testing.T) {
	noop := func(*evq.Event, api.Tick) {}

	d := NewDispatcher(NewManualClock(0), 10*time.Second, WithMaxIdle(100*time.Millisecond))
	d.After("far", 1<<31-1, noop)
	assert.Equal(t, 100*time.Millisecond, d.nextWait())

	d = NewDispatcher(NewManualClock(0), time.Millisecond, WithMaxIdle(time.Hour))
	d.After("far", 1<<31-1, noop)
	assert.Equal(t, time.Hour, d.nextWait())

	d = NewDispatcher(NewManualClock(0), time.Millisecond, WithMaxIdle(time.Second))
	d.After("near", 30, noop)
	assert.Equal(t, 30*time.Millisecond, d.nextWait())
	d.After("due", 0, noop)
	assert.Zero(t, d.nextWait())
}
