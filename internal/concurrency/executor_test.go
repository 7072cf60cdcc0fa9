package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveBerkeley/panglos-sub001/core/msgq"
)

func TestExecutorRunsEveryTask(t *testing.T) {
	metrics := newRecordingMetrics()
	e := NewExecutor(4, WithExecutorMetrics(metrics))

	const tasks = 1000
	var sum atomic.Int64
	for i := 1; i <= tasks; i++ {
		i := i
		require.NoError(t, e.Submit(func() { sum.Add(int64(i)) }))
	}

	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("timeout closing executor")
	}

	assert.Equal(t, int64(tasks*(tasks+1)/2), sum.Load())
	assert.Equal(t, uint64(tasks), e.Completed())
	assert.Equal(t, int64(tasks), metrics.counter("executor.completed"))
	assert.ErrorIs(t, e.Submit(func() {}), ErrExecutorClosed)
	assert.Equal(t, 0, e.NumWorkers())
}

func TestExecutorRejectsNilTask(t *testing.T) {
	e := NewExecutor(1)
	defer e.Close()
	assert.ErrorIs(t, e.Submit(nil), ErrNilTask)
}

func TestExecutorSurvivesPanics(t *testing.T) {
	e := NewExecutor(2)
	var wg sync.WaitGroup
	wg.Add(2)
	require.NoError(t, e.Submit(func() { defer wg.Done(); panic("boom") }))
	require.NoError(t, e.Submit(func() { wg.Done() }))
	wg.Wait()
	require.NoError(t, e.Shutdown())
	assert.Equal(t, uint64(2), e.Completed())
	assert.Equal(t, uint64(1), e.panics.Load())
}

func TestExecutorResize(t *testing.T) {
	e := NewExecutor(2)
	e.Resize(5)
	assert.Equal(t, 5, e.NumWorkers())
	e.Resize(1)
	assert.Equal(t, 1, e.NumWorkers())

	done := make(chan struct{})
	require.NoError(t, e.Submit(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run after shrink")
	}
	e.Close()
	e.Close()
}

func TestExecutorWithDeferredQueue(t *testing.T) {
	hook := msgq.NewDeferredPost(64)
	q := msgq.New(msgq.WithPostHook[TaskFunc](hook))
	e := NewExecutor(1, WithTaskQueue(q))

	ran := make(chan struct{})
	require.NoError(t, e.Submit(func() { close(ran) }))
	select {
	case <-ran:
		t.Fatal("task ran before the deferred post was flushed")
	case <-time.After(20 * time.Millisecond):
	}
	hook.Flush()
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run after flush")
	}

	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()
	for {
		hook.Flush()
		select {
		case <-closed:
			return
		case <-time.After(time.Millisecond):
		}
	}
}

// gatedLocker blocks the first Lock after arm until release is closed.
type gatedLocker struct {
	mu      sync.Mutex
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func newGatedLocker() *gatedLocker {
	return &gatedLocker{entered: make(chan struct{}), release: make(chan struct{})}
}

func (l *gatedLocker) Lock() {
	if l.armed.CompareAndSwap(true, false) {
		close(l.entered)
		<-l.release
	}
	l.mu.Lock()
}

func (l *gatedLocker) Unlock() { l.mu.Unlock() }

func TestExecutorSubmitRacingCloseRunsTask(t *testing.T) {
	lock := newGatedLocker()
	q := msgq.New[TaskFunc](msgq.WithLocker[TaskFunc](lock))
	e := NewExecutor(2, WithTaskQueue(q))

	var ran atomic.Bool
	submitted := make(chan error, 1)
	lock.armed.Store(true)
	go func() { submitted <- e.Submit(func() { ran.Store(true) }) }()
	<-lock.entered

	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned while a Submit was still enqueueing")
	case <-time.After(20 * time.Millisecond):
	}

	close(lock.release)
	require.NoError(t, <-submitted)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout closing executor")
	}

	assert.True(t, ran.Load(), "accepted task must run before workers exit")
	assert.Zero(t, e.Pending())
	assert.ErrorIs(t, e.Submit(func() {}), ErrExecutorClosed)
}
