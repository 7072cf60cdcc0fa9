package platform_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveBerkeley/panglos-sub001/platform"
)

func TestSemaphoreCounts(t *testing.T) {
	s := platform.NewSemaphore()
	assert.False(t, s.TryWait())

	s.Post()
	s.Post()
	assert.True(t, s.TryWait())
	s.Wait()
	assert.False(t, s.TryWait())
}

func TestSemaphoreWaitBlocksUntilPost(t *testing.T) {
	s := platform.NewSemaphore()
	woke := make(chan struct{})
	go func() {
		s.Wait()
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()
	select {
	case <-woke:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Post")
	}
}

func TestSemaphoreWaitContextCancel(t *testing.T) {
	s := platform.NewSemaphore()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.WaitContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the cancelled wait must not consume a later post
	s.Post()
	require.NoError(t, s.WaitContext(context.Background()))
}

func TestThreadsJoin(t *testing.T) {
	th := platform.NewThreads(nil)
	var n atomic.Int32
	for i := 0; i < 8; i++ {
		th.Go("worker", func() { n.Add(1) })
	}
	th.Go("panics", func() { panic("boom") })
	th.Wait()
	assert.Equal(t, int32(8), n.Load())
}

func TestPinRejectsBadCPU(t *testing.T) {
	done := make(chan error, 1)
	go func() { done <- platform.PinCurrentThread(-1) }()
	assert.Error(t, <-done)
}

func TestNewMutex(t *testing.T) {
	m := platform.NewMutex()
	m.Lock()
	m.Unlock()
}
