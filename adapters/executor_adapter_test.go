package adapters_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveBerkeley/panglos-sub001/adapters"
	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/internal/concurrency"
)

func TestExecutorAdapter(t *testing.T) {
	var exec api.Executor = adapters.NewExecutorAdapter(concurrency.NewExecutor(2))
	assert.Equal(t, 2, exec.NumWorkers())

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for i := 1; i <= 50; i++ {
		i := i // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		wg.Add(1)
		require.NoError(t, exec.Submit(func() {
			defer wg.Done()
			mu.Lock()
			total += i
			mu.Unlock()
		}))
	}
	wg.Wait()
	assert.Equal(t, 1275, total)

	exec.Resize(4)
	assert.Equal(t, 4, exec.NumWorkers())

	require.ErrorIs(t, exec.Submit(nil), concurrency.ErrNilTask)
	require.NoError(t, exec.(api.GracefulShutdown).Shutdown())
	require.ErrorIs(t, exec.Submit(func() {}), api.ErrClosed)
}
