// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread factory. Each thread is a goroutine, optionally locked to its OS
// thread and pinned to a CPU.

package platform

import (
	"fmt"
	"sync"

	"github.com/joeycumines/logiface"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

var _ api.ThreadFactory = (*Threads)(nil)

// Threads starts and joins named goroutines.
type Threads struct {
	// Logger is optional.
	Logger *logiface.Logger[logiface.Event]
	// PinCPU, if >= 0, locks every started thread to its OS thread and pins
	// it to that CPU.
	PinCPU int

	wg sync.WaitGroup
}

// NewThreads returns a factory that does not pin.
func NewThreads(logger *logiface.Logger[logiface.Event]) *Threads {
	return &Threads{Logger: logger, PinCPU: -1}
}

// Go runs fn on a new goroutine. A panic in fn is logged and swallowed so
// that Wait still returns.
func (t *Threads) Go(name string, fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.Logger.Err().
					Str("thread", name).
					Err(fmt.Errorf("panic: %v", r)).
					Log("thread panicked")
			}
		}()
		if t.PinCPU >= 0 {
			if err := PinCurrentThread(t.PinCPU); err != nil {
				t.Logger.Warning().
					Str("thread", name).
					Int("cpu", t.PinCPU).
					Err(err).
					Log("cpu pinning failed")
			}
		}
		t.Logger.Debug().Str("thread", name).Log("thread started")
		fn()
		t.Logger.Debug().Str("thread", name).Log("thread stopped")
	}()
}

// Wait blocks until every thread started by Go has returned.
func (t *Threads) Wait() {
	t.wg.Wait()
}
