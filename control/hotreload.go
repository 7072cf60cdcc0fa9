// control/hotreload.go
// Author: momentics <momentics@gmail.com>
//
// Reload hook registry for components that re-read configuration.
// Constructed and passed explicitly; there is no process-wide list.

package control

import "sync"

// ReloadHooks is a list of component reload listeners.
type ReloadHooks struct {
	mu    sync.Mutex
	hooks []func()
}

// Register adds a new component reload listener.
func (r *ReloadHooks) Register(fn func()) {
	r.mu.Lock()
	r.hooks = append(r.hooks, fn)
	r.mu.Unlock()
}

// Trigger invokes all hooks synchronously, in registration order.
func (r *ReloadHooks) Trigger() {
	r.mu.Lock()
	hooks := append([]func(){}, r.hooks...)
	r.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
