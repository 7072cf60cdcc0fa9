// File: facade/substrate.go
// Unified facade over the dispatch substrate.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Substrate aggregates the tick clock, the event dispatcher, the worker
// executor and the control plane behind one lifecycle. Worker count follows
// the Control "workers" key on reload.

package facade

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/sugawarayuuta/sonnet"

	"github.com/DaveBerkeley/panglos-sub001/adapters"
	"github.com/DaveBerkeley/panglos-sub001/api"
	"github.com/DaveBerkeley/panglos-sub001/core/evq"
	"github.com/DaveBerkeley/panglos-sub001/internal/concurrency"
)

// Substrate is the main facade type.
type Substrate struct {
	config     *Config
	logger     *logiface.Logger[logiface.Event]
	control    *adapters.ControlAdapter
	clock      *concurrency.MonotonicClock
	dispatcher *concurrency.Dispatcher
	executor   *concurrency.Executor
	heartbeat  *evq.Event

	mu      sync.Mutex
	started bool
	stopped bool
	runErr  chan error
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Substrate)(nil)

// Option customises New.
type Option func(s *Substrate)

// WithLogger replaces the logger built from Config.LogLevel.
func WithLogger(l *logiface.Logger[logiface.Event]) Option {
	return func(s *Substrate) { s.logger = l }
}

// New validates cfg and constructs every component. A nil cfg means
// DefaultConfig.
func New(cfg *Config, opts ...Option) (*Substrate, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Substrate{config: cfg, runErr: make(chan error, 1)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		l, err := NewLogger(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("facade: logger: %w", err)
		}
		s.logger = l
	}

	s.control = adapters.NewControlAdapter()
	s.clock = concurrency.NewMonotonicClock(cfg.TickPeriod, api.Tick(cfg.TickStart))

	dopts := []concurrency.DispatcherOption{concurrency.WithDispatcherLogger(s.logger)}
	eopts := []concurrency.ExecutorOption{concurrency.WithExecutorLogger(s.logger)}
	if cfg.MaxIdle > 0 {
		dopts = append(dopts, concurrency.WithMaxIdle(cfg.MaxIdle))
	}
	if cfg.Metrics {
		dopts = append(dopts, concurrency.WithDispatcherMetrics(s.control.Metrics()))
		eopts = append(eopts, concurrency.WithExecutorMetrics(s.control.Metrics()))
	}
	s.dispatcher = concurrency.NewDispatcher(s.clock, cfg.TickPeriod, dopts...)
	s.executor = concurrency.NewExecutor(cfg.Workers, eopts...)

	if cfg.Debug {
		s.control.RegisterDebugProbe("dispatcher.pending", func() any { return s.dispatcher.Pending() })
		s.control.RegisterDebugProbe("executor.pending", func() any { return s.executor.Pending() })
		s.control.RegisterDebugProbe("executor.workers", func() any { return s.executor.NumWorkers() })
		s.control.RegisterDebugProbe("clock.tick", func() any { return uint32(s.clock.Now()) })
	}

	// Expose configuration values via Control for observability and reload.
	_ = s.control.SetConfig(map[string]any{
		"tick_period": cfg.TickPeriod.String(),
		"workers":     s.executor.NumWorkers(),
		"heartbeat":   int(cfg.Heartbeat),
	})
	s.control.OnReload(s.reload)
	return s, nil
}

// reload applies Control overrides that can change at runtime.
func (s *Substrate) reload() {
	cur := s.executor.NumWorkers()
	n := s.control.ConfigInt("workers", cur)
	if n <= 0 || n == cur {
		return
	}
	s.logger.Info().Int("from", cur).Int("to", n).Log("resizing executor")
	s.executor.Resize(n)
}

// Start runs the dispatcher until ctx is done or Shutdown is called.
// Subsequent calls to Start() have no effect.
func (s *Substrate) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return api.ErrClosed
	}
	if s.started {
		return nil
	}
	if s.config.Heartbeat > 0 {
		s.heartbeat = s.dispatcher.After("heartbeat", api.Tick(s.config.Heartbeat), s.beat)
	}
	go func() {
		s.runErr <- s.dispatcher.Run(ctx)
	}()
	s.started = true
	s.logger.Info().
		Dur("tick_period", s.config.TickPeriod).
		Int("workers", s.executor.NumWorkers()).
		Log("substrate started")
	return nil
}

// beat refreshes gauges and reschedules itself.
func (s *Substrate) beat(ev *evq.Event, now evq.Tick) {
	s.control.SetMetric("executor.pending", s.executor.Pending())
	s.control.SetMetric("executor.workers", s.executor.NumWorkers())
	s.control.SetMetric("dispatcher.pending", s.dispatcher.Pending())
	s.control.SetMetric("clock.tick", uint32(now))
	ev.When += evq.Tick(s.config.Heartbeat)
	s.dispatcher.Add(ev)
}

// Shutdown stops the dispatcher, then drains and joins the executor.
// It returns the dispatcher's error unless that was context cancellation.
func (s *Substrate) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.dispatcher.Stop()
	s.executor.Close()

	var err error
	if s.started {
		err = <-s.runErr
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	s.logger.Info().
		Uint64("fired", s.dispatcher.Fired()).
		Uint64("completed", s.executor.Completed()).
		Log("substrate stopped")
	return err
}

// Submit dispatches a task to the executor pool for asynchronous execution.
func (s *Substrate) Submit(task func()) error {
	return s.executor.Submit(task)
}

// After schedules h to run delay ticks from now on the dispatcher goroutine.
func (s *Substrate) After(name string, delay api.Tick, h evq.Handler) *evq.Event {
	return s.dispatcher.After(name, delay, h)
}

// AfterTask schedules task onto the executor delay ticks from now, so slow
// work does not hold up other events.
func (s *Substrate) AfterTask(name string, delay api.Tick, task func()) *evq.Event {
	return s.dispatcher.After(name, delay, func(ev *evq.Event, now evq.Tick) {
		if err := s.executor.Submit(task); err != nil {
			s.logger.Warning().Str("event", ev.Name).Err(err).Log("task dropped")
		}
	})
}

// StatsJSON encodes the combined metrics and debug probes.
func (s *Substrate) StatsJSON() ([]byte, error) {
	return sonnet.Marshal(s.control.Stats())
}

// GetControl returns the Control interface for dynamic config and metrics.
func (s *Substrate) GetControl() api.Control { return s.control }

// GetExecutor returns the worker pool behind the api.Executor contract.
func (s *Substrate) GetExecutor() api.Executor { return adapters.NewExecutorAdapter(s.executor) }

// Dispatcher exposes the event dispatcher.
func (s *Substrate) Dispatcher() *concurrency.Dispatcher { return s.dispatcher }

// Executor exposes the worker pool.
func (s *Substrate) Executor() *concurrency.Executor { return s.executor }

// Clock exposes the tick source.
func (s *Substrate) Clock() api.Clock { return s.clock }

// Logger returns the substrate's logger.
func (s *Substrate) Logger() *logiface.Logger[logiface.Event] { return s.logger }
