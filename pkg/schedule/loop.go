// Package schedule runs periodic tasks on cancellable timers.
//
// A Loop executes one function eagerly on start and then on every timer
// firing until stopped. Ticks of the same loop never overlap: the loop
// body runs on a single goroutine, so a firing that comes due while the
// previous tick is still executing is dropped rather than run
// concurrently. Independent loops run on independent goroutines and
// never block one another.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TickFunc is one unit of periodic work. Errors are reported, not fatal:
// a failed tick never stops the loop.
type TickFunc func(ctx context.Context) error

// Loop drives a TickFunc at a fixed interval.
type Loop struct {
	name     string
	interval time.Duration
	tick     TickFunc
	clock    Clock
	logger   *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	started  bool
	mu       sync.Mutex
}

// NewLoop creates a loop that runs tick every interval. A nil clock uses
// the real clock; a nil logger uses slog.Default.
func NewLoop(name string, interval time.Duration, tick TickFunc, clock Clock, logger *slog.Logger) *Loop {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		name:     name,
		interval: interval,
		tick:     tick,
		clock:    clock,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop goroutine. The first tick runs immediately, not
// at the first timer firing. Start is a no-op after the first call.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	go l.run(ctx)
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)

	l.logger.Info("starting loop", "loop", l.name, "interval", l.interval)

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	l.runTick(ctx)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("loop stopped", "loop", l.name, "reason", "context")
			return
		case <-l.stop:
			l.logger.Info("loop stopped", "loop", l.name, "reason", "stop")
			return
		case <-ticker.C():
			l.runTick(ctx)
		}
	}
}

func (l *Loop) runTick(ctx context.Context) {
	if err := l.tick(ctx); err != nil && ctx.Err() == nil {
		l.logger.Error("tick failed", "loop", l.name, "error", err)
	}
}

// Stop cancels the timer and waits for any in-flight tick to finish.
// Stop is idempotent; stopping a loop that was never started returns
// once its goroutine would have nothing to do.
func (l *Loop) Stop() {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()

	l.stopOnce.Do(func() { close(l.stop) })
	if started {
		<-l.done
	}
}
