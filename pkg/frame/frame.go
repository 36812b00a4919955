// Package frame schedules single-shot callbacks on a fixed tick, the way
// a browser runs animation-frame callbacks.
//
// Callbacks requested before a tick run on that tick in request order.
// Callbacks requested while a tick is running are queued for the next one.
package frame

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is roughly 60 frames per second.
const DefaultInterval = time.Second / 60

// ID identifies a requested callback. IDs start at 1.
type ID uint64

// Callback receives the tick time.
type Callback func(now time.Time)

type pending struct {
	id ID
	fn Callback
}

// Loop is a frame scheduler. The zero value is not usable; use New.
type Loop struct {
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	nextID   ID
	queue    []pending
	inflight map[ID]struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New creates a Loop.
func New(opts ...Option) *Loop {
	l := &Loop{interval: DefaultInterval}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Request schedules fn for the next tick.
func (l *Loop) Request(fn Callback) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.queue = append(l.queue, pending{id: l.nextID, fn: fn})
	return l.nextID
}

// Cancel removes a pending callback. It reports whether id was pending.
func (l *Loop) Cancel(id ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, p := range l.queue {
		if p.id == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return true
		}
	}
	if _, ok := l.inflight[id]; ok {
		delete(l.inflight, id)
		return true
	}
	return false
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Tick runs every callback queued before the call and returns how many
// ran. A callback cancelled by an earlier one in the same tick is skipped.
func (l *Loop) Tick(now time.Time) int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.inflight = make(map[ID]struct{}, len(batch))
	for _, p := range batch {
		l.inflight[p.id] = struct{}{}
	}
	l.mu.Unlock()

	ran := 0
	for _, p := range batch {
		if !l.take(p.id) {
			continue
		}
		if p.fn != nil {
			p.fn(now)
		}
		ran++
	}
	return ran
}

// take claims a callback of the running tick.
func (l *Loop) take(id ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.inflight[id]; !ok {
		return false
	}
	delete(l.inflight, id)
	return true
}

// Run ticks every interval until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("frame loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}
