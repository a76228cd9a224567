// Package refresh owns when cached screen data gets refetched. Three
// triggers funnel into one path: the user pulling to refresh, a realtime
// invalidation event, and a periodic safety-net poll that covers missed
// pushes. Handlers refetch from the server, so running one twice is
// harmless; delivery is at-least-once by construction.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dermatrack/mobile-core/internal/realtime"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// Func refetches one resource. It must be safe to call concurrently with
// itself.
type Func func(ctx context.Context) error

// Coordinator dispatches refreshes to registered per-resource handlers.
type Coordinator struct {
	source   realtime.Source
	interval time.Duration
	logger   *logging.Logger

	mu       sync.RWMutex
	handlers map[string]Func
}

// NewCoordinator wires a realtime source and a poll interval. An interval
// of zero disables the safety net, leaving pushes and manual refreshes.
func NewCoordinator(source realtime.Source, interval time.Duration, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		source:   source,
		interval: interval,
		logger:   logger,
		handlers: make(map[string]Func),
	}
}

// Register attaches the refetch handler for a resource, replacing any
// previous one. Screens register on mount.
func (c *Coordinator) Register(resource string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[resource] = fn
}

// Unregister detaches a resource's handler. Screens unregister on unmount
// so a dead screen stops causing fetches.
func (c *Coordinator) Unregister(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, resource)
}

// Trigger refreshes one resource now. Manual pull-to-refresh lands here.
func (c *Coordinator) Trigger(ctx context.Context, resource string) error {
	c.mu.RLock()
	fn, ok := c.handlers[resource]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("refresh: no handler for %q", resource)
	}
	return fn(ctx)
}

// Run consumes invalidation events and runs the safety-net poll until the
// context is canceled. Handler errors are logged and swallowed: a failed
// background refetch must never take the loop down, the next trigger
// retries naturally.
func (c *Coordinator) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if c.interval > 0 {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	events := c.source.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			c.refresh(ctx, ev.Resource)
		case <-tick:
			c.refreshAll(ctx)
		}
	}
}

func (c *Coordinator) refresh(ctx context.Context, resource string) {
	c.mu.RLock()
	fn, ok := c.handlers[resource]
	c.mu.RUnlock()
	if !ok {
		return
	}
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		c.logger.Warn("background refresh failed",
			slog.String("resource", resource),
			slog.String("error", err.Error()))
	}
}

func (c *Coordinator) refreshAll(ctx context.Context) {
	c.mu.RLock()
	resources := make([]string, 0, len(c.handlers))
	for r := range c.handlers {
		resources = append(resources, r)
	}
	c.mu.RUnlock()
	for _, r := range resources {
		c.refresh(ctx, r)
	}
}
