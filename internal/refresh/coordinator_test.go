package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermatrack/mobile-core/internal/realtime"
)

type scriptedSource struct {
	ch chan realtime.Event
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{ch: make(chan realtime.Event, 8)}
}

func (s *scriptedSource) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s *scriptedSource) Events() <-chan realtime.Event { return s.ch }

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) fn(context.Context) error {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	return nil
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestTriggerRunsHandler(t *testing.T) {
	c := NewCoordinator(newScriptedSource(), 0, nil)
	var appts counter
	c.Register(realtime.ResourceAppointments, appts.fn)

	require.NoError(t, c.Trigger(context.Background(), realtime.ResourceAppointments))
	assert.Equal(t, 1, appts.count())
}

func TestTriggerUnknownResource(t *testing.T) {
	c := NewCoordinator(newScriptedSource(), 0, nil)
	err := c.Trigger(context.Background(), "nope")
	assert.Error(t, err)
}

func TestInvalidationEventDispatches(t *testing.T) {
	src := newScriptedSource()
	c := NewCoordinator(src, 0, nil)
	var history, chat counter
	c.Register(realtime.ResourceHistory, history.fn)
	c.Register(realtime.ResourceChat, chat.fn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	src.ch <- realtime.Event{Resource: realtime.ResourceHistory}
	src.ch <- realtime.Event{Resource: realtime.ResourceHistory}
	src.ch <- realtime.Event{Resource: "unregistered"}

	require.Eventually(t, func() bool { return history.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, chat.count())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSafetyNetPollRefreshesEverything(t *testing.T) {
	src := newScriptedSource()
	c := NewCoordinator(src, 20*time.Millisecond, nil)
	var appts, history counter
	c.Register(realtime.ResourceAppointments, appts.fn)
	c.Register(realtime.ResourceHistory, history.fn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	require.Eventually(t, func() bool {
		return appts.count() >= 2 && history.count() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestHandlerErrorDoesNotStopLoop(t *testing.T) {
	src := newScriptedSource()
	c := NewCoordinator(src, 0, nil)
	c.Register(realtime.ResourceChat, func(context.Context) error {
		return errors.New("refetch failed")
	})
	var appts counter
	c.Register(realtime.ResourceAppointments, appts.fn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	src.ch <- realtime.Event{Resource: realtime.ResourceChat}
	src.ch <- realtime.Event{Resource: realtime.ResourceAppointments}

	require.Eventually(t, func() bool { return appts.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestUnregisterStopsDispatch(t *testing.T) {
	src := newScriptedSource()
	c := NewCoordinator(src, 0, nil)
	var appts counter
	c.Register(realtime.ResourceAppointments, appts.fn)
	c.Unregister(realtime.ResourceAppointments)

	err := c.Trigger(context.Background(), realtime.ResourceAppointments)
	assert.Error(t, err)
	assert.Equal(t, 0, appts.count())
}
