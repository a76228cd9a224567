package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dermatrack/mobile-core/internal/observability/metrics"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// WebsocketSource reads invalidation events from the API server's websocket
// endpoint. Used where the deployment has no Redis reachable from clients.
type WebsocketSource struct {
	url       string
	token     string
	logger    *logging.Logger
	metrics   *metrics.ClientMetrics
	events    chan Event
	backoff   time.Duration
	reconnect bool
}

// NewWebsocketSource builds a source that dials url with the session token
// as a bearer header and reconnects with a fixed backoff until canceled.
func NewWebsocketSource(url, token string, logger *logging.Logger) *WebsocketSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebsocketSource{
		url:       url,
		token:     token,
		logger:    logger,
		events:    make(chan Event, 16),
		backoff:   5 * time.Second,
		reconnect: true,
	}
}

// WithMetrics attaches invalidation counters.
func (s *WebsocketSource) WithMetrics(m *metrics.ClientMetrics) *WebsocketSource {
	s.metrics = m
	return s
}

// WithBackoff sets the delay between reconnect attempts.
func (s *WebsocketSource) WithBackoff(d time.Duration) *WebsocketSource {
	s.backoff = d
	return s
}

func (s *WebsocketSource) Events() <-chan Event { return s.events }

// Run dials and reads until the context is canceled, redialing after every
// connection failure.
func (s *WebsocketSource) Run(ctx context.Context) error {
	defer close(s.events)
	for {
		if err := s.readConn(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("realtime websocket dropped",
				slog.String("url", s.url),
				slog.String("error", err.Error()))
		}
		if !s.reconnect {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff):
		}
	}
}

func (s *WebsocketSource) readConn(ctx context.Context) error {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if err != nil {
		return fmt.Errorf("realtime: dial %s: %w", s.url, err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the context goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("realtime: read: %w", err)
		}
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			s.logger.Warn("realtime: dropping malformed frame",
				slog.String("payload", string(payload)))
			continue
		}
		s.metrics.ObserveInvalidation(ev.Resource)
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
