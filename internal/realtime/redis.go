package realtime

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dermatrack/mobile-core/internal/observability/metrics"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// RedisSource subscribes to the per-user invalidation channel on Redis
// pub/sub. The server publishes one JSON Event per change.
type RedisSource struct {
	client  *redis.Client
	channel string
	logger  *logging.Logger
	metrics *metrics.ClientMetrics
	events  chan Event
}

// RedisConfig carries the connection settings the source needs.
type RedisConfig struct {
	Addr        string
	Password    string
	TLS         bool
	ChannelBase string
	UserID      string
}

// NewRedisSource builds a source for one user's channel, e.g.
// "dermatrack.user.user_123".
func NewRedisSource(cfg RedisConfig, logger *logging.Logger) *RedisSource {
	if logger == nil {
		logger = logging.Default()
	}
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &RedisSource{
		client:  redis.NewClient(opts),
		channel: fmt.Sprintf("%s.user.%s", cfg.ChannelBase, cfg.UserID),
		logger:  logger,
		events:  make(chan Event, 16),
	}
}

// WithMetrics attaches invalidation counters.
func (s *RedisSource) WithMetrics(m *metrics.ClientMetrics) *RedisSource {
	s.metrics = m
	return s
}

func (s *RedisSource) Events() <-chan Event { return s.events }

// Run subscribes and forwards events until the context is canceled. go-redis
// reconnects the subscription itself, so a dropped connection costs missed
// events at worst; the polling safety net covers the gap.
func (s *RedisSource) Run(ctx context.Context) error {
	defer close(s.events)

	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("realtime: subscribe %s: %w", s.channel, err)
	}
	s.logger.Info("realtime subscribed", slog.String("channel", s.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("realtime: subscription to %s closed", s.channel)
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				s.logger.Warn("realtime: dropping malformed event",
					slog.String("payload", msg.Payload))
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
}

// Close releases the underlying Redis connection.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
