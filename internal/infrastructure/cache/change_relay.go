package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/shared"
)

const defaultChannelPrefix = "shop"

// Publisher is the part of the Redis client the relay needs
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// ChangeNotification is the JSON payload sent to Redis subscribers
type ChangeNotification struct {
	EventID     uuid.UUID       `json:"event_id"`
	Channel     string          `json:"channel"`
	Action      string          `json:"action"`
	ShopID      uuid.UUID       `json:"shop_id"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// RedisChangeRelay forwards bus events to Redis pub/sub so dashboards
// connected to other processes see catalog and ledger changes.
// It subscribes to every channel of the local bus.
type RedisChangeRelay struct {
	client  Publisher
	prefix  string
	logger  *zap.Logger
	timeout time.Duration
}

// RedisChangeRelayOption is a functional option for configuring the relay
type RedisChangeRelayOption func(*RedisChangeRelay)

// WithRelayPrefix sets the channel prefix
func WithRelayPrefix(prefix string) RedisChangeRelayOption {
	return func(r *RedisChangeRelay) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithRelayLogger sets the logger for the relay
func WithRelayLogger(logger *zap.Logger) RedisChangeRelayOption {
	return func(r *RedisChangeRelay) {
		r.logger = logger
	}
}

// NewRedisChangeRelay creates a relay publishing through client
func NewRedisChangeRelay(client Publisher, opts ...RedisChangeRelayOption) *RedisChangeRelay {
	r := &RedisChangeRelay{
		client:  client,
		prefix:  defaultChannelPrefix,
		logger:  zap.NewNop(),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EventTypes returns nil so the relay receives every channel
func (r *RedisChangeRelay) EventTypes() []string {
	return nil
}

// Handle publishes the event to shop:<shop_id>:<channel>
func (r *RedisChangeRelay) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := ChangeNotification{
		EventID:     event.EventID(),
		Channel:     event.EventType(),
		Action:      event.Action(),
		ShopID:      event.ShopID(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal change notification: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	channel := ShopChannel(r.prefix, event.ShopID().String(), event.EventType())
	if err := r.client.Publish(pubCtx, channel, data).Err(); err != nil {
		r.logger.Error("Failed to publish change notification",
			zap.String("channel", channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish change notification: %w", err)
	}

	r.logger.Debug("Published change notification",
		zap.String("channel", channel),
		zap.String("action", event.Action()))

	return nil
}

// Ensure RedisChangeRelay implements EventHandler
var _ shared.EventHandler = (*RedisChangeRelay)(nil)
