package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/diceroom/internal/models"
)

const (
	// Channel prefix for room change streams
	changeChannelPrefix = "room:changes:"

	// Pattern matching every room's change channel
	changeChannelPattern = changeChannelPrefix + "*"

	// Buffer size for subscriber channels
	subscriberBuffer = 64
)

// Config holds configuration for the Redis event bus
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisBus implements the Bus interface using Redis pub/sub
type redisBus struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event bus
func NewRedis(cfg *Config) (*redisBus, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisBus{
		client: cfg.RedisClient,
	}, nil
}

// Publish sends a change event to the room's channel
func (b *redisBus) Publish(ctx context.Context, event *models.ChangeEvent) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	if event.RoomID == "" {
		return errors.New("event room ID cannot be empty")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := fmt.Sprintf("%s%s", changeChannelPrefix, event.RoomID)
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a change stream scoped to one room
func (b *redisBus) Subscribe(ctx context.Context, roomID string) (<-chan *models.ChangeEvent, func(), error) {
	if roomID == "" {
		return nil, nil, errors.New("room ID cannot be empty")
	}

	channel := fmt.Sprintf("%s%s", changeChannelPrefix, roomID)
	sub := b.client.Subscribe(ctx, channel)

	// Confirm the subscription before handing out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to room %s: %w", roomID, err)
	}

	return pump(sub), func() { _ = sub.Close() }, nil
}

// SubscribeAll opens a change stream covering every room
func (b *redisBus) SubscribeAll(ctx context.Context) (<-chan *models.ChangeEvent, func(), error) {
	sub := b.client.PSubscribe(ctx, changeChannelPattern)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to change channels: %w", err)
	}

	return pump(sub), func() { _ = sub.Close() }, nil
}

// pump decodes raw pub/sub messages into change events until the
// subscription closes. Undecodable payloads are dropped.
func pump(sub *redis.PubSub) <-chan *models.ChangeEvent {
	out := make(chan *models.ChangeEvent, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			out <- &event
		}
	}()

	return out
}
