package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/diceroom/internal/models"
)

const (
	// Key prefix for Redis
	roomKeyPrefix = "room:"
)

// ErrRoomNotFound is returned when a room is not found
var ErrRoomNotFound = errors.New("room not found")

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Ping verifies the store is reachable
func (r *redisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}

// EnsureRoom idempotently creates a room. First writer wins; a colliding
// code silently lands both groups in the same room.
func (r *redisRepository) EnsureRoom(ctx context.Context, input *EnsureRoomInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	room := &models.Room{
		ID:        input.RoomID,
		CreatedAt: time.Now(),
	}

	roomJSON, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room: %w", err)
	}

	roomKey := fmt.Sprintf("%s%s", roomKeyPrefix, input.RoomID)
	created, err := r.client.SetNX(ctx, roomKey, roomJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure room: %w", err)
	}

	if created {
		return room, nil
	}

	// The room already existed; return the stored record
	existingJSON, err := r.client.Get(ctx, roomKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var existing models.Room
	if err := json.Unmarshal([]byte(existingJSON), &existing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &existing, nil
}
