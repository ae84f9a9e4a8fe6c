package member

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/diceroom/internal/events"
	"github.com/KirkDiggler/diceroom/internal/models"
)

const (
	// Key prefixes for Redis
	memberKeyPrefix      = "member:"       // member:<roomID>:<name>, unique by (name, room)
	roomMembersKeyPrefix = "room:members:" // Per-room index ordered by last-seen
)

// ErrMemberNotFound is returned when a member is not found
var ErrMemberNotFound = errors.New("member not found")

// Config holds configuration for the Redis member repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Event bus for change notifications
	EventBus events.Bus
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	bus    events.Bus
}

// NewRedis creates a new Redis-backed member repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.EventBus == nil {
		return nil, errors.New("event bus cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
		bus:    cfg.EventBus,
	}, nil
}

// UpsertMember creates or refreshes a member by (name, room)
func (r *redisRepository) UpsertMember(ctx context.Context, input *UpsertMemberInput) (*UpsertMemberOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.RoomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	if input.Name == "" {
		return nil, errors.New("name cannot be empty")
	}

	memberKey := fmt.Sprintf("%s%s:%s", memberKeyPrefix, input.RoomID, input.Name)

	// An existing member keeps its id; only last-seen moves
	eventType := models.EventUpdate
	member := &models.Member{
		Name:   input.Name,
		RoomID: input.RoomID,
	}

	existingJSON, err := r.client.Get(ctx, memberKey).Result()
	switch {
	case err == redis.Nil:
		member.ID = uuid.New().String()
		eventType = models.EventInsert
	case err != nil:
		return nil, fmt.Errorf("failed to get member: %w", err)
	default:
		var existing models.Member
		if err := json.Unmarshal([]byte(existingJSON), &existing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member: %w", err)
		}
		member.ID = existing.ID
	}

	member.LastSeen = time.Now()

	memberJSON, err := json.Marshal(member)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal member: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	pipe.Set(ctx, memberKey, memberJSON, 0)

	indexKey := fmt.Sprintf("%s%s", roomMembersKeyPrefix, input.RoomID)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(member.LastSeen.UnixNano()),
		Member: member.Name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save member: %w", err)
	}

	// Notify subscribers
	if err := r.bus.Publish(ctx, &models.ChangeEvent{
		Type:      eventType,
		Table:     models.TableUsers,
		RoomID:    input.RoomID,
		NewMember: member,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish member change: %w", err)
	}

	return &UpsertMemberOutput{Member: member}, nil
}

// GetRoomMembers retrieves the full roster for a room, most recently
// seen first
func (r *redisRepository) GetRoomMembers(ctx context.Context, input *GetRoomMembersInput) (*GetRoomMembersOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	indexKey := fmt.Sprintf("%s%s", roomMembersKeyPrefix, input.RoomID)
	names, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get member names: %w", err)
	}

	if len(names) == 0 {
		return &GetRoomMembersOutput{Members: []*models.Member{}}, nil
	}

	members := make([]*models.Member, 0, len(names))
	for _, name := range names {
		memberKey := fmt.Sprintf("%s%s:%s", memberKeyPrefix, input.RoomID, name)
		memberJSON, err := r.client.Get(ctx, memberKey).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get member %s: %w", name, err)
		}

		var member models.Member
		if err := json.Unmarshal([]byte(memberJSON), &member); err != nil {
			return nil, fmt.Errorf("failed to unmarshal member %s: %w", name, err)
		}

		members = append(members, &member)
	}

	return &GetRoomMembersOutput{Members: members}, nil
}
