package roll

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
	rollKeyPrefix      = "roll:"
	roomRollsKeyPrefix = "room:rolls:" // Per-room index ordered by creation time
)

// ErrRollNotFound is returned when a roll is not found
var ErrRollNotFound = errors.New("roll not found")

// Config holds configuration for the Redis roll repository
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

// NewRedis creates a new Redis-backed roll repository
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

// CreateRoll persists a new roll and publishes the insert event
func (r *redisRepository) CreateRoll(ctx context.Context, input *CreateRollInput) (*CreateRollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.RoomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	if input.UserName == "" {
		return nil, errors.New("user name cannot be empty")
	}

	if len(input.Results) == 0 {
		return nil, errors.New("results cannot be empty")
	}

	// Create the roll
	roll := &models.Roll{
		ID:                uuid.New().String(),
		RoomID:            input.RoomID,
		UserName:          input.UserName,
		DiceType:          input.DiceType,
		DiceCount:         input.DiceCount,
		Results:           input.Results,
		Total:             input.Total,
		ResultDisplayMode: input.ResultDisplayMode,
		StatisticsTarget:  input.StatisticsTarget,
		CreatedAt:         time.Now(),
	}

	if err := r.saveRoll(ctx, roll, true); err != nil {
		return nil, err
	}

	// Notify subscribers
	if err := r.bus.Publish(ctx, &models.ChangeEvent{
		Type:    models.EventInsert,
		Table:   models.TableRolls,
		RoomID:  roll.RoomID,
		NewRoll: roll,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish roll insert: %w", err)
	}

	return &CreateRollOutput{Roll: roll}, nil
}

// GetRoll retrieves a roll by ID from Redis
func (r *redisRepository) GetRoll(ctx context.Context, input *GetRollInput) (*models.Roll, error) {
	if input == nil || input.RollID == "" {
		return nil, errors.New("input and roll ID cannot be empty")
	}

	rollKey := fmt.Sprintf("%s%s", rollKeyPrefix, input.RollID)
	rollJSON, err := r.client.Get(ctx, rollKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRollNotFound
		}
		return nil, fmt.Errorf("failed to get roll: %w", err)
	}

	var roll models.Roll
	if err := json.Unmarshal([]byte(rollJSON), &roll); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roll: %w", err)
	}

	return &roll, nil
}

// UpdateRoll replaces a roll's results and total in place and publishes
// the update event. The roll's author, dice kind, count, display mode
// and target are preserved.
func (r *redisRepository) UpdateRoll(ctx context.Context, input *UpdateRollInput) (*UpdateRollOutput, error) {
	if input == nil || input.RollID == "" {
		return nil, errors.New("input and roll ID cannot be empty")
	}

	if len(input.Results) == 0 {
		return nil, errors.New("results cannot be empty")
	}

	roll, err := r.GetRoll(ctx, &GetRollInput{RollID: input.RollID})
	if err != nil {
		return nil, err
	}

	roll.Results = input.Results
	roll.Total = input.Total

	if err := r.saveRoll(ctx, roll, false); err != nil {
		return nil, err
	}

	if err := r.bus.Publish(ctx, &models.ChangeEvent{
		Type:    models.EventUpdate,
		Table:   models.TableRolls,
		RoomID:  roll.RoomID,
		NewRoll: roll,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish roll update: %w", err)
	}

	return &UpdateRollOutput{Roll: roll}, nil
}

// DeleteRoll removes a roll from Redis and publishes the delete event
func (r *redisRepository) DeleteRoll(ctx context.Context, input *DeleteRollInput) error {
	if input == nil || input.RollID == "" {
		return errors.New("input and roll ID cannot be empty")
	}

	// Get the roll first so the event can carry the old row
	roll, err := r.GetRoll(ctx, &GetRollInput{RollID: input.RollID})
	if err != nil {
		return err
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	rollKey := fmt.Sprintf("%s%s", rollKeyPrefix, input.RollID)
	pipe.Del(ctx, rollKey)

	indexKey := fmt.Sprintf("%s%s", roomRollsKeyPrefix, roll.RoomID)
	pipe.ZRem(ctx, indexKey, roll.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete roll: %w", err)
	}

	if err := r.bus.Publish(ctx, &models.ChangeEvent{
		Type:    models.EventDelete,
		Table:   models.TableRolls,
		RoomID:  roll.RoomID,
		OldRoll: roll,
	}); err != nil {
		return fmt.Errorf("failed to publish roll delete: %w", err)
	}

	return nil
}

// GetRecentRolls retrieves the most recent rolls for a room, newest first
func (r *redisRepository) GetRecentRolls(ctx context.Context, input *GetRecentRollsInput) (*GetRecentRollsOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	limit := input.Limit
	if limit < 1 {
		return nil, errors.New("limit must be positive")
	}

	// Newest first from the per-room index
	indexKey := fmt.Sprintf("%s%s", roomRollsKeyPrefix, input.RoomID)
	rollIDs, err := r.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent roll IDs: %w", err)
	}

	if len(rollIDs) == 0 {
		return &GetRecentRollsOutput{Rolls: []*models.Roll{}}, nil
	}

	rolls := make([]*models.Roll, 0, len(rollIDs))
	for _, rollID := range rollIDs {
		roll, err := r.GetRoll(ctx, &GetRollInput{RollID: rollID})
		if err != nil {
			// Roll was deleted between reading the index and the record
			if errors.Is(err, ErrRollNotFound) {
				continue
			}
			return nil, err
		}
		rolls = append(rolls, roll)
	}

	return &GetRecentRollsOutput{Rolls: rolls}, nil
}

// saveRoll writes the roll record, indexing it on create
func (r *redisRepository) saveRoll(ctx context.Context, roll *models.Roll, index bool) error {
	rollJSON, err := json.Marshal(roll)
	if err != nil {
		return fmt.Errorf("failed to marshal roll: %w", err)
	}

	pipe := r.client.Pipeline()

	rollKey := fmt.Sprintf("%s%s", rollKeyPrefix, roll.ID)
	pipe.Set(ctx, rollKey, rollJSON, 0) // No expiration, rooms are never purged

	if index {
		indexKey := fmt.Sprintf("%s%s", roomRollsKeyPrefix, roll.RoomID)
		pipe.ZAdd(ctx, indexKey, redis.Z{
			Score:  float64(roll.CreatedAt.UnixNano()),
			Member: roll.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save roll: %w", err)
	}

	return nil
}
