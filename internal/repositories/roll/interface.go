package roll

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/diceroom/internal/repositories/roll Repository

import (
	"context"

	"github.com/KirkDiggler/diceroom/internal/models"
)

// Repository defines the interface for roll persistence. Every
// successful write publishes the matching change event on the room's
// change stream.
type Repository interface {
	// CreateRoll persists a new roll, assigning its id and timestamp
	CreateRoll(ctx context.Context, input *CreateRollInput) (*CreateRollOutput, error)

	// GetRoll retrieves a roll by ID
	GetRoll(ctx context.Context, input *GetRollInput) (*models.Roll, error)

	// UpdateRoll replaces a roll's results and total in place
	UpdateRoll(ctx context.Context, input *UpdateRollInput) (*UpdateRollOutput, error)

	// DeleteRoll removes a roll
	DeleteRoll(ctx context.Context, input *DeleteRollInput) error

	// GetRecentRolls retrieves the most recent rolls for a room,
	// newest first
	GetRecentRolls(ctx context.Context, input *GetRecentRollsInput) (*GetRecentRollsOutput, error)
}
