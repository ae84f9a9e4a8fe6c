package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/diceroom/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/diceroom/internal/models"
)

// Repository defines the interface for room persistence
type Repository interface {
	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// EnsureRoom idempotently creates a room. A room that already
	// exists is not an error; the existing record is returned.
	EnsureRoom(ctx context.Context, input *EnsureRoomInput) (*models.Room, error)
}
