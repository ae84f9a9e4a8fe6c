package events

//go:generate mockgen -package=mocks -destination=mocks/mock_bus.go github.com/KirkDiggler/diceroom/internal/events Bus

import (
	"context"

	"github.com/KirkDiggler/diceroom/internal/models"
)

// Bus carries change-stream notifications between the store and room
// sessions. Delivery is at-least-once with no replay; subscribers only
// see events published while they are subscribed.
type Bus interface {
	// Publish sends a change event to the room's channel
	Publish(ctx context.Context, event *models.ChangeEvent) error

	// Subscribe opens a change stream scoped to one room. The returned
	// cancel func closes the stream and its channel.
	Subscribe(ctx context.Context, roomID string) (<-chan *models.ChangeEvent, func(), error)

	// SubscribeAll opens a change stream covering every room
	SubscribeAll(ctx context.Context) (<-chan *models.ChangeEvent, func(), error)
}
