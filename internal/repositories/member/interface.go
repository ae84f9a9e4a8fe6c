package member

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/diceroom/internal/repositories/member Repository

import (
	"context"
)

// Repository defines the interface for room member persistence. Members
// are unique by (name, room); writes publish a users-table change event.
type Repository interface {
	// UpsertMember creates or refreshes a member by (name, room),
	// stamping the current time as last-seen. An existing member keeps
	// its id.
	UpsertMember(ctx context.Context, input *UpsertMemberInput) (*UpsertMemberOutput, error)

	// GetRoomMembers retrieves the full roster for a room, most
	// recently seen first
	GetRoomMembers(ctx context.Context, input *GetRoomMembersInput) (*GetRoomMembersOutput, error)
}
