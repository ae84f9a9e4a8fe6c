package room

import (
	"context"
)

// Service creates live room sessions
type Service interface {
	// JoinRoom runs the room initialization protocol and returns a
	// live session. On failure the returned session (if any) carries
	// a terminal error status; the caller must re-trigger the join.
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*Session, error)
}
