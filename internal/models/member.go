package models

import (
	"time"
)

// Member represents a user present in a room. Members are unique by
// (Name, RoomID) and upserted whenever the user is seen; there is no
// real liveness signal, presence means appearing in the last roster query.
type Member struct {
	// ID is the unique identifier for the member
	ID string `json:"id"`

	// Name is the member's display name, unique within the room
	Name string `json:"name"`

	// RoomID is the code of the room the member belongs to
	RoomID string `json:"room_id"`

	// LastSeen is when the member was last upserted
	LastSeen time.Time `json:"last_seen"`
}
