package room

import (
	"time"

	"github.com/KirkDiggler/diceroom/internal/models"
)

type JoinRoomInput struct {
	RoomID   string
	UserName string
}

type SubmitRollInput struct {
	// Faces is the die kind, e.g. 6 for a d6
	Faces int

	// Count is how many dice to throw (1-10)
	Count int

	// Mode selects how the aggregate is derived. Statistics mode is
	// only honored for dice kinds that support it; anything else is
	// forced back to sum.
	Mode models.DisplayMode

	// StatisticsTarget is the counted face, required in statistics mode
	StatisticsTarget int
}

type RerollInput struct {
	RollID string
}

type DeleteRollInput struct {
	RollID string
}

// RosterMember is a roster entry as presented to callers. Presence is
// cosmetic: everyone in the last roster query is shown online.
type RosterMember struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
}

// Snapshot is a point-in-time copy of the session's projection
type Snapshot struct {
	Status  models.ConnectionStatus `json:"status"`
	RoomID  string                  `json:"room_id"`
	Rolls   []*models.Roll          `json:"rolls"`
	Members []*RosterMember         `json:"members"`
}
