package models

// EventType identifies the kind of store mutation an event describes
type EventType string

const (
	// EventInsert indicates a record was created
	EventInsert EventType = "insert"

	// EventUpdate indicates a record was modified in place
	EventUpdate EventType = "update"

	// EventDelete indicates a record was removed
	EventDelete EventType = "delete"
)

// TableName identifies which record family an event belongs to
type TableName string

const (
	// TableRolls is the roll record family
	TableRolls TableName = "rolls"

	// TableUsers is the member record family
	TableUsers TableName = "users"
)

// ChangeEvent is one change-stream notification for a room. Exactly one
// of the row pairs is populated, matching Table. Delivery is
// at-least-once; consumers must apply events idempotently.
type ChangeEvent struct {
	// Type is the mutation kind
	Type EventType `json:"event_type"`

	// Table is the record family the mutation applies to
	Table TableName `json:"table"`

	// RoomID scopes the event to a room
	RoomID string `json:"room_id"`

	// NewRoll is the roll after an insert or update
	NewRoll *Roll `json:"new_roll,omitempty"`

	// OldRoll is the roll before a delete
	OldRoll *Roll `json:"old_roll,omitempty"`

	// NewMember is the member after an insert or update
	NewMember *Member `json:"new_member,omitempty"`

	// OldMember is the member before a delete
	OldMember *Member `json:"old_member,omitempty"`
}

// ConnectionStatus is the room session connection state. The machine is
// connecting -> connected on successful initialization and
// connecting -> error on failure; both end states are terminal for the
// session.
type ConnectionStatus string

const (
	// StatusConnecting indicates initialization is in progress
	StatusConnecting ConnectionStatus = "connecting"

	// StatusConnected indicates the session is live
	StatusConnected ConnectionStatus = "connected"

	// StatusError indicates initialization failed; the session is dead
	StatusError ConnectionStatus = "error"
)
