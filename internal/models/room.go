package models

import (
	"time"
)

// RoomCodeLength is the length of a room code
const RoomCodeLength = 6

// RoomCodeAlphabet is the set of characters a room code is drawn from
const RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Room represents a dice-rolling room, identified by its short code.
// Rooms are created lazily on first visit and never purged.
type Room struct {
	// ID is the 6-character room code
	ID string `json:"id"`

	// CreatedAt is when the room was first visited
	CreatedAt time.Time `json:"created_at"`
}

// ValidRoomCode reports whether code is a well-formed room code
func ValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
