package room

type EnsureRoomInput struct {
	RoomID string
}
