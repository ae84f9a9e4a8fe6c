package member

import "github.com/KirkDiggler/diceroom/internal/models"

type UpsertMemberInput struct {
	RoomID string
	Name   string
}

type UpsertMemberOutput struct {
	Member *models.Member
}

type GetRoomMembersInput struct {
	RoomID string
}

type GetRoomMembersOutput struct {
	Members []*models.Member
}
