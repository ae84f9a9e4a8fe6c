package roll

import "github.com/KirkDiggler/diceroom/internal/models"

type CreateRollInput struct {
	RoomID            string
	UserName          string
	DiceType          string
	DiceCount         int
	Results           []int
	Total             int
	ResultDisplayMode models.DisplayMode
	StatisticsTarget  *int
}

type CreateRollOutput struct {
	Roll *models.Roll
}

type GetRollInput struct {
	RollID string
}

type UpdateRollInput struct {
	RollID  string
	Results []int
	Total   int
}

type UpdateRollOutput struct {
	Roll *models.Roll
}

type DeleteRollInput struct {
	RollID string
}

type GetRecentRollsInput struct {
	RoomID string
	Limit  int
}

type GetRecentRollsOutput struct {
	Rolls []*models.Roll
}
