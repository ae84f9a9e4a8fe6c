package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/diceroom/internal/models"
)

func TestFormatRoll(t *testing.T) {
	roll := &models.Roll{
		ID:                "roll-1",
		RoomID:            "AB12C9",
		UserName:          "Seal",
		DiceType:          "d6",
		DiceCount:         3,
		Results:           []int{2, 4, 6},
		Total:             12,
		ResultDisplayMode: models.DisplayModeSum,
		CreatedAt:         time.Now(),
	}

	assert.Equal(t, "🎲 **Seal** rolled 3×d6 in `AB12C9`: total 12", FormatRoll(roll))
}

func TestFormatRollStatistics(t *testing.T) {
	target := 4
	roll := &models.Roll{
		ID:                "roll-2",
		RoomID:            "AB12C9",
		UserName:          "Seal",
		DiceType:          "d4",
		DiceCount:         5,
		Results:           []int{4, 1, 4, 2, 3},
		Total:             2,
		ResultDisplayMode: models.DisplayModeStatistics,
		StatisticsTarget:  &target,
	}

	assert.Equal(t, "🎲 **Seal** rolled 5×d4 in `AB12C9`: 2 dice showing 4", FormatRoll(roll))
}
