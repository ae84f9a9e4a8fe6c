package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalSumMode(t *testing.T) {
	total := ComputeTotal(DisplayModeSum, nil, []int{2, 4, 6})
	assert.Equal(t, 12, total)
}

func TestComputeTotalStatisticsMode(t *testing.T) {
	target := 4
	total := ComputeTotal(DisplayModeStatistics, &target, []int{2, 4, 6})
	assert.Equal(t, 1, total)

	target = 3
	total = ComputeTotal(DisplayModeStatistics, &target, []int{3, 3, 1, 3})
	assert.Equal(t, 3, total)

	target = 5
	total = ComputeTotal(DisplayModeStatistics, &target, []int{1, 2, 3})
	assert.Equal(t, 0, total)
}

func TestComputeTotalStatisticsWithoutTarget(t *testing.T) {
	// A missing target falls back to summing
	total := ComputeTotal(DisplayModeStatistics, nil, []int{2, 4, 6})
	assert.Equal(t, 12, total)
}

func TestRollFaces(t *testing.T) {
	roll := &Roll{DiceType: "d20"}
	assert.Equal(t, 20, roll.Faces())

	roll = &Roll{DiceType: "d100"}
	assert.Equal(t, 100, roll.Faces())

	roll = &Roll{DiceType: "bogus"}
	assert.Equal(t, 0, roll.Faces())
}

func TestDiceTypeName(t *testing.T) {
	assert.Equal(t, "d6", DiceTypeName(6))
	assert.Equal(t, "d100", DiceTypeName(100))
}

func TestValidDiceType(t *testing.T) {
	for _, faces := range []int{4, 6, 8, 10, 12, 20, 100} {
		assert.True(t, ValidDiceType(faces))
	}
	assert.False(t, ValidDiceType(2))
	assert.False(t, ValidDiceType(7))
}

func TestSupportsStatistics(t *testing.T) {
	for _, faces := range []int{4, 6, 8, 10} {
		assert.True(t, SupportsStatistics(faces))
	}
	for _, faces := range []int{12, 20, 100} {
		assert.False(t, SupportsStatistics(faces))
	}
}

func TestValidRoomCode(t *testing.T) {
	assert.True(t, ValidRoomCode("AB12C9"))
	assert.True(t, ValidRoomCode("ZZZZZZ"))
	assert.False(t, ValidRoomCode("ab12c9"))
	assert.False(t, ValidRoomCode("AB12C"))
	assert.False(t, ValidRoomCode("AB12C99"))
	assert.False(t, ValidRoomCode("AB-2C9"))
}
