package models

import (
	"fmt"
	"time"
)

// DisplayMode controls how a roll's aggregate value is derived
type DisplayMode string

const (
	// DisplayModeSum shows the arithmetic sum of all dice
	DisplayModeSum DisplayMode = "sum"

	// DisplayModeStatistics counts occurrences of a chosen target face
	DisplayModeStatistics DisplayMode = "statistics"
)

// DiceTypes lists the supported die face counts
var DiceTypes = []int{4, 6, 8, 10, 12, 20, 100}

// StatisticsDiceTypes lists the face counts that support statistics mode
var StatisticsDiceTypes = []int{4, 6, 8, 10}

const (
	// MinDiceCount is the minimum number of dice per roll
	MinDiceCount = 1

	// MaxDiceCount is the maximum number of dice per roll
	MaxDiceCount = 10
)

// Roll represents a single dice-throw event in a room
type Roll struct {
	// ID is the unique identifier for the roll
	ID string `json:"id"`

	// RoomID is the code of the room the roll belongs to
	RoomID string `json:"room_id"`

	// UserName is the display name of the roller
	UserName string `json:"user_name"`

	// DiceType is the die kind in "d<faces>" form, e.g. "d6"
	DiceType string `json:"dice_type"`

	// DiceCount is how many dice were thrown
	DiceCount int `json:"dice_count"`

	// Results holds the individual face values, one per die
	Results []int `json:"results"`

	// Total is the aggregate value derived from Results per the display mode
	Total int `json:"total"`

	// ResultDisplayMode is how Total was derived
	ResultDisplayMode DisplayMode `json:"result_display_mode"`

	// StatisticsTarget is the counted face, set only in statistics mode
	StatisticsTarget *int `json:"statistics_target,omitempty"`

	// CreatedAt is when the roll was made
	CreatedAt time.Time `json:"created_at"`
}

// Faces returns the roll's die face count, parsed from DiceType
func (r *Roll) Faces() int {
	var faces int
	if _, err := fmt.Sscanf(r.DiceType, "d%d", &faces); err != nil {
		return 0
	}
	return faces
}

// DiceTypeName formats a face count as a die kind, e.g. 6 -> "d6"
func DiceTypeName(faces int) string {
	return fmt.Sprintf("d%d", faces)
}

// ValidDiceType reports whether faces is a supported die kind
func ValidDiceType(faces int) bool {
	for _, t := range DiceTypes {
		if t == faces {
			return true
		}
	}
	return false
}

// SupportsStatistics reports whether faces supports statistics mode
func SupportsStatistics(faces int) bool {
	for _, t := range StatisticsDiceTypes {
		if t == faces {
			return true
		}
	}
	return false
}

// ComputeTotal derives a roll's aggregate value from its raw results.
// In sum mode it is the arithmetic sum; in statistics mode it is the
// number of results equal to target.
func ComputeTotal(mode DisplayMode, target *int, results []int) int {
	if mode == DisplayModeStatistics && target != nil {
		count := 0
		for _, r := range results {
			if r == *target {
				count++
			}
		}
		return count
	}

	sum := 0
	for _, r := range results {
		sum += r
	}
	return sum
}
