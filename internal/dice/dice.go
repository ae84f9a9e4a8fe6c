package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/diceroom/internal/dice Roller

import (
	"math/rand"
	"time"
)

// Roller provides dice rolling functionality
type Roller interface {
	// Roll generates a single roll of a die with the given number of sides
	Roll(sides int) int

	// RollMany generates count independent rolls and returns the
	// individual results plus their sum
	RollMany(sides, count int) ([]int, int)
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// roller implements Roller using math/rand
type roller struct {
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &roller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *roller) Roll(sides int) int {
	if sides < 2 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}

// RollMany generates count independent rolls of a sides-sided die.
// Each die is a fresh draw; the same face can come up more than once.
func (r *roller) RollMany(sides, count int) ([]int, int) {
	if count < 1 {
		count = 1
	}

	results := make([]int, 0, count)
	total := 0

	for i := 0; i < count; i++ {
		roll := r.Roll(sides)
		results = append(results, roll)
		total += roll
	}

	return results, total
}
