package roomcode

import (
	"math/rand"
	"time"

	"github.com/KirkDiggler/diceroom/internal/models"
)

// Generator produces room codes
type Generator struct {
	random *rand.Rand
}

// Config for the room code generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new room code generator
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Generator{
		random: rand.New(source),
	}
}

// Generate returns a 6-character code drawn uniformly, with repetition,
// from A-Z and 0-9. Codes are not checked for uniqueness against
// existing rooms; the first writer wins via idempotent upsert.
func (g *Generator) Generate() string {
	code := make([]byte, models.RoomCodeLength)
	for i := range code {
		code[i] = models.RoomCodeAlphabet[g.random.Intn(len(models.RoomCodeAlphabet))]
	}
	return string(code)
}
