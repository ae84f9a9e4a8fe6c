package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollIsInRange(t *testing.T) {
	roller := New(&Config{Seed: 42})

	for _, sides := range []int{4, 6, 8, 10, 12, 20, 100} {
		for i := 0; i < 1000; i++ {
			roll := roller.Roll(sides)
			assert.GreaterOrEqual(t, roll, 1)
			assert.LessOrEqual(t, roll, sides)
		}
	}
}

func TestRollManyCountAndSum(t *testing.T) {
	roller := New(&Config{Seed: 42})

	for _, sides := range []int{4, 6, 20, 100} {
		for count := 1; count <= 10; count++ {
			results, total := roller.RollMany(sides, count)
			require.Len(t, results, count)

			sum := 0
			for _, r := range results {
				assert.GreaterOrEqual(t, r, 1)
				assert.LessOrEqual(t, r, sides)
				sum += r
			}
			assert.Equal(t, sum, total)
		}
	}
}

func TestRollManyClampsCount(t *testing.T) {
	roller := New(&Config{Seed: 1})

	results, _ := roller.RollMany(6, 0)
	assert.Len(t, results, 1)
}

func TestSeededRollerIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	resultsA, totalA := a.RollMany(20, 5)
	resultsB, totalB := b.RollMany(20, 5)

	assert.Equal(t, resultsA, resultsB)
	assert.Equal(t, totalA, totalB)
}
