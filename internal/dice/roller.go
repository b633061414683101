// Package dice provides the randomness seam behind combat and spell damage.
package dice

import (
	"fmt"
	"math/rand"
)

// Roller produces dice totals. Implementations must be safe for use from a
// single session goroutine; they are not required to be safe for concurrent
// use across sessions.
type Roller interface {
	// Roll rolls count dice with the given number of sides and adds bonus.
	Roll(count, sides, bonus int) (int, error)
}

// randomRoller uses math/rand for real gameplay.
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller backed by its own rand source.
func NewRandomRoller() Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
}

func (r *randomRoller) Roll(count, sides, bonus int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("invalid dice count: %d", count)
	}
	if sides < 2 {
		return 0, fmt.Errorf("invalid dice sides: %d", sides)
	}

	total := bonus
	for i := 0; i < count; i++ {
		total += r.rng.Intn(sides) + 1
	}
	return total, nil
}
