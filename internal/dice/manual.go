package dice

import (
	"fmt"
	"sync"
)

// Manual is a Roller for tests. Each Roll pops the next queued value and adds
// the bonus to it, so damage assertions stay deterministic.
type Manual struct {
	mu    sync.Mutex
	queue []int
}

// NewManual creates an empty manual roller.
func NewManual() *Manual {
	return &Manual{}
}

// SetRolls replaces the queued roll values.
func (m *Manual) SetRolls(values ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append([]int(nil), values...)
}

// Roll returns the next queued value plus bonus. It fails when the queue is
// empty rather than inventing a value, so a test that forgets to seed rolls
// fails loudly.
func (m *Manual) Roll(count, sides, bonus int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return 0, fmt.Errorf("manual roller queue empty (wanted %dd%d)", count, sides)
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next + bonus, nil
}
