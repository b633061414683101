package scheduler

import (
	"sync"
	"time"
)

// Manual is a Scheduler for tests: nothing fires until the test asks. It
// follows the manual-mock pattern used for other deterministic seams in the
// codebase, because tests need to replay pending callbacks in order.
type Manual struct {
	mu      sync.Mutex
	nextTok Token
	pending []*manualEntry
}

type manualEntry struct {
	tok       Token
	delay     time.Duration
	fn        func()
	recurring bool
}

// NewManual creates a Manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// After records a one-shot callback.
func (m *Manual) After(d time.Duration, fn func()) Token {
	return m.add(d, fn, false)
}

// Every records a recurring callback; each FireNext leaves it pending again.
func (m *Manual) Every(d time.Duration, fn func()) Token {
	return m.add(d, fn, true)
}

// Cancel removes a pending callback.
func (m *Manual) Cancel(tok Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.pending {
		if e.tok == tok {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks are waiting.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// FireNext runs the oldest pending callback. Recurring callbacks are
// re-queued behind any other pending work. It reports whether anything fired.
func (m *Manual) FireNext() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}

	entry := m.pending[0]
	m.pending = m.pending[1:]
	if entry.recurring {
		m.pending = append(m.pending, entry)
	}
	m.mu.Unlock()

	entry.fn()
	return true
}

// FireAll runs every callback currently pending, once each. Callbacks queued
// while firing are left pending for the next call.
func (m *Manual) FireAll() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	for _, e := range batch {
		if e.recurring {
			m.pending = append(m.pending, e)
		}
	}
	m.mu.Unlock()

	for _, e := range batch {
		e.fn()
	}
	return len(batch)
}

func (m *Manual) add(d time.Duration, fn func(), recurring bool) Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTok++
	m.pending = append(m.pending, &manualEntry{
		tok:       m.nextTok,
		delay:     d,
		fn:        fn,
		recurring: recurring,
	})
	return m.nextTok
}
