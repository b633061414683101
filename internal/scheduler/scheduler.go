// Package scheduler wraps platform timers behind a small interface so session
// actors can schedule typed wake-ups and tests can fire them deterministically.
package scheduler

import (
	"sync"
	"time"
)

// Token identifies a scheduled wake-up for cancellation.
type Token uint64

// Scheduler schedules one-shot and periodic callbacks. Callbacks run on timer
// goroutines; they are expected to do nothing but post a message into a
// session mailbox.
type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) Token

	// Every runs fn repeatedly every d until cancelled.
	Every(d time.Duration, fn func()) Token

	// Cancel stops a pending wake-up. Cancelling an already-fired or
	// unknown token is a no-op.
	Cancel(tok Token)
}

type realScheduler struct {
	mu      sync.Mutex
	nextTok Token
	timers  map[Token]*time.Timer
	stops   map[Token]chan struct{}
}

// New creates a Scheduler backed by the runtime's timers.
func New() Scheduler {
	return &realScheduler{
		timers: make(map[Token]*time.Timer),
		stops:  make(map[Token]chan struct{}),
	}
}

func (s *realScheduler) After(d time.Duration, fn func()) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTok++
	tok := s.nextTok
	s.timers[tok] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, tok)
		s.mu.Unlock()
		fn()
	})
	return tok
}

func (s *realScheduler) Every(d time.Duration, fn func()) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTok++
	tok := s.nextTok
	stop := make(chan struct{})
	s.stops[tok] = stop

	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()
	return tok
}

func (s *realScheduler) Cancel(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[tok]; ok {
		timer.Stop()
		delete(s.timers, tok)
	}
	if stop, ok := s.stops[tok]; ok {
		close(stop)
		delete(s.stops, tok)
	}
}
