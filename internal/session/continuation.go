package session

import (
	"github.com/thornvale/mud/internal/command"
	"github.com/thornvale/mud/internal/format"
)

// continuation holds the remaining steps of a multi-step command. Steps run
// one per message turn so effects and notifications interleave between them;
// raw input is dropped while a continuation is in flight.
type continuation struct {
	name  string
	steps []command.Step
	seq   uint64
}

// beginContinuation stores the remaining steps and schedules the next one as
// an asynchronous self-message. The first step has already run synchronously.
func (s *Session) beginContinuation(name string, rest []command.Step) {
	s.contSeq++
	s.cont = &continuation{name: name, steps: rest, seq: s.contSeq}
	s.mode = modeContinuing
	s.scheduleContinue()
}

func (s *Session) scheduleContinue() {
	seq := s.cont.seq
	s.sched.After(s.timers.ContinueDelay, func() {
		s.Post(ContinueStep{Seq: seq})
	})
}

// handleContinueStep pops and executes the head step. A stale sequence number
// means the queue was drained or replaced since the timer was armed; the
// message is ignored.
func (s *Session) handleContinueStep(msg ContinueStep) {
	if s.cont == nil || msg.Seq != s.cont.seq {
		return
	}

	step := s.cont.steps[0]
	s.cont.steps = s.cont.steps[1:]

	if !s.runStep(step) {
		// The step went invalid mid-maneuver (an exit vanished, the
		// character died). Stop here rather than blundering on.
		s.abortContinuation()
		s.transport.SendEcho(format.Style("You stop.", format.AnsiDim))
		s.sendPrompt()
		return
	}

	if s.cont != nil && len(s.cont.steps) > 0 {
		s.scheduleContinue()
		return
	}
	s.abortContinuation()
	s.sendPrompt()
}

// abortContinuation drains the queue and restores normal input handling. Any
// timer still in flight carries a stale sequence number and fires as a no-op.
func (s *Session) abortContinuation() {
	s.cont = nil
	s.contSeq++
	if s.mode == modeContinuing {
		s.mode = modeAwaitingCommands
	}
}
