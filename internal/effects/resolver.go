package effects

import (
	"github.com/thornvale/mud/internal/format"
	"github.com/thornvale/mud/internal/game"
)

// Outcome is the result of resolving an effect list against a stat block.
type Outcome struct {
	// Stats is the updated stat block; the caller commits it atomically.
	Stats game.Stats

	// Lines holds one human-readable result per non-no-op effect.
	Lines []string

	// Dead is true exactly when health ended at or below zero after a
	// resolution that included at least one non-recover effect.
	Dead bool

	// Continuous lists over-time effects that must be registered in the
	// ledger and scheduled; their first tick has not been applied.
	Continuous []Effect
}

// Resolve applies the effect list in order against a copy of stats. It is a
// pure computation: no ledger mutation, no scheduling, no I/O.
func Resolve(stats game.Stats, effts []Effect) Outcome {
	out := Outcome{Stats: stats}
	harmed := false

	for _, eff := range effts {
		switch eff.Kind {
		case KindDamage:
			out.Stats.ApplyDamage(eff.Amount)
			out.Lines = append(out.Lines, format.DamageLine(eff.Amount, eff.Type))
			harmed = true

		case KindDamageOverTime:
			// Registration only; damage lands on each scheduled fire.
			out.Continuous = append(out.Continuous, eff)
			out.Lines = append(out.Lines, format.AfflictionLine(eff.Amount, eff.Type, eff.Count))

		case KindRecover:
			applied := out.Stats.Recover(eff.Pool, eff.Amount)
			if applied > 0 {
				out.Lines = append(out.Lines, format.RecoverLine(applied, eff.Pool))
			}
		}
	}

	out.Dead = harmed && out.Stats.Dead()
	return out
}
