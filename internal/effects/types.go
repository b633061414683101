package effects

import (
	"time"

	"github.com/thornvale/mud/internal/game"
)

// Kind discriminates effect descriptors.
type Kind string

const (
	// KindDamage subtracts Amount from health immediately.
	KindDamage Kind = "damage"

	// KindDamageOverTime subtracts Amount from health once per scheduled
	// fire, Count times, Every interval apart.
	KindDamageOverTime Kind = "damage/over-time"

	// KindRecover adds Amount to the pool named by Pool, clamped to its
	// maximum.
	KindRecover Kind = "recover"
)

// Effect describes a single stat-changing application.
type Effect struct {
	Kind Kind `json:"kind"`

	// Type flavors damage for display ("slashing", "poison", ...).
	Type string `json:"type,omitempty"`

	// Pool selects the target pool for recover effects.
	Pool game.Pool `json:"pool,omitempty"`

	Amount int `json:"amount"`

	// Over-time fields.
	Every time.Duration `json:"every,omitempty"`
	Count int           `json:"count,omitempty"`
}

// Damage builds an immediate damage effect.
func Damage(damageType string, amount int) Effect {
	return Effect{Kind: KindDamage, Type: damageType, Amount: amount}
}

// DamageOverTime builds a repeating damage effect.
func DamageOverTime(damageType string, amount int, every time.Duration, count int) Effect {
	return Effect{Kind: KindDamageOverTime, Type: damageType, Amount: amount, Every: every, Count: count}
}

// Recover builds a recovery effect for the given pool.
func Recover(pool game.Pool, amount int) Effect {
	return Effect{Kind: KindRecover, Pool: pool, Amount: amount}
}
