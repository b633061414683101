package game

// Pool names one of the three recoverable point pools.
type Pool string

const (
	PoolHealth Pool = "health"
	PoolSkill  Pool = "skill"
	PoolMove   Pool = "move"
)

// Stats tracks a character's point pools and their maxima. Damage may drive
// Health negative; recovery never exceeds a pool's maximum.
type Stats struct {
	Health    int `json:"health_points"`
	MaxHealth int `json:"max_health_points"`
	Skill     int `json:"skill_points"`
	MaxSkill  int `json:"max_skill_points"`
	Move      int `json:"move_points"`
	MaxMove   int `json:"max_move_points"`
}

// ApplyDamage subtracts amount from health. There is no floor: the death check
// belongs to the caller, and health may go negative.
func (s *Stats) ApplyDamage(amount int) {
	s.Health -= amount
}

// Recover adds amount to the named pool, clamped to its maximum, and returns
// the number of points actually restored. Negative amounts are ignored.
func (s *Stats) Recover(pool Pool, amount int) int {
	if amount <= 0 {
		return 0
	}

	switch pool {
	case PoolHealth:
		return recoverPool(&s.Health, s.MaxHealth, amount)
	case PoolSkill:
		return recoverPool(&s.Skill, s.MaxSkill, amount)
	case PoolMove:
		return recoverPool(&s.Move, s.MaxMove, amount)
	}
	return 0
}

// Dead reports whether health has been driven to zero or below.
func (s Stats) Dead() bool {
	return s.Health <= 0
}

func recoverPool(current *int, max, amount int) int {
	if *current >= max {
		return 0
	}

	old := *current
	*current += amount
	if *current > max {
		*current = max
	}
	return *current - old
}
