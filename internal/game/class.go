package game

// Class defines the per-class tuning the session engine needs: regeneration
// rates per regen cycle and stat growth on level-up.
type Class struct {
	Key  string
	Name string

	// Points restored by one regeneration cycle.
	RegenHealth int
	RegenSkill  int
	RegenMove   int

	// Maximum-pool growth applied on each level gained.
	GrowthHealth int
	GrowthSkill  int
	GrowthMove   int
}

var classes = map[string]*Class{
	"warrior": {
		Key:  "warrior",
		Name: "Warrior",

		RegenHealth: 5,
		RegenSkill:  2,
		RegenMove:   4,

		GrowthHealth: 8,
		GrowthSkill:  2,
		GrowthMove:   4,
	},
	"cleric": {
		Key:  "cleric",
		Name: "Cleric",

		RegenHealth: 3,
		RegenSkill:  5,
		RegenMove:   3,

		GrowthHealth: 5,
		GrowthSkill:  6,
		GrowthMove:   3,
	},
	"rogue": {
		Key:  "rogue",
		Name: "Rogue",

		RegenHealth: 4,
		RegenSkill:  3,
		RegenMove:   5,

		GrowthHealth: 6,
		GrowthSkill:  4,
		GrowthMove:   5,
	},
}

// DefaultClassKey is assigned to characters created without an explicit class.
const DefaultClassKey = "warrior"

// ClassByKey looks up a class definition. Unknown keys fall back to the
// default class so a stale save never leaves a character without regen rates.
func ClassByKey(key string) *Class {
	if c, ok := classes[key]; ok {
		return c
	}
	return classes[DefaultClassKey]
}

// XPForLevel returns the total experience required to reach the given level.
// Level 1 requires none.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * level * 500
}
