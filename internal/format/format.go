// Package format maps structured game events to display text. Everything here
// is a pure function; sessions call it inline while composing echoes.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thornvale/mud/internal/game"
)

const (
	AnsiReset  = "\x1b[0m"
	AnsiBold   = "\x1b[1m"
	AnsiDim    = "\x1b[2m"
	AnsiCyan   = "\x1b[36m"
	AnsiYellow = "\x1b[33m"
	AnsiGreen  = "\x1b[32m"
	AnsiRed    = "\x1b[31m"
)

// Style wraps text with the provided ANSI attributes.
func Style(text string, attrs ...string) string {
	if len(attrs) == 0 {
		return text
	}
	return strings.Join(attrs, "") + text + AnsiReset
}

// Name renders character names consistently.
func Name(name string) string {
	return Style(name, AnsiBold, AnsiCyan)
}

// DamageLine renders a single resolved damage application.
func DamageLine(amount int, damageType string) string {
	return fmt.Sprintf("%d %s damage is dealt.", amount, damageType)
}

// RecoverLine renders a single resolved recovery application.
func RecoverLine(amount int, pool game.Pool) string {
	return fmt.Sprintf("%d %s points are recovered.", amount, pool)
}

// AfflictionLine announces a newly registered continuous effect.
func AfflictionLine(amount int, damageType string, count int) string {
	return fmt.Sprintf("%d %s damage will be dealt %d more times.", amount, damageType, count)
}

// RegenNotice is the fixed message echoed when regeneration restores points.
func RegenNotice() string {
	return Style("You feel yourself regenerating.", AnsiGreen)
}

// Prompt renders the standard player prompt from current stats.
func Prompt(stats game.Stats) string {
	return Style(fmt.Sprintf("\r\nHP:%d/%d SP:%d/%d MV:%d/%d> ",
		stats.Health, stats.MaxHealth,
		stats.Skill, stats.MaxSkill,
		stats.Move, stats.MaxMove), AnsiYellow)
}

// Arrival renders another character entering the room.
func Arrival(name, fromDirection string) string {
	if fromDirection == "" {
		return fmt.Sprintf("%s appears.", Name(name))
	}
	return fmt.Sprintf("%s arrives from the %s.", Name(name), opposite(fromDirection))
}

// Departure renders another character leaving the room.
func Departure(name, direction, reason string) string {
	switch reason {
	case "death":
		return fmt.Sprintf("The body of %s crumbles away.", Name(name))
	case "quit":
		return fmt.Sprintf("%s fades from the world.", Name(name))
	}
	if direction == "" {
		return fmt.Sprintf("%s leaves.", Name(name))
	}
	return fmt.Sprintf("%s leaves %s.", Name(name), direction)
}

// Respawn renders a character reappearing at a graveyard.
func Respawn(name string) string {
	return fmt.Sprintf("%s rises, pale but breathing.", Name(name))
}

// DeathNotice renders a death observed in the room.
func DeathNotice(victim, killer string) string {
	if killer == "" {
		return Style(fmt.Sprintf("%s has died!", victim), AnsiRed, AnsiBold)
	}
	return Style(fmt.Sprintf("%s has been slain by %s!", victim, killer), AnsiRed, AnsiBold)
}

// Say renders room speech.
func Say(speaker, text string) string {
	return fmt.Sprintf("%s says, \"%s\"", Name(speaker), text)
}

// Tell renders a private message.
func Tell(from, text string) string {
	return Style(fmt.Sprintf("%s tells you, \"%s\"", from, text), AnsiCyan)
}

// ChannelMessage renders chatter on a subscribed channel.
func ChannelMessage(channel, speaker, text string) string {
	return Style(fmt.Sprintf("[%s] %s: %s", channel, speaker, text), AnsiYellow)
}

// RoomDescription renders a room and its visible occupants.
func RoomDescription(name, description string, exits []string, occupants []string) string {
	var b strings.Builder

	b.WriteString(Style(name, AnsiBold))
	b.WriteString("\r\n")
	if description != "" {
		b.WriteString(description)
		b.WriteString("\r\n")
	}

	sorted := append([]string(nil), exits...)
	sort.Strings(sorted)
	if len(sorted) == 0 {
		b.WriteString(Style("There are no obvious exits.", AnsiDim))
	} else {
		b.WriteString(Style("Exits: "+strings.Join(sorted, ", "), AnsiDim))
	}

	for _, occ := range occupants {
		b.WriteString("\r\n")
		b.WriteString(fmt.Sprintf("%s is here.", Name(occ)))
	}
	return b.String()
}

// Score renders the player's own status summary.
func Score(c *game.Character) string {
	cls := c.Class()
	return fmt.Sprintf(
		"%s, level %d %s\r\nHP %d/%d  SP %d/%d  MV %d/%d\r\nExperience: %d  Currency: %d",
		Name(c.Name), c.Save.Level, cls.Name,
		c.Save.Stats.Health, c.Save.Stats.MaxHealth,
		c.Save.Stats.Skill, c.Save.Stats.MaxSkill,
		c.Save.Stats.Move, c.Save.Stats.MaxMove,
		c.Save.Experience, c.Save.Currency,
	)
}

var opposites = map[string]string{
	"north": "south",
	"south": "north",
	"east":  "west",
	"west":  "east",
	"up":    "below",
	"down":  "above",
}

func opposite(direction string) string {
	if o, ok := opposites[direction]; ok {
		return o
	}
	return direction
}
