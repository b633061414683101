package game

import (
	"strings"
	"time"
)

// Character is a player's identity plus the durable projection of their game
// state. Identity fields are loaded once on authentication and treated as
// read-mostly; Save is mutated by the owning session and flushed periodically.
type Character struct {
	ID       string
	Name     string
	ClassKey string
	RaceKey  string

	Save SaveData

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveData is the durable projection of a character's state.
type SaveData struct {
	RoomID     string            `json:"room_id"`
	Level      int               `json:"level"`
	Experience int               `json:"experience"`
	Currency   int               `json:"currency"`
	Inventory  []Item            `json:"inventory"`
	Equipped   map[Slot]Item     `json:"equipped"`
	Channels   []string          `json:"channels"`
	Config     map[string]string `json:"config"`
	Stats      Stats             `json:"stats"`

	// Accumulated online time, flushed on disconnect.
	PlayedSeconds int64 `json:"played_seconds"`
}

// Class returns the character's class definition.
func (c *Character) Class() *Class {
	return ClassByKey(c.ClassKey)
}

// Ref returns the tagged reference other entities use to identify this
// character.
func (c *Character) Ref() Ref {
	return PlayerRef(c.ID)
}

// AddExperience credits experience and applies any level-ups the new total
// crosses, growing the stat maxima per the character's class and refilling the
// pools to their new caps. It returns the number of levels gained.
func (c *Character) AddExperience(amount int) int {
	if amount <= 0 {
		return 0
	}

	c.Save.Experience += amount

	cls := c.Class()
	levels := 0
	for c.Save.Experience >= XPForLevel(c.Save.Level+1) {
		c.Save.Level++
		levels++

		c.Save.Stats.MaxHealth += cls.GrowthHealth
		c.Save.Stats.MaxSkill += cls.GrowthSkill
		c.Save.Stats.MaxMove += cls.GrowthMove
	}

	if levels > 0 {
		c.Save.Stats.Health = c.Save.Stats.MaxHealth
		c.Save.Stats.Skill = c.Save.Stats.MaxSkill
		c.Save.Stats.Move = c.Save.Stats.MaxMove
	}
	return levels
}

// JoinChannel appends the channel unless already subscribed, preserving
// subscription order. It reports whether the list changed.
func (sd *SaveData) JoinChannel(name string) bool {
	for _, ch := range sd.Channels {
		if ch == name {
			return false
		}
	}
	sd.Channels = append(sd.Channels, name)
	return true
}

// LeaveChannel removes at most one occurrence of the channel and reports
// whether the list changed.
func (sd *SaveData) LeaveChannel(name string) bool {
	for i, ch := range sd.Channels {
		if ch == name {
			sd.Channels = append(sd.Channels[:i], sd.Channels[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribed reports whether the character listens to the channel.
func (sd *SaveData) Subscribed(name string) bool {
	for _, ch := range sd.Channels {
		if ch == name {
			return true
		}
	}
	return false
}

// AddItem merges an item into the inventory. Stackable items with a matching
// key combine counts; anything else is appended.
func (sd *SaveData) AddItem(item Item) {
	if item.Count <= 0 {
		item.Count = 1
	}
	if item.Stackable {
		for i := range sd.Inventory {
			if sd.Inventory[i].Key == item.Key && sd.Inventory[i].Stackable {
				sd.Inventory[i].Count += item.Count
				return
			}
		}
	}
	sd.Inventory = append(sd.Inventory, item)
}

// NewCharacter builds a fresh level-one character of the default class placed
// in the given starting room.
func NewCharacter(id, name, roomID string) *Character {
	cls := ClassByKey(DefaultClassKey)
	now := time.Now().UTC()

	return &Character{
		ID:       id,
		Name:     strings.TrimSpace(name),
		ClassKey: cls.Key,
		Save: SaveData{
			RoomID: roomID,
			Level:  1,
			Stats: Stats{
				Health:    25,
				MaxHealth: 25,
				Skill:     10,
				MaxSkill:  10,
				Move:      20,
				MaxMove:   20,
			},
			Channels: []string{"gossip"},
			Config:   map[string]string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Save.Inventory = append([]Item(nil), c.Save.Inventory...)
	clone.Save.Channels = append([]string(nil), c.Save.Channels...)

	if c.Save.Equipped != nil {
		clone.Save.Equipped = make(map[Slot]Item, len(c.Save.Equipped))
		for k, v := range c.Save.Equipped {
			clone.Save.Equipped[k] = v
		}
	}
	if c.Save.Config != nil {
		clone.Save.Config = make(map[string]string, len(c.Save.Config))
		for k, v := range c.Save.Config {
			clone.Save.Config[k] = v
		}
	}
	return &clone
}
