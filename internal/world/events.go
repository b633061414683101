package world

import "github.com/thornvale/mud/internal/game"

// Event topics.
const (
	TopicCharacterEntered  = "character/entered"
	TopicCharacterLeft     = "character/left"
	TopicCharacterDied     = "character/died"
	TopicCharacterSnapshot = "character/snapshot"
	TopicSpeech            = "room/speech"
	TopicMailArrived       = "mail/arrived"
	TopicItemReceived      = "item/received"
	TopicCurrencyReceived  = "currency/received"
)

// Event is a world- or room-originated notification delivered into session
// mailboxes.
type Event interface {
	Topic() string
}

// Departure reasons carried on CharacterLeft.
const (
	LeaveByMovement = "movement"
	LeaveByDeath    = "death"
	LeaveByQuit     = "quit"
)

// CharacterEntered announces an arrival in a room.
type CharacterEntered struct {
	Ref  game.Ref
	Name string

	// Direction the character moved to get here; empty for respawns and
	// logins.
	Direction string

	// Respawn marks an enter-by-respawn after resurrection.
	Respawn bool
}

func (CharacterEntered) Topic() string { return TopicCharacterEntered }

// CharacterLeft announces a departure from a room.
type CharacterLeft struct {
	Ref       game.Ref
	Name      string
	Direction string
	Reason    string
}

func (CharacterLeft) Topic() string { return TopicCharacterLeft }

// CharacterDied announces a death, carrying victim and killer so observers
// and experience bookkeeping can react.
type CharacterDied struct {
	Victim     game.Ref
	VictimName string
	Killer     game.Ref
	KillerName string

	// Experience awarded to the killer.
	Experience int
}

func (CharacterDied) Topic() string { return TopicCharacterDied }

// CharacterSnapshot refreshes observers' view of a character's status.
type CharacterSnapshot struct {
	Ref   game.Ref
	Name  string
	Level int
	Stats game.Stats
}

func (CharacterSnapshot) Topic() string { return TopicCharacterSnapshot }

// Speech is heard or overheard room speech.
type Speech struct {
	From game.Ref
	Name string
	Text string
}

func (Speech) Topic() string { return TopicSpeech }

// MailArrived notifies a character of new mail.
type MailArrived struct {
	To     game.Ref
	Sender string
}

func (MailArrived) Topic() string { return TopicMailArrived }

// ItemReceived grants an item to a character.
type ItemReceived struct {
	To   game.Ref
	Item game.Item
}

func (ItemReceived) Topic() string { return TopicItemReceived }

// CurrencyReceived grants currency to a character.
type CurrencyReceived struct {
	To     game.Ref
	Amount int
}

func (CurrencyReceived) Topic() string { return TopicCurrencyReceived }
