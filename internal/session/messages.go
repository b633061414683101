package session

import (
	"github.com/thornvale/mud/internal/effects"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/world"
)

// Message is one unit of work for a session actor. Messages are processed
// strictly in arrival order by the owning goroutine; no two messages for the
// same session ever run concurrently. Delivery is all-or-nothing: a session
// whose mailbox overflows is disconnected rather than skipping messages, so
// a delivered message is never preceded by a silently dropped one from the
// same sender.
type Message interface {
	isMessage()
}

// ReceiveLine carries one raw input line from the transport.
type ReceiveLine struct {
	Line string
}

// Disconnect ends the session: unregister, flush online time, terminate.
type Disconnect struct {
	Reason string
}

// RegenTick drives periodic regeneration.
type RegenTick struct{}

// PersistTick flushes the durable save data. A no-op before authentication.
type PersistTick struct{}

// InactivityCheck evaluates idle time against the AFK and kick thresholds.
type InactivityCheck struct{}

// ApplyEffects resolves an effect list against this session's stats.
type ApplyEffects struct {
	Source      game.Ref
	Description string
	Effects     []effects.Effect
}

// ContinuousEffectFire consumes one repetition of a ledger entry. Firing an
// id the ledger no longer holds is a no-op.
type ContinuousEffectFire struct {
	EffectID string
}

// Targeted records that another entity now targets this player.
type Targeted struct {
	By game.Ref
}

// Notify fans a world or room event into the session.
type Notify struct {
	Event world.Event
}

// TellReceived delivers a private message and sets the reply target.
type TellReceived struct {
	From     game.Ref
	FromName string
	Text     string
}

// ChannelChatter delivers chatter on a named channel; sessions not subscribed
// to the channel ignore it.
type ChannelChatter struct {
	Channel string
	Speaker string
	Text    string
}

// ChannelJoined subscribes the character to a channel (idempotent).
type ChannelJoined struct {
	Channel string
}

// ChannelLeft removes one channel subscription.
type ChannelLeft struct {
	Channel string
}

// Teleport moves the character without emitting leave/enter notifications;
// those are the caller's responsibility.
type Teleport struct {
	RoomID string
}

// Resurrect revives the character at the given room, clamping negative health
// to a bare minimum. Idempotent on living characters.
type Resurrect struct {
	RoomID string
}

// ContinueStep executes the next queued step of a multi-step command. Seq
// guards against stale deliveries after the queue was drained or replaced.
type ContinueStep struct {
	Seq uint64
}

func (ReceiveLine) isMessage()          {}
func (Disconnect) isMessage()           {}
func (RegenTick) isMessage()            {}
func (PersistTick) isMessage()          {}
func (InactivityCheck) isMessage()      {}
func (ApplyEffects) isMessage()         {}
func (ContinuousEffectFire) isMessage() {}
func (Targeted) isMessage()             {}
func (Notify) isMessage()               {}
func (TellReceived) isMessage()         {}
func (ChannelChatter) isMessage()       {}
func (ChannelJoined) isMessage()        {}
func (ChannelLeft) isMessage()          {}
func (Teleport) isMessage()             {}
func (Resurrect) isMessage()            {}
func (ContinueStep) isMessage()         {}
