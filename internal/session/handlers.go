package session

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/thornvale/mud/internal/command"
	"github.com/thornvale/mud/internal/effects"
	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/format"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/world"
)

const maxLoginAttempts = 3

func (s *Session) dispatch(msg Message) {
	switch m := msg.(type) {
	case ReceiveLine:
		s.handleReceiveLine(m)
	case Disconnect:
		s.handleDisconnect(m)
	case RegenTick:
		s.handleRegenTick()
	case PersistTick:
		s.handlePersistTick()
	case InactivityCheck:
		s.handleInactivityCheck()
	case ApplyEffects:
		s.handleApplyEffects(m)
	case ContinuousEffectFire:
		s.handleContinuousEffectFire(m)
	case Targeted:
		s.handleTargeted(m)
	case Notify:
		s.handleNotify(m.Event)
	case TellReceived:
		s.handleTellReceived(m)
	case ChannelChatter:
		s.handleChannelChatter(m)
	case ChannelJoined:
		s.handleChannelJoined(m)
	case ChannelLeft:
		s.handleChannelLeft(m)
	case Teleport:
		s.handleTeleport(m)
	case Resurrect:
		s.handleResurrect(m)
	case ContinueStep:
		s.handleContinueStep(m)
	default:
		log.Printf("session %s: unhandled message %T", s.Name(), msg)
	}
}

// --- input ---

func (s *Session) handleReceiveLine(msg ReceiveLine) {
	s.lastInputAt = s.now()
	if s.isAfk {
		s.isAfk = false
		s.transport.SendEcho("You are no longer AFK.")
	}

	switch s.mode {
	case modeLoggingIn:
		s.handleLogin(strings.TrimSpace(msg.Line))
	case modeContinuing:
		// Continuation masks new input so a player cannot queue
		// contradictory commands mid-maneuver.
	case modeAwaitingCommands:
		s.execLine(msg.Line)
	}
}

func (s *Session) handleLogin(line string) {
	switch s.stage {
	case stageName:
		s.loginName(line)
	case stagePassword:
		s.loginPassword(line)
	case stageNewPassword:
		s.loginNewPassword(line)
	}
}

func (s *Session) loginName(name string) {
	if !validName(name) {
		s.transport.SendEcho("Names are 3 to 16 letters.")
		s.transport.SendPrompt("What is your name? ")
		return
	}
	s.pendingName = name

	known, err := s.auth.Exists(s.ctx, name)
	if err != nil {
		log.Printf("login: account lookup for %q failed: %v", name, err)
		s.transport.SendEcho("Something went wrong. Try again.")
		s.transport.SendPrompt("What is your name? ")
		return
	}

	if known {
		s.stage = stagePassword
		s.transport.SendPrompt("Password: ")
		return
	}
	s.stage = stageNewPassword
	s.transport.SendPrompt(fmt.Sprintf("New adventurer! Choose a password for %s: ", name))
}

func (s *Session) loginPassword(password string) {
	account, err := s.auth.Authenticate(s.ctx, s.pendingName, password)
	if err != nil {
		if mkerr.IsUnauthenticated(err) {
			s.loginAttempts++
			if s.loginAttempts >= maxLoginAttempts {
				s.transport.SendEcho("Too many failed attempts.")
				s.shutdown("failed login")
				return
			}
			s.transport.SendEcho("Invalid name or password.")
			s.stage = stageName
			s.transport.SendPrompt("What is your name? ")
			return
		}
		log.Printf("login: authenticate %q failed: %v", s.pendingName, err)
		s.transport.SendEcho("Something went wrong. Try again.")
		s.stage = stageName
		s.transport.SendPrompt("What is your name? ")
		return
	}

	char, err := s.characters.Get(s.ctx, account.CharacterID)
	if err != nil {
		log.Printf("login: load character %q failed: %v", account.CharacterID, err)
		s.transport.SendEcho("Your character could not be loaded.")
		s.shutdown("character load failed")
		return
	}
	s.activate(char)
}

func (s *Session) loginNewPassword(password string) {
	char := game.NewCharacter(s.ids.New(), s.pendingName, s.startRoom)

	if err := s.characters.Create(s.ctx, char); err != nil {
		if mkerr.IsAlreadyExists(err) {
			s.transport.SendEcho("That name is taken.")
			s.stage = stageName
			s.transport.SendPrompt("What is your name? ")
			return
		}
		log.Printf("login: create character %q failed: %v", s.pendingName, err)
		s.transport.SendEcho("Something went wrong. Try again.")
		s.transport.SendPrompt(fmt.Sprintf("Choose a password for %s: ", s.pendingName))
		return
	}

	if _, err := s.auth.Register(s.ctx, s.pendingName, password, char.ID); err != nil {
		if mkerr.IsInvalidArgument(err) {
			// Undo the character so the name is reusable.
			if delErr := s.characters.Delete(s.ctx, char.ID); delErr != nil {
				log.Printf("login: rollback character %q failed: %v", char.ID, delErr)
			}
			s.transport.SendEcho(err.Error())
			s.transport.SendPrompt(fmt.Sprintf("Choose a password for %s: ", s.pendingName))
			return
		}
		log.Printf("login: register account %q failed: %v", s.pendingName, err)
		if delErr := s.characters.Delete(s.ctx, char.ID); delErr != nil {
			log.Printf("login: rollback character %q failed: %v", char.ID, delErr)
		}
		s.transport.SendEcho("That name is taken.")
		s.stage = stageName
		s.transport.SendPrompt("What is your name? ")
		return
	}
	s.activate(char)
}

// activate turns an authenticated connection into a live player session:
// registers the identity (evicting any duplicate), announces the arrival, and
// opens normal command processing.
func (s *Session) activate(char *game.Character) {
	s.char = char
	s.status = statusActive
	s.mode = modeAwaitingCommands
	s.isRegenerating = true
	s.regenTicks = 0

	s.name.Store(char.Name)
	s.ref.Store(char.Ref())
	s.roomID.Store(char.Save.RoomID)

	if prior := s.registry.Register(char.ID, s); prior != nil {
		// Take over the evicted session's accumulated online time. Its own
		// teardown no longer owns the identity and will not persist.
		char.Save.PlayedSeconds += prior.elapsedSeconds(s.now())
		prior.Post(Disconnect{Reason: "logged in from elsewhere"})
	}

	s.transport.SendEcho(fmt.Sprintf("Welcome, %s.", format.Name(char.Name)))
	s.world.Broadcast(char.Save.RoomID, world.CharacterEntered{
		Ref:  char.Ref(),
		Name: char.Name,
	})
	s.lookRoom()
	s.sendPrompt()
}

func validName(name string) bool {
	if len(name) < 3 || len(name) > 16 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// --- commands ---

func (s *Session) execLine(line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		s.transport.SendEcho(err.Error())
		s.sendPrompt()
		return
	}

	if cmd.MultiStep() {
		if s.runStep(cmd.Steps[0]) {
			s.beginContinuation(cmd.Name, cmd.Steps[1:])
		} else {
			s.sendPrompt()
		}
		return
	}

	s.runStep(cmd.Steps[0])
	if !s.closing && s.mode == modeAwaitingCommands {
		s.sendPrompt()
	}
}

// runStep executes one primitive step and reports whether it succeeded. A
// false return inside a continuation drains the queue.
func (s *Session) runStep(step command.Step) bool {
	switch step.Verb {
	case "move":
		return s.doMove(step.Args[0])

	case "say":
		text := step.Args[0]
		s.world.Broadcast(s.char.Save.RoomID, world.Speech{
			From: s.char.Ref(),
			Name: s.char.Name,
			Text: text,
		})
		s.transport.SendEcho(fmt.Sprintf("You say, \"%s\"", text))
		return true

	case "tell":
		return s.doTell(step.Args[0], step.Args[1])

	case "reply":
		if s.replyTo.IsZero() {
			s.transport.SendEcho("You have no one to reply to.")
			return false
		}
		other, ok := s.registry.Lookup(s.replyTo.ID)
		if !ok {
			s.transport.SendEcho("They are no longer here.")
			return false
		}
		return s.doTell(other.Name(), step.Args[0])

	case "chat":
		channel, text := step.Args[0], step.Args[1]
		if !s.char.Save.Subscribed(channel) {
			s.transport.SendEcho(fmt.Sprintf("You are not on the '%s' channel.", channel))
			return false
		}
		s.registry.Each(func(other *Session) {
			other.Post(ChannelChatter{Channel: channel, Speaker: s.char.Name, Text: text})
		})
		return true

	case "join":
		if s.char.Save.JoinChannel(step.Args[0]) {
			s.transport.SendEcho(fmt.Sprintf("You join the '%s' channel.", step.Args[0]))
		} else {
			s.transport.SendEcho(fmt.Sprintf("You are already on the '%s' channel.", step.Args[0]))
		}
		return true

	case "leave":
		if s.char.Save.LeaveChannel(step.Args[0]) {
			s.transport.SendEcho(fmt.Sprintf("You leave the '%s' channel.", step.Args[0]))
		} else {
			s.transport.SendEcho(fmt.Sprintf("You are not on the '%s' channel.", step.Args[0]))
		}
		return true

	case "channels":
		if len(s.char.Save.Channels) == 0 {
			s.transport.SendEcho("You are not on any channels.")
		} else {
			s.transport.SendEcho("Channels: " + strings.Join(s.char.Save.Channels, ", "))
		}
		return true

	case "attack":
		return s.doAttack(step.Args[0])

	case "cast":
		return s.doCast(step.Args[0], step.Args[1])

	case "look":
		s.lookRoom()
		return true

	case "who":
		names := s.registry.ConnectedPlayers()
		s.transport.SendEcho(fmt.Sprintf("Online (%d): %s", len(names), strings.Join(names, ", ")))
		return true

	case "score":
		s.transport.SendEcho(format.Score(s.char))
		return true

	case "afk":
		s.isAfk = true
		s.transport.SendEcho("You are now AFK.")
		return true

	case "quit":
		s.transport.SendEcho("Farewell.")
		s.shutdown("quit")
		return true
	}

	s.transport.SendEcho(fmt.Sprintf("Huh? '%s' is not a command.", step.Verb))
	return false
}

func (s *Session) doMove(direction string) bool {
	room, err := s.world.Room(s.ctx, s.char.Save.RoomID)
	if err != nil {
		log.Printf("session %s: room %q lookup failed: %v", s.char.Name, s.char.Save.RoomID, err)
		s.transport.SendEcho("You are nowhere. You cannot move.")
		return false
	}

	dest, ok := room.Exits[direction]
	if !ok {
		s.transport.SendEcho(fmt.Sprintf("You cannot go %s.", direction))
		return false
	}

	s.world.Broadcast(room.ID, world.CharacterLeft{
		Ref:       s.char.Ref(),
		Name:      s.char.Name,
		Direction: direction,
		Reason:    world.LeaveByMovement,
	})

	// Whatever was targeting us, and whatever we targeted, stayed behind.
	s.target = game.Ref{}
	s.targetingMe = make(map[game.Ref]struct{})

	s.setRoom(dest)
	s.world.Broadcast(dest, world.CharacterEntered{
		Ref:       s.char.Ref(),
		Name:      s.char.Name,
		Direction: direction,
	})
	s.lookRoom()
	return true
}

func (s *Session) doTell(name, text string) bool {
	other, ok := s.registry.FindByName(name)
	if !ok || other == s {
		s.transport.SendEcho(fmt.Sprintf("There is no one called '%s' here.", name))
		return false
	}

	other.Post(TellReceived{From: s.char.Ref(), FromName: s.char.Name, Text: text})
	s.transport.SendEcho(fmt.Sprintf("You tell %s, \"%s\"", other.Name(), text))
	return true
}

func (s *Session) doAttack(name string) bool {
	other, ok := s.registry.FindByName(name)
	if !ok || other == s || other.CurrentRoom() != s.char.Save.RoomID {
		s.transport.SendEcho(fmt.Sprintf("You do not see '%s' here.", name))
		return false
	}

	s.target = other.Ref()
	other.Post(Targeted{By: s.char.Ref()})

	amount := s.roll(1, 6, s.char.Save.Level)
	other.Post(ApplyEffects{
		Source:      s.char.Ref(),
		Description: fmt.Sprintf("%s strikes you!", format.Name(s.char.Name)),
		Effects:     []effects.Effect{effects.Damage("slashing", amount)},
	})
	s.transport.SendEcho(fmt.Sprintf("You attack %s!", format.Name(other.Name())))
	return true
}

// rollFunc is the shape of Session.roll, passed into spell builders so the
// spellbook stays a plain package-level table.
type rollFunc func(count, sides, bonus int) int

type spellDef struct {
	cost    int
	harmful bool
	build   func(roll rollFunc, level int) []effects.Effect
}

var spellbook = map[string]spellDef{
	"smite": {
		cost:    4,
		harmful: true,
		build: func(roll rollFunc, level int) []effects.Effect {
			return []effects.Effect{effects.Damage("holy", roll(2, 4, level))}
		},
	},
	"poison": {
		cost:    5,
		harmful: true,
		build: func(roll rollFunc, level int) []effects.Effect {
			return []effects.Effect{effects.DamageOverTime("poison", roll(1, 4, level), 10*time.Second, 3)}
		},
	},
	"mend": {
		cost: 3,
		build: func(roll rollFunc, level int) []effects.Effect {
			return []effects.Effect{effects.Recover(game.PoolHealth, roll(2, 4, level))}
		},
	},
}

func (s *Session) doCast(spell, targetName string) bool {
	def, ok := spellbook[spell]
	if !ok {
		s.transport.SendEcho(fmt.Sprintf("You do not know '%s'.", spell))
		return false
	}
	if s.char.Save.Stats.Skill < def.cost {
		s.transport.SendEcho("You are too drained to cast that.")
		return false
	}

	msg := ApplyEffects{
		Source:      s.char.Ref(),
		Description: fmt.Sprintf("%s's %s washes over you!", format.Name(s.char.Name), spell),
		Effects:     def.build(s.roll, s.char.Save.Level),
	}

	if isSelfTarget(targetName, s.char.Name) {
		s.char.Save.Stats.Skill -= def.cost
		s.transport.SendEcho(fmt.Sprintf("You cast %s on yourself.", spell))
		s.handleApplyEffects(msg)
		return true
	}

	other, ok := s.registry.FindByName(targetName)
	if !ok || other == s || other.CurrentRoom() != s.char.Save.RoomID {
		s.transport.SendEcho(fmt.Sprintf("You do not see '%s' here.", targetName))
		return false
	}

	s.char.Save.Stats.Skill -= def.cost
	if def.harmful {
		s.target = other.Ref()
		other.Post(Targeted{By: s.char.Ref()})
	}
	other.Post(msg)
	s.transport.SendEcho(fmt.Sprintf("You cast %s on %s.", spell, format.Name(other.Name())))
	return true
}

// roll delegates to the configured roller. A roller failure is a programming
// error in the dice spec, so it is logged and the bonus plus one point per die
// stands in rather than aborting the action.
func (s *Session) roll(count, sides, bonus int) int {
	total, err := s.roller.Roll(count, sides, bonus)
	if err != nil {
		log.Printf("session %s: roll %dd%d failed: %v", s.char.Name, count, sides, err)
		return bonus + count
	}
	return total
}

func isSelfTarget(target, own string) bool {
	return target == "self" || target == "me" || strings.EqualFold(target, own)
}

func (s *Session) lookRoom() {
	room, err := s.world.Room(s.ctx, s.char.Save.RoomID)
	if err != nil {
		log.Printf("session %s: room %q lookup failed: %v", s.char.Name, s.char.Save.RoomID, err)
		s.transport.SendEcho("A formless gray void.")
		return
	}

	exits := make([]string, 0, len(room.Exits))
	for dir := range room.Exits {
		exits = append(exits, dir)
	}

	var occupants []string
	s.registry.Each(func(other *Session) {
		if other != s && other.CurrentRoom() == room.ID {
			occupants = append(occupants, other.Name())
		}
	})

	s.transport.SendEcho(format.RoomDescription(room.Name, room.Description, exits, occupants))
}

// --- lifecycle ---

func (s *Session) handleDisconnect(msg Disconnect) {
	if msg.Reason != "" && s.status == statusActive {
		s.transport.SendEcho(fmt.Sprintf("Disconnected: %s.", msg.Reason))
	}
	s.shutdown(msg.Reason)
}

// shutdown marks the session for teardown and announces the departure once.
// The run loop performs the actual cleanup after the current message.
func (s *Session) shutdown(reason string) {
	if s.closing {
		return
	}
	s.closing = true

	if s.char != nil && s.status == statusActive {
		s.world.Broadcast(s.char.Save.RoomID, world.CharacterLeft{
			Ref:    s.char.Ref(),
			Name:   s.char.Name,
			Reason: world.LeaveByQuit,
		})
	}
	if reason != "" {
		log.Printf("session %s: disconnecting: %s", s.Name(), reason)
	}
}

// --- ticks ---

func (s *Session) handleRegenTick() {
	if s.status != statusActive {
		return
	}

	s.regenTicks++
	if !s.isRegenerating || s.regenTicks < s.timers.RegenThreshold {
		return
	}
	s.regenTicks = 0

	cls := s.char.Class()
	stats := &s.char.Save.Stats
	restored := stats.Recover(game.PoolHealth, cls.RegenHealth)
	restored += stats.Recover(game.PoolSkill, cls.RegenSkill)
	restored += stats.Recover(game.PoolMove, cls.RegenMove)

	// Silent at caps: no echo, no broadcast.
	if restored == 0 {
		return
	}

	s.transport.SendEcho(format.RegenNotice())
	s.sendPrompt()
	s.broadcastSnapshot()
}

func (s *Session) handlePersistTick() {
	if s.status != statusActive {
		return
	}
	// A tick queued ahead of an eviction disconnect must not write the
	// evicted session's stale record over the successor's.
	if live, ok := s.registry.Lookup(s.char.ID); !ok || live != s {
		return
	}
	if err := s.characters.Update(s.ctx, s.char); err != nil {
		log.Printf("session %s: persist failed, retrying next tick: %v", s.char.Name, err)
	}
}

func (s *Session) handleInactivityCheck() {
	idle := s.now().Sub(s.lastInputAt)

	if s.status != statusActive {
		if idle >= s.timers.AfkAfter {
			s.transport.SendEcho("Login timed out.")
			s.shutdown("login timeout")
		}
		return
	}

	if idle >= s.timers.KickAfter {
		s.transport.SendEcho("You have been idle too long.")
		s.shutdown("idle")
		return
	}
	if idle >= s.timers.AfkAfter && !s.isAfk {
		s.isAfk = true
		s.transport.SendEcho("You drift away. (AFK)")
	}
}

// --- effects ---

func (s *Session) handleApplyEffects(msg ApplyEffects) {
	if s.status != statusActive {
		return
	}
	alreadyDead := s.char.Save.Stats.Dead()

	outcome := effects.Resolve(s.char.Save.Stats, msg.Effects)
	s.char.Save.Stats = outcome.Stats

	for _, eff := range outcome.Continuous {
		inst := s.ledger.Add(msg.Source, eff)
		s.scheduleEffectFire(inst.ID, eff.Every)
	}

	if msg.Description != "" {
		s.transport.SendEcho(msg.Description)
	}
	for _, line := range outcome.Lines {
		s.transport.SendEcho(line)
	}
	s.sendPrompt()
	s.broadcastSnapshot()

	if outcome.Dead && !alreadyDead {
		s.die(msg.Source)
	}
}

func (s *Session) handleContinuousEffectFire(msg ContinuousEffectFire) {
	if s.status != statusActive {
		return
	}

	// The effect may already be gone: cleared by death, or finished.
	inst, remaining, ok := s.ledger.Fire(msg.EffectID)
	if !ok {
		return
	}

	alreadyDead := s.char.Save.Stats.Dead()
	outcome := effects.Resolve(s.char.Save.Stats, []effects.Effect{
		effects.Damage(inst.Effect.Type, inst.Effect.Amount),
	})
	s.char.Save.Stats = outcome.Stats

	for _, line := range outcome.Lines {
		s.transport.SendEcho(line)
	}
	s.sendPrompt()
	s.broadcastSnapshot()

	if outcome.Dead && !alreadyDead {
		s.die(inst.Source)
		return
	}
	if remaining {
		s.scheduleEffectFire(inst.ID, inst.Effect.Every)
	}
}

func (s *Session) scheduleEffectFire(id string, every time.Duration) {
	s.sched.After(every, func() {
		s.Post(ContinuousEffectFire{EffectID: id})
	})
}

func (s *Session) handleTargeted(msg Targeted) {
	if s.status != statusActive {
		return
	}
	s.targetingMe[msg.By] = struct{}{}
	if s.target.IsZero() {
		s.target = msg.By
	}
}

// --- death and resurrection ---

// die runs the death sequence: suppress regen, clear in-flight effects and
// targeting, announce the death, and schedule resurrection if the zone has a
// graveyard. Without one the character stays down at non-positive health.
func (s *Session) die(killer game.Ref) {
	s.isRegenerating = false
	s.regenTicks = 0
	s.ledger.Clear()
	s.target = game.Ref{}
	s.targetingMe = make(map[game.Ref]struct{})
	s.abortContinuation()

	s.transport.SendEcho(format.Style("You have died!", format.AnsiRed, format.AnsiBold))

	killerName := ""
	if killer.Kind == game.RefPlayer {
		if ks, ok := s.registry.Lookup(killer.ID); ok {
			killerName = ks.Name()
		}
	}

	s.world.Broadcast(s.char.Save.RoomID, world.CharacterDied{
		Victim:     s.char.Ref(),
		VictimName: s.char.Name,
		Killer:     killer,
		KillerName: killerName,
		Experience: 75 * s.char.Save.Level,
	})

	room, err := s.world.Room(s.ctx, s.char.Save.RoomID)
	if err != nil {
		log.Printf("session %s: room %q lookup failed after death: %v", s.char.Name, s.char.Save.RoomID, err)
		return
	}

	graveyard, ok := s.world.Graveyard(s.ctx, room.ZoneID)
	if !ok {
		// No recovery path here: the character stays down until an
		// external heal or resurrect arrives.
		log.Printf("session %s: zone %q has no graveyard, staying down", s.char.Name, room.ZoneID)
		return
	}

	s.sched.After(s.timers.ResurrectDelay, func() {
		s.Post(Resurrect{RoomID: graveyard})
	})
}

func (s *Session) handleResurrect(msg Resurrect) {
	if s.status != statusActive {
		return
	}

	// Never reduce health: only a negative pool is clamped up.
	if s.char.Save.Stats.Health < 0 {
		s.char.Save.Stats.Health = 1
	}
	s.isRegenerating = true
	s.regenTicks = 0

	oldRoom := s.char.Save.RoomID
	s.world.Broadcast(oldRoom, world.CharacterLeft{
		Ref:    s.char.Ref(),
		Name:   s.char.Name,
		Reason: world.LeaveByDeath,
	})

	s.setRoom(msg.RoomID)
	s.world.Broadcast(msg.RoomID, world.CharacterEntered{
		Ref:     s.char.Ref(),
		Name:    s.char.Name,
		Respawn: true,
	})

	s.transport.SendEcho(format.Style("You awaken, aching but alive.", format.AnsiGreen))
	s.lookRoom()
	s.sendPrompt()
}

// --- notifications ---

func (s *Session) handleNotify(ev world.Event) {
	if s.status != statusActive {
		return
	}
	me := s.char.Ref()

	switch e := ev.(type) {
	case world.CharacterEntered:
		if e.Ref == me {
			return
		}
		if e.Respawn {
			s.transport.SendEcho(format.Respawn(e.Name))
			return
		}
		s.transport.SendEcho(format.Arrival(e.Name, e.Direction))

	case world.CharacterLeft:
		if e.Ref == me {
			return
		}
		if s.target == e.Ref {
			s.target = game.Ref{}
		}
		delete(s.targetingMe, e.Ref)
		s.transport.SendEcho(format.Departure(e.Name, e.Direction, e.Reason))

	case world.CharacterDied:
		if e.Victim == me {
			return
		}
		if s.target == e.Victim {
			s.target = game.Ref{}
		}
		delete(s.targetingMe, e.Victim)
		s.transport.SendEcho(format.DeathNotice(e.VictimName, e.KillerName))

		if e.Killer == me && e.Experience > 0 {
			levels := s.char.AddExperience(e.Experience)
			s.transport.SendEcho(fmt.Sprintf("You gain %d experience.", e.Experience))
			if levels > 0 {
				s.transport.SendEcho(format.Style(
					fmt.Sprintf("You are now level %d!", s.char.Save.Level),
					format.AnsiBold, format.AnsiYellow))
				s.broadcastSnapshot()
			}
			s.sendPrompt()
		}

	case world.CharacterSnapshot:
		// Observers with richer clients would re-render status here; the
		// line transport has nothing to draw.

	case world.Speech:
		if e.From == me {
			return
		}
		s.transport.SendEcho(format.Say(e.Name, e.Text))

	case world.MailArrived:
		if e.To != me {
			return
		}
		s.transport.SendEcho(fmt.Sprintf("You have new mail from %s.", e.Sender))

	case world.ItemReceived:
		if e.To != me {
			return
		}
		s.char.Save.AddItem(e.Item)
		if e.Item.Count > 1 {
			s.transport.SendEcho(fmt.Sprintf("You receive %s (x%d).", e.Item.Name, e.Item.Count))
		} else {
			s.transport.SendEcho(fmt.Sprintf("You receive %s.", e.Item.Name))
		}

	case world.CurrencyReceived:
		if e.To != me {
			return
		}
		s.char.Save.Currency += e.Amount
		s.transport.SendEcho(fmt.Sprintf("You receive %d coins.", e.Amount))
	}
}

// --- chat ---

func (s *Session) handleTellReceived(msg TellReceived) {
	if s.status != statusActive {
		return
	}
	s.replyTo = msg.From
	s.transport.SendEcho(format.Tell(msg.FromName, msg.Text))
	s.sendPrompt()
}

func (s *Session) handleChannelChatter(msg ChannelChatter) {
	if s.status != statusActive {
		return
	}
	if !s.char.Save.Subscribed(msg.Channel) {
		return
	}
	s.transport.SendEcho(format.ChannelMessage(msg.Channel, msg.Speaker, msg.Text))
}

func (s *Session) handleChannelJoined(msg ChannelJoined) {
	if s.status != statusActive {
		return
	}
	if s.char.Save.JoinChannel(msg.Channel) {
		s.transport.SendEcho(fmt.Sprintf("You have been added to the '%s' channel.", msg.Channel))
	}
}

func (s *Session) handleChannelLeft(msg ChannelLeft) {
	if s.status != statusActive {
		return
	}
	if s.char.Save.LeaveChannel(msg.Channel) {
		s.transport.SendEcho(fmt.Sprintf("You have been removed from the '%s' channel.", msg.Channel))
	}
}

// --- movement plumbing ---

func (s *Session) handleTeleport(msg Teleport) {
	if s.status != statusActive {
		return
	}
	s.setRoom(msg.RoomID)
}

func (s *Session) setRoom(roomID string) {
	s.char.Save.RoomID = roomID
	s.roomID.Store(roomID)
}

func (s *Session) sendPrompt() {
	if s.char == nil {
		return
	}
	s.transport.SendPrompt(format.Prompt(s.char.Save.Stats))
}

func (s *Session) broadcastSnapshot() {
	s.world.Broadcast(s.char.Save.RoomID, world.CharacterSnapshot{
		Ref:   s.char.Ref(),
		Name:  s.char.Name,
		Level: s.char.Save.Level,
		Stats: s.char.Save.Stats,
	})
}
