// Package session implements the per-connection player actor: a goroutine
// owning all mutable player state, fed by a typed message mailbox. State is
// mutated only on the owning goroutine's turn, so no locking is needed inside
// a session; the registry is the single shared structure.
package session

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/thornvale/mud/internal/auth"
	"github.com/thornvale/mud/internal/dice"
	"github.com/thornvale/mud/internal/effects"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/repositories/characters"
	"github.com/thornvale/mud/internal/scheduler"
	"github.com/thornvale/mud/internal/uuid"
	"github.com/thornvale/mud/internal/world"
)

const mailboxSize = 64

// Transport is the session's view of its connection. All three calls are
// fire-and-forget; the actor never waits on delivery.
type Transport interface {
	SendEcho(text string)
	SendPrompt(text string)
	Close()
}

type connectionStatus int

const (
	statusUnauthenticated connectionStatus = iota
	statusActive
)

type inputMode int

const (
	modeLoggingIn inputMode = iota
	modeAwaitingCommands
	modeContinuing
)

type loginStage int

const (
	stageName loginStage = iota
	stagePassword
	stageNewPassword
)

// Timers collects the session's tick intervals and thresholds.
type Timers struct {
	RegenInterval time.Duration

	// RegenThreshold is the number of regen ticks that must elapse before
	// points are actually restored.
	RegenThreshold int

	PersistInterval    time.Duration
	InactivityInterval time.Duration
	AfkAfter           time.Duration
	KickAfter          time.Duration
	ContinueDelay      time.Duration
	ResurrectDelay     time.Duration
}

// DefaultTimers returns production tick settings.
func DefaultTimers() Timers {
	return Timers{
		RegenInterval:      2 * time.Second,
		RegenThreshold:     3,
		PersistInterval:    30 * time.Second,
		InactivityInterval: 30 * time.Second,
		AfkAfter:           5 * time.Minute,
		KickAfter:          15 * time.Minute,
		ContinueDelay:      500 * time.Millisecond,
		ResurrectDelay:     3 * time.Second,
	}
}

// Config holds everything a session needs. Transport, Registry, Characters,
// Auth, World, and Scheduler are required.
type Config struct {
	Transport  Transport
	Registry   *Registry
	Characters characters.Repository
	Auth       *auth.Manager
	World      world.Provider
	Scheduler  scheduler.Scheduler

	// StartRoomID places newly created characters; defaults to the
	// built-in starting room.
	StartRoomID string

	Timers Timers

	// UUIDGenerator is optional and defaults to the google generator.
	UUIDGenerator uuid.Generator

	// TimeProvider is optional and defaults to time.Now.
	TimeProvider func() time.Time

	// Roller is optional and defaults to a random roller. Tests inject
	// dice.Manual to make damage deterministic.
	Roller dice.Roller
}

// Session is one player's actor. All fields below the mailbox are owned by
// the run goroutine; other goroutines interact only via Post and the atomic
// snapshot accessors.
type Session struct {
	transport  Transport
	registry   *Registry
	characters characters.Repository
	auth       *auth.Manager
	world      world.Provider
	sched      scheduler.Scheduler
	ids        uuid.Generator
	now        func() time.Time
	roller     dice.Roller
	timers     Timers
	startRoom  string

	mailbox    chan Message
	done       chan struct{}
	overflowed atomic.Bool

	// Snapshots readable from other goroutines.
	roomID atomic.Value // string
	name   atomic.Value // string
	ref    atomic.Value // game.Ref

	// Actor-owned state.
	ctx              context.Context
	status           connectionStatus
	mode             inputMode
	stage            loginStage
	pendingName      string
	loginAttempts    int
	char             *game.Character
	target           game.Ref
	targetingMe      map[game.Ref]struct{}
	ledger           *effects.Ledger
	cont             *continuation
	contSeq          uint64
	replyTo          game.Ref
	isRegenerating   bool
	regenTicks       int
	isAfk            bool
	lastInputAt      time.Time
	sessionStartedAt time.Time

	timerTokens []scheduler.Token
	closing     bool
	fatal       bool
}

// New creates a session for a freshly accepted connection. The session is
// idle until Start is called.
func New(cfg *Config) *Session {
	if cfg.Transport == nil {
		panic("transport is required")
	}
	if cfg.Registry == nil {
		panic("registry is required")
	}
	if cfg.Characters == nil {
		panic("character repository is required")
	}
	if cfg.Auth == nil {
		panic("auth manager is required")
	}
	if cfg.World == nil {
		panic("world provider is required")
	}
	if cfg.Scheduler == nil {
		panic("scheduler is required")
	}

	ids := cfg.UUIDGenerator
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	now := cfg.TimeProvider
	if now == nil {
		now = time.Now
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	timers := cfg.Timers
	if timers == (Timers{}) {
		timers = DefaultTimers()
	}
	startRoom := cfg.StartRoomID
	if startRoom == "" {
		startRoom = world.DefaultStartRoomID
	}

	s := &Session{
		transport:        cfg.Transport,
		registry:         cfg.Registry,
		characters:       cfg.Characters,
		auth:             cfg.Auth,
		world:            cfg.World,
		sched:            cfg.Scheduler,
		ids:              ids,
		now:              now,
		roller:           roller,
		timers:           timers,
		startRoom:        startRoom,
		mailbox:          make(chan Message, mailboxSize),
		done:             make(chan struct{}),
		ctx:              context.Background(),
		status:           statusUnauthenticated,
		mode:             modeLoggingIn,
		stage:            stageName,
		targetingMe:      make(map[game.Ref]struct{}),
		ledger:           effects.NewLedger(ids),
		lastInputAt:      now(),
		sessionStartedAt: now(),
	}
	s.roomID.Store("")
	s.name.Store("")
	s.ref.Store(game.Ref{})
	return s
}

// Start launches the actor goroutine, arms the recurring timers, and sends
// the login greeting.
func (s *Session) Start() {
	s.timerTokens = append(s.timerTokens,
		s.sched.Every(s.timers.RegenInterval, func() { s.Post(RegenTick{}) }),
		s.sched.Every(s.timers.PersistInterval, func() { s.Post(PersistTick{}) }),
		s.sched.Every(s.timers.InactivityInterval, func() { s.Post(InactivityCheck{}) }),
	)

	s.transport.SendEcho("Welcome to Thornvale.")
	s.transport.SendPrompt("What is your name? ")

	go s.run()
}

// Post delivers a message to the actor. It never blocks: a message for a
// terminated session is dropped. A full mailbox marks the session overloaded
// and the actor disconnects it after the current message; dropping individual
// messages would break the per-sender ordering the mailbox promises, so the
// session goes down whole instead.
func (s *Session) Post(msg Message) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.mailbox <- msg:
	case <-s.done:
	default:
		log.Printf("session %s: mailbox full on %T, disconnecting", s.Name(), msg)
		s.overflowed.Store(true)
	}
}

// Done is closed when the actor has terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// CurrentRoom returns the room the character currently occupies; empty before
// authentication.
func (s *Session) CurrentRoom() string {
	return s.roomID.Load().(string)
}

// Name returns the character's display name; empty before authentication.
func (s *Session) Name() string {
	return s.name.Load().(string)
}

// Ref returns the character's tagged reference; zero before authentication.
func (s *Session) Ref() game.Ref {
	return s.ref.Load().(game.Ref)
}

func (s *Session) run() {
	for msg := range s.mailbox {
		s.handle(msg)
		if !s.closing && s.overflowed.Load() {
			s.handle(Disconnect{Reason: "message backlog overflow"})
		}
		if s.closing {
			s.finish()
			return
		}
	}
}

// handle runs one message with panic isolation: a fault inside any handler
// terminates only this session.
func (s *Session) handle(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("session %s: panic handling %T: %v", s.Name(), msg, r)
			s.fatal = true
			s.closing = true
		}
	}()
	s.dispatch(msg)
}

// finish tears the session down: timers cancelled, registry entry removed,
// online time flushed. After a panic the final persist is skipped so
// corrupted state is never written. An evicted session no longer owns the
// identity: its record is stale against whatever the successor has already
// saved, so it must not write at all. The successor took over its online
// time at eviction.
func (s *Session) finish() {
	for _, tok := range s.timerTokens {
		s.sched.Cancel(tok)
	}

	if s.char != nil {
		owned := s.registry.Unregister(s.char.ID, s)

		if owned && !s.fatal {
			s.char.Save.PlayedSeconds += s.elapsedSeconds(s.now())
			if err := s.characters.Update(s.ctx, s.char); err != nil {
				log.Printf("session %s: final persist failed: %v", s.char.Name, err)
			}
		}
	}

	s.transport.Close()
	close(s.done)
}

// elapsedSeconds reports how long this session has been connected. Safe to
// call from other goroutines: sessionStartedAt is set once before the actor
// starts and never changes.
func (s *Session) elapsedSeconds(now time.Time) int64 {
	return int64(now.Sub(s.sessionStartedAt).Seconds())
}
