package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/thornvale/mud/internal/effects"
	"github.com/thornvale/mud/internal/game"
	"github.com/thornvale/mud/internal/repositories/characters"
	"github.com/thornvale/mud/internal/world"
	mockworld "github.com/thornvale/mud/internal/world/mock"
)

func itemEvent(s *Session, key, name string, count int) world.Event {
	return world.ItemReceived{
		To:   s.char.Ref(),
		Item: game.Item{Key: key, Name: name, Count: count, Stackable: true},
	}
}

func currencyEvent(s *Session, amount int) world.Event {
	return world.CurrencyReceived{To: s.char.Ref(), Amount: amount}
}

func TestMoveBetweenRooms(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	s.dispatch(ReceiveLine{Line: "north"})
	assert.Equal(t, "north-road", s.CurrentRoom())
	assert.Equal(t, "north-road", s.char.Save.RoomID)
	assert.True(t, tr.contains("The North Road"))

	tr.reset()
	s.dispatch(ReceiveLine{Line: "west"})
	assert.Equal(t, "north-road", s.CurrentRoom())
	assert.True(t, tr.contains("You cannot go west."))
}

func TestMoveAnnouncesToBothRooms(t *testing.T) {
	fx := newFixture(t)
	mover, tr1 := fx.newSession(t)
	fx.login(t, mover, tr1, "Mira")
	stayer, tr2 := fx.newSession(t)
	fx.login(t, stayer, tr2, "Borin")
	stayer.dispatch(ReceiveLine{Line: "north"})
	drain(mover)
	tr1.reset()
	tr2.reset()

	mover.dispatch(ReceiveLine{Line: "north"})
	drain(stayer)
	assert.True(t, tr2.contains("arrives from the south"), "output: %s", tr2.output())
}

func TestUnknownCommandEchoes(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	s.dispatch(ReceiveLine{Line: "frobnicate the thing"})
	assert.True(t, tr.contains("Huh? 'frobnicate' is not a command."))
	assert.Equal(t, statusActive, s.status)
}

func TestSayReachesRoomOccupants(t *testing.T) {
	fx := newFixture(t)
	speaker, tr1 := fx.newSession(t)
	fx.login(t, speaker, tr1, "Mira")
	listener, tr2 := fx.newSession(t)
	fx.login(t, listener, tr2, "Borin")
	drain(speaker)
	tr1.reset()
	tr2.reset()

	speaker.dispatch(ReceiveLine{Line: "say hello there"})
	assert.True(t, tr1.contains(`You say, "hello there"`))

	drain(listener)
	assert.True(t, tr2.contains(`says, "hello there"`))
	drain(speaker)
	assert.False(t, tr1.contains("Mira says"), "speaker must not hear their own speech twice")
}

func TestTellSetsReplyTarget(t *testing.T) {
	fx := newFixture(t)
	sender, tr1 := fx.newSession(t)
	fx.login(t, sender, tr1, "Mira")
	receiver, tr2 := fx.newSession(t)
	fx.login(t, receiver, tr2, "Borin")
	drain(sender)
	tr1.reset()
	tr2.reset()

	sender.dispatch(ReceiveLine{Line: "tell Borin meet me at the bridge"})
	assert.True(t, tr1.contains("You tell"))

	drain(receiver)
	assert.True(t, tr2.contains(`tells you, "meet me at the bridge"`))
	assert.Equal(t, sender.char.Ref(), receiver.replyTo)

	tr1.reset()
	receiver.dispatch(ReceiveLine{Line: "reply on my way"})
	drain(sender)
	assert.True(t, tr1.contains(`tells you, "on my way"`))
}

func TestReplyWithNoHistory(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	s.dispatch(ReceiveLine{Line: "reply hello"})
	assert.True(t, tr.contains("You have no one to reply to."))
}

func TestChannelJoinLeaveIdempotence(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	require.Equal(t, []string{"gossip"}, s.char.Save.Channels)

	s.dispatch(ReceiveLine{Line: "join trade"})
	assert.Equal(t, []string{"gossip", "trade"}, s.char.Save.Channels)

	// Joining again leaves the list unchanged.
	s.dispatch(ReceiveLine{Line: "join trade"})
	assert.Equal(t, []string{"gossip", "trade"}, s.char.Save.Channels)
	assert.True(t, tr.contains("You are already on the 'trade' channel."))

	s.dispatch(ReceiveLine{Line: "leave gossip"})
	assert.Equal(t, []string{"trade"}, s.char.Save.Channels)

	s.dispatch(ReceiveLine{Line: "leave gossip"})
	assert.Equal(t, []string{"trade"}, s.char.Save.Channels)
	assert.True(t, tr.contains("You are not on the 'gossip' channel."))
}

func TestChatOnlyReachesSubscribers(t *testing.T) {
	fx := newFixture(t)
	speaker, tr1 := fx.newSession(t)
	fx.login(t, speaker, tr1, "Mira")
	subscribed, tr2 := fx.newSession(t)
	fx.login(t, subscribed, tr2, "Borin")
	outsider, tr3 := fx.newSession(t)
	fx.login(t, outsider, tr3, "Cale")
	outsider.dispatch(ReceiveLine{Line: "leave gossip"})
	drain(speaker)
	drain(subscribed)
	tr1.reset()
	tr2.reset()
	tr3.reset()

	speaker.dispatch(ReceiveLine{Line: "chat gossip any takers for the caves?"})
	drain(speaker)
	drain(subscribed)
	drain(outsider)

	assert.True(t, tr1.contains("[gossip] Mira:"), "sender hears their own chatter")
	assert.True(t, tr2.contains("[gossip] Mira: any takers for the caves?"))
	assert.False(t, tr3.contains("[gossip]"))
}

func TestAttackTargetsAndDamages(t *testing.T) {
	fx := newFixture(t)
	attacker, tr1 := fx.newSession(t)
	fx.login(t, attacker, tr1, "Mira")
	victim, tr2 := fx.newSession(t)
	fx.login(t, victim, tr2, "Borin")
	drain(attacker)
	tr1.reset()
	tr2.reset()

	fx.roller.SetRolls(5) // 1d6 weapon die + level 1
	attacker.dispatch(ReceiveLine{Line: "attack Borin"})
	assert.Equal(t, victim.char.Ref(), attacker.target)
	assert.True(t, tr1.contains("You attack"))

	drain(victim)
	// Passive target auto-retaliates against the first aggressor.
	assert.Equal(t, attacker.char.Ref(), victim.target)
	assert.Contains(t, victim.targetingMe, attacker.char.Ref())
	assert.True(t, tr2.contains("slashing damage is dealt."))
	assert.Equal(t, 25-6, victim.char.Save.Stats.Health)
}

func TestCastSmiteDamagesTarget(t *testing.T) {
	fx := newFixture(t)
	caster, tr1 := fx.newSession(t)
	fx.login(t, caster, tr1, "Mira")
	victim, tr2 := fx.newSession(t)
	fx.login(t, victim, tr2, "Borin")
	drain(caster)
	tr2.reset()

	fx.roller.SetRolls(5) // 2d4 queued as 5, + level 1 = 6
	caster.dispatch(ReceiveLine{Line: "cast smite Borin"})
	assert.Equal(t, 10-4, caster.char.Save.Stats.Skill)
	assert.Equal(t, victim.char.Ref(), caster.target)

	drain(victim)
	assert.True(t, tr2.contains("6 holy damage is dealt."))
	assert.Equal(t, 25-6, victim.char.Save.Stats.Health)
}

func TestCastMendOnSelfRecovers(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Health = 10
	tr.reset()

	fx.roller.SetRolls(7) // 2d4 queued as 7, + level 1 = 8
	s.dispatch(ReceiveLine{Line: "cast mend self"})
	assert.Equal(t, 10-3, s.char.Save.Stats.Skill)
	assert.Equal(t, 18, s.char.Save.Stats.Health)
	assert.True(t, tr.contains("8 health points are recovered."))
}

func TestCastWithoutSkillRefuses(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Skill = 2
	tr.reset()

	s.dispatch(ReceiveLine{Line: "cast smite self"})
	assert.Equal(t, 2, s.char.Save.Stats.Skill)
	assert.True(t, tr.contains("too drained"))
}

func TestRegenBelowThresholdDoesNothing(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Health = 10

	s.dispatch(RegenTick{})
	s.dispatch(RegenTick{})
	assert.Equal(t, 10, s.char.Save.Stats.Health)
	assert.Equal(t, 2, s.regenTicks)
	assert.False(t, tr.contains("regenerating"))
}

func TestRegenRestoresClassRatesAtThreshold(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Health = 10
	s.char.Save.Stats.Skill = 9
	s.char.Save.Stats.Move = 20

	for i := 0; i < testTimers().RegenThreshold; i++ {
		s.dispatch(RegenTick{})
	}

	// Warrior rates: 5 health, 2 skill, 4 move; skill and move clamp.
	assert.Equal(t, 15, s.char.Save.Stats.Health)
	assert.Equal(t, 10, s.char.Save.Stats.Skill)
	assert.Equal(t, 20, s.char.Save.Stats.Move)
	assert.Equal(t, 0, s.regenTicks)
	assert.True(t, tr.contains("You feel yourself regenerating."))
}

func TestRegenSilentAtCaps(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	for i := 0; i < testTimers().RegenThreshold; i++ {
		s.dispatch(RegenTick{})
	}
	assert.False(t, tr.contains("regenerating"))
	assert.Empty(t, tr.prompts)
}

func TestRegenSuppressedWhileDead(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.dispatch(Teleport{RoomID: "cave-mouth"})

	s.dispatch(ApplyEffects{Effects: []effects.Effect{effects.Damage("slashing", 30)}})
	require.True(t, s.char.Save.Stats.Dead())
	require.False(t, s.isRegenerating)
	tr.reset()

	for i := 0; i < 3*testTimers().RegenThreshold; i++ {
		s.dispatch(RegenTick{})
	}
	assert.Equal(t, 25-30, s.char.Save.Stats.Health)
	assert.False(t, tr.contains("regenerating"))
}

func TestApplyEffectsDamageAndEcho(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	require.Equal(t, 25, s.char.Save.Stats.Health)

	s.dispatch(ApplyEffects{
		Source:      game.NonPlayerRef("wolf-1"),
		Description: "The wolf bites you!",
		Effects:     []effects.Effect{effects.Damage("slashing", 10)},
	})

	assert.Equal(t, 15, s.char.Save.Stats.Health)
	assert.True(t, tr.contains("The wolf bites you!"))
	assert.True(t, tr.contains("10 slashing damage is dealt."))
	assert.False(t, s.char.Save.Stats.Dead())
}

func TestRecoverClampsAtMaximum(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Health = 20

	s.dispatch(ApplyEffects{
		Effects: []effects.Effect{effects.Recover(game.PoolHealth, 50)},
	})
	assert.Equal(t, 25, s.char.Save.Stats.Health)
	assert.True(t, tr.contains("5 health points are recovered."))
}

func TestDeathSchedulesResurrectionAtGraveyard(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	require.Equal(t, 0, fx.sched.Pending())

	s.dispatch(ApplyEffects{
		Source:  game.NonPlayerRef("wolf-1"),
		Effects: []effects.Effect{effects.Damage("slashing", 26)},
	})

	assert.Equal(t, -1, s.char.Save.Stats.Health)
	assert.True(t, tr.contains("You have died!"))
	assert.False(t, s.isRegenerating)
	require.Equal(t, 1, fx.sched.Pending(), "resurrection should be scheduled")

	fx.sched.FireNext()
	drain(s)

	assert.Equal(t, 1, s.char.Save.Stats.Health)
	assert.Equal(t, "chapel-yard", s.CurrentRoom())
	assert.Equal(t, "chapel-yard", s.char.Save.RoomID)
	assert.True(t, s.isRegenerating)
	assert.True(t, tr.contains("Chapel Yard"))
}

func TestDeathWithoutGraveyardStaysDown(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.dispatch(Teleport{RoomID: "cave-gallery"})

	s.dispatch(ApplyEffects{
		Source:  game.NonPlayerRef("skitterer-1"),
		Effects: []effects.Effect{effects.Damage("piercing", 30)},
	})

	assert.True(t, s.char.Save.Stats.Dead())
	assert.True(t, tr.contains("You have died!"))
	assert.Equal(t, 0, fx.sched.Pending(), "no teleport without a graveyard")
	assert.Equal(t, "cave-gallery", s.CurrentRoom())
}

func TestResurrectIdempotentOnLiving(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Stats.Health = 2

	s.dispatch(Resurrect{RoomID: "chapel-yard"})
	assert.Equal(t, 2, s.char.Save.Stats.Health, "resurrection never reduces health")
	assert.Equal(t, "chapel-yard", s.CurrentRoom())
}

func TestContinuousEffectTicksAndReschedules(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	s.dispatch(ApplyEffects{
		Source:  game.NonPlayerRef("spider-1"),
		Effects: []effects.Effect{effects.DamageOverTime("poison", 10, 10*time.Second, 3)},
	})

	// Registration alone deals no damage.
	assert.Equal(t, 25, s.char.Save.Stats.Health)
	assert.Equal(t, 1, s.ledger.Len())
	assert.True(t, tr.contains("10 poison damage will be dealt 3 more times."))
	require.Equal(t, 1, fx.sched.Pending())

	fx.sched.FireNext()
	drain(s)
	assert.Equal(t, 15, s.char.Save.Stats.Health)
	assert.Equal(t, 1, s.ledger.Len())
	require.Equal(t, 1, fx.sched.Pending(), "a surviving effect reschedules itself")
}

func TestLethalContinuousEffectDoesNotReschedule(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.dispatch(Teleport{RoomID: "cave-mouth"})

	s.dispatch(ApplyEffects{
		Source:  game.NonPlayerRef("spider-1"),
		Effects: []effects.Effect{effects.DamageOverTime("poison", 26, 10*time.Second, 3)},
	})
	require.Equal(t, 1, fx.sched.Pending())

	fx.sched.FireNext()
	drain(s)

	assert.Equal(t, -1, s.char.Save.Stats.Health)
	assert.Equal(t, 0, s.ledger.Len(), "death clears the ledger")
	assert.Equal(t, 0, fx.sched.Pending(), "no reschedule, no graveyard in the caves")
	assert.True(t, tr.contains("You have died!"))
}

func TestFiringClearedEffectIsNoOp(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	tr.reset()

	s.dispatch(ContinuousEffectFire{EffectID: "long-gone"})
	assert.Equal(t, 25, s.char.Save.Stats.Health)
	assert.Empty(t, tr.echoes)
}

func TestKillerReceivesExperience(t *testing.T) {
	fx := newFixture(t)
	killer, tr1 := fx.newSession(t)
	fx.login(t, killer, tr1, "Mira")
	victim, tr2 := fx.newSession(t)
	fx.login(t, victim, tr2, "Borin")
	drain(killer)
	tr1.reset()

	victim.char.Save.Stats.Health = 1
	victim.dispatch(ApplyEffects{
		Source:  killer.char.Ref(),
		Effects: []effects.Effect{effects.Damage("slashing", 10)},
	})
	require.True(t, victim.char.Save.Stats.Dead())

	drain(killer)
	assert.True(t, tr1.contains("has been slain by"))
	assert.True(t, tr1.contains("You gain 75 experience."))
	assert.Equal(t, 75, killer.char.Save.Experience)
	assert.True(t, killer.target.IsZero(), "dead target must be cleared")
}

func TestTargetClearedWhenTargetLeavesRoom(t *testing.T) {
	fx := newFixture(t)
	attacker, tr1 := fx.newSession(t)
	fx.login(t, attacker, tr1, "Mira")
	victim, tr2 := fx.newSession(t)
	fx.login(t, victim, tr2, "Borin")
	drain(attacker)

	fx.roller.SetRolls(5)
	attacker.dispatch(ReceiveLine{Line: "attack Borin"})
	drain(victim)
	require.Equal(t, victim.char.Ref(), attacker.target)

	victim.dispatch(ReceiveLine{Line: "north"})
	drain(attacker)
	assert.True(t, attacker.target.IsZero())
}

func TestRoomLookupFailureFallsBackToVoid(t *testing.T) {
	fx := newFixture(t)
	ctrl := gomock.NewController(t)
	provider := mockworld.NewMockProvider(ctrl)
	provider.EXPECT().Room(gomock.Any(), gomock.Any()).Return(nil, assert.AnError).AnyTimes()
	provider.EXPECT().Broadcast(gomock.Any(), gomock.Any()).AnyTimes()

	tr := &fakeTransport{}
	s := New(&Config{
		Transport:    tr,
		Registry:     fx.registry,
		Characters:   fx.chars,
		Auth:         fx.auth,
		World:        provider,
		Scheduler:    fx.sched,
		Timers:       testTimers(),
		TimeProvider: fx.clock.Now,
		Roller:       fx.roller,
	})
	s.dispatch(ReceiveLine{Line: "Mira"})
	s.dispatch(ReceiveLine{Line: "hunter2"})
	require.Equal(t, statusActive, s.status)

	assert.True(t, tr.contains("A formless gray void."))
}

func TestInactivityMarksAfkThenKicks(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	fx.clock.Advance(testTimers().AfkAfter)
	s.dispatch(InactivityCheck{})
	assert.True(t, s.isAfk)
	assert.True(t, tr.contains("AFK"))

	// Input clears the flag.
	s.dispatch(ReceiveLine{Line: "look"})
	assert.False(t, s.isAfk)
	assert.True(t, tr.contains("You are no longer AFK."))

	fx.clock.Advance(testTimers().KickAfter)
	s.dispatch(InactivityCheck{})
	assert.True(t, s.closing)
	assert.True(t, tr.contains("You have been idle too long."))
}

func TestPersistTickBeforeAuthenticationIsNoOp(t *testing.T) {
	fx := newFixture(t)
	s, _ := fx.newSession(t)

	// Must not touch the repository or panic with no character loaded.
	s.dispatch(PersistTick{})
	assert.Equal(t, statusUnauthenticated, s.status)
}

func TestPersistTickWritesSaveData(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.char.Save.Currency = 42

	s.dispatch(PersistTick{})

	stored, err := fx.chars.GetByName(context.Background(), "Mira")
	require.NoError(t, err)
	assert.Equal(t, 42, stored.Save.Currency)
}

// failingRepo wraps a repository and fails every Update.
type failingRepo struct {
	characters.Repository
}

func (f *failingRepo) Update(context.Context, *game.Character) error {
	return errors.New("redis down")
}

func TestPersistFailureDoesNotCrashSession(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")
	s.characters = &failingRepo{Repository: fx.chars}

	s.dispatch(PersistTick{})
	assert.Equal(t, statusActive, s.status)

	// Still responsive afterwards.
	s.dispatch(ReceiveLine{Line: "score"})
	assert.True(t, tr.contains("level 1"))
}

func TestItemAndCurrencyNotifications(t *testing.T) {
	fx := newFixture(t)
	s, tr := fx.newSession(t)
	fx.login(t, s, tr, "Mira")

	s.dispatch(Notify{Event: itemEvent(s, "rope", "a coil of rope", 2)})
	s.dispatch(Notify{Event: itemEvent(s, "rope", "a coil of rope", 3)})
	require.Len(t, s.char.Save.Inventory, 1, "stackable items merge")
	assert.Equal(t, 5, s.char.Save.Inventory[0].Count)
	assert.True(t, tr.contains("You receive a coil of rope (x2)."))

	s.dispatch(Notify{Event: currencyEvent(s, 30)})
	assert.Equal(t, 30, s.char.Save.Currency)
	assert.True(t, tr.contains("You receive 30 coins."))
}
