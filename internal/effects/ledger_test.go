package effects_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/thornvale/mud/internal/effects"
	"github.com/thornvale/mud/internal/game"
	mockuuid "github.com/thornvale/mud/internal/uuid/mocks"
)

func TestLedger_AddAssignsFreshIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mockuuid.NewMockGenerator(ctrl)
	gen.EXPECT().New().Return("effect-1")
	gen.EXPECT().New().Return("effect-2")

	ledger := effects.NewLedger(gen)
	poison := effects.DamageOverTime("poison", 10, 10*time.Second, 3)

	first := ledger.Add(game.NonPlayerRef("spider"), poison)
	second := ledger.Add(game.NonPlayerRef("spider"), poison)

	assert.Equal(t, "effect-1", first.ID)
	assert.Equal(t, "effect-2", second.ID)
	assert.Equal(t, 3, first.Remaining)
	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_FireDecrementsAndRemovesAtZero(t *testing.T) {
	ledger := effects.NewLedger(nil)
	inst := ledger.Add(game.NonPlayerRef("spider"), effects.DamageOverTime("poison", 10, 10*time.Second, 2))

	fired, remaining, ok := ledger.Fire(inst.ID)
	require.True(t, ok)
	assert.True(t, remaining)
	assert.Equal(t, 1, fired.Remaining)

	fired, remaining, ok = ledger.Fire(inst.ID)
	require.True(t, ok)
	assert.False(t, remaining)
	assert.Equal(t, 0, fired.Remaining)
	assert.Equal(t, 0, ledger.Len())
}

func TestLedger_FireUnknownIDIsNoOp(t *testing.T) {
	ledger := effects.NewLedger(nil)

	_, _, ok := ledger.Fire("gone")
	assert.False(t, ok)
}

func TestLedger_ClearDropsEverything(t *testing.T) {
	ledger := effects.NewLedger(nil)
	inst := ledger.Add(game.NonPlayerRef("spider"), effects.DamageOverTime("poison", 5, time.Second, 4))
	ledger.Add(game.NonPlayerRef("snake"), effects.DamageOverTime("venom", 3, time.Second, 2))

	ledger.Clear()

	assert.Equal(t, 0, ledger.Len())
	_, _, ok := ledger.Fire(inst.ID)
	assert.False(t, ok, "firing after clear must be a no-op")
}
