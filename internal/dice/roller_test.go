package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRollerStaysInRange(t *testing.T) {
	roller := NewRandomRoller()

	for i := 0; i < 100; i++ {
		total, err := roller.Roll(2, 6, 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 5)
		assert.LessOrEqual(t, total, 15)
	}
}

func TestRandomRollerRejectsBadInput(t *testing.T) {
	roller := NewRandomRoller()

	_, err := roller.Roll(0, 6, 0)
	assert.Error(t, err)

	_, err = roller.Roll(1, 1, 0)
	assert.Error(t, err)
}

func TestManualRollerReturnsQueuedValues(t *testing.T) {
	roller := NewManual()
	roller.SetRolls(4, 1)

	total, err := roller.Roll(1, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	total, err = roller.Roll(1, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, err = roller.Roll(1, 6, 0)
	assert.Error(t, err)
}
