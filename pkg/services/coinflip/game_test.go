package coinflip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// riggedCoin always lands on the given side.
func riggedCoin(side Side) func() Side {
	return func() Side { return side }
}

func TestStreakToTargetPaysOnce(t *testing.T) {
	g := NewGameWithFlip("user1", riggedCoin(Heads))

	for i := 1; i < TargetStreak; i++ {
		result, err := g.Guess(Heads)
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, i, result.Streak)
		assert.False(t, result.Won)
		assert.Zero(t, result.Payout)
	}

	result, err := g.Guess(Heads)
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, Reward, result.Payout)
	assert.True(t, g.Finished)

	// A finished game takes no more guesses
	_, err = g.Guess(Heads)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestWrongGuessAtFourResetsStreak(t *testing.T) {
	g := NewGameWithFlip("user1", riggedCoin(Heads))

	for i := 0; i < TargetStreak-1; i++ {
		_, err := g.Guess(Heads)
		require.NoError(t, err)
	}
	assert.Equal(t, TargetStreak-1, g.Streak)

	result, err := g.Guess(Tails)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.Streak)
	assert.False(t, result.Won)
	assert.Zero(t, result.Payout)
	assert.False(t, g.Finished)
}

func TestRebuildStreakAfterReset(t *testing.T) {
	g := NewGameWithFlip("user1", riggedCoin(Heads))

	_, err := g.Guess(Heads)
	require.NoError(t, err)
	_, err = g.Guess(Tails)
	require.NoError(t, err)
	assert.Zero(t, g.Streak)

	for i := 0; i < TargetStreak; i++ {
		result, err := g.Guess(Heads)
		require.NoError(t, err)
		if i == TargetStreak-1 {
			assert.True(t, result.Won)
			assert.Equal(t, Reward, result.Payout)
		}
	}
}

func TestAbandon(t *testing.T) {
	g := NewGameWithFlip("user1", riggedCoin(Heads))
	g.Abandon()

	assert.True(t, g.Finished)
	assert.False(t, g.Rewarded)
	_, err := g.Guess(Heads)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestFairCoinProducesBothSides(t *testing.T) {
	g := NewGame("user1")

	seen := map[Side]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		seen[g.flip()] = true
	}
	assert.Len(t, seen, 2)
}
