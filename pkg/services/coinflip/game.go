package coinflip

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	// TargetStreak is the run of correct guesses that wins the game.
	TargetStreak = 5

	// Reward is the flat payout for reaching the target streak.
	Reward int64 = 500
)

var ErrGameFinished = errors.New("game is already finished")

// Side is a coin face.
type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// Game is a guess-the-flip streak played by one user. No wager is
// involved; reaching the target streak pays the flat reward once.
type Game struct {
	ID       string
	UserID   string
	Streak   int
	Finished bool
	Rewarded bool

	flip func() Side
}

// NewGame creates a streak game for a user with a fair coin.
func NewGame(userID string) *Game {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewGameWithFlip(userID, func() Side {
		if r.Intn(2) == 0 {
			return Heads
		}
		return Tails
	})
}

// NewGameWithFlip creates a game with a caller-supplied coin. Used by
// tests to fix the flip outcomes.
func NewGameWithFlip(userID string, flip func() Side) *Game {
	return &Game{
		ID:     uuid.New().String(),
		UserID: userID,
		flip:   flip,
	}
}

// Result describes the outcome of a single guess.
type Result struct {
	Flip    Side
	Correct bool
	Streak  int
	Won     bool
	Payout  int64
}

// Guess flips the coin against the player's call. A correct call
// extends the streak; a wrong one resets it to zero. Reaching the
// target streak pays the reward exactly once and finishes the game.
func (g *Game) Guess(call Side) (*Result, error) {
	if g.Finished {
		return nil, ErrGameFinished
	}

	result := &Result{Flip: g.flip()}
	result.Correct = result.Flip == call

	if result.Correct {
		g.Streak++
	} else {
		g.Streak = 0
	}
	result.Streak = g.Streak

	if g.Streak >= TargetStreak && !g.Rewarded {
		g.Rewarded = true
		g.Finished = true
		result.Won = true
		result.Payout = Reward
	}

	return result, nil
}

// Abandon finishes an idle game without reward.
func (g *Game) Abandon() {
	g.Finished = true
}
