package blackjack

import (
	"errors"

	"github.com/google/uuid"

	"github.com/hallorann/pitboss/pkg/cards"
)

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNoCurrentHand  = errors.New("no hand is awaiting action")
	ErrCannotSplit    = errors.New("hand cannot be split")
	ErrCannotDouble   = errors.New("hand cannot be doubled")
	ErrNotFinished    = errors.New("game is not finished")
	ErrAlreadySettled = errors.New("game has already been settled")
)

// Action is an interactive move a player may make on their turn.
type Action string

const (
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionSplit  Action = "split"
	ActionDouble Action = "double"
)

// Session is a single-player blackjack game from deal to settlement.
// Each session is owned by one user and is mutated only from that
// user's interaction context, so it carries no locking of its own.
type Session struct {
	ID        string
	UserID    string
	Deck      *cards.Deck
	Hands     []*Hand
	Dealer    *Hand
	Current   int
	SplitUsed bool
	Finished  bool
	Settled   bool
	Summary   string
}

// NewSession deals a fresh game from a shuffled deck with the given
// bet riding on the initial hand. Naturals are resolved immediately:
// the returned session may already be finished.
func NewSession(userID string, bet int64) *Session {
	return NewSessionFromDeck(userID, bet, cards.NewShuffledDeck())
}

// NewSessionFromDeck deals a game from a caller-supplied deck. Used by
// tests to play out fixed card orders.
func NewSessionFromDeck(userID string, bet int64, deck *cards.Deck) *Session {
	g := &Session{
		ID:     uuid.New().String(),
		UserID: userID,
		Deck:   deck,
		Hands:  []*Hand{NewHand(bet)},
		Dealer: NewHand(0),
	}

	g.Hands[0].AddCard(g.Deck.Draw())
	g.Hands[0].AddCard(g.Deck.Draw())
	g.Dealer.AddCard(g.Deck.Draw())
	g.Dealer.AddCard(g.Deck.Draw())

	g.resolveNaturals()
	return g
}

// resolveNaturals ends the game on the spot when either side was dealt
// a two-card 21.
func (g *Session) resolveNaturals() {
	playerNatural := g.Hands[0].IsNatural()
	dealerNatural := g.Dealer.IsNatural()

	switch {
	case playerNatural && dealerNatural:
		g.Hands[0].Status = StatusPush
		g.finish()
	case playerNatural:
		g.Hands[0].Status = StatusBlackjack
		g.finish()
	case dealerNatural:
		g.Hands[0].Status = StatusLose
		g.finish()
	}
}

// CurrentHand returns the hand awaiting action, or nil once the game
// is finished.
func (g *Session) CurrentHand() *Hand {
	if g.Finished || g.Current >= len(g.Hands) {
		return nil
	}
	return g.Hands[g.Current]
}

// Hit draws one card into the current hand. A bust advances play;
// otherwise the hand stays live for further action.
func (g *Session) Hit() error {
	hand := g.CurrentHand()
	if hand == nil {
		return ErrGameFinished
	}

	hand.AddCard(g.Deck.Draw())
	if hand.Status == StatusBust {
		g.advance()
	}
	return nil
}

// Stand marks the current hand as stood and advances play.
func (g *Session) Stand() error {
	hand := g.CurrentHand()
	if hand == nil {
		return ErrGameFinished
	}

	hand.Status = StatusStood
	g.advance()
	return nil
}

// CanSplit reports whether the initial hand may be split: one hand of
// exactly two equal-rank cards, and no split used yet this session.
func (g *Session) CanSplit() bool {
	if g.Finished || g.SplitUsed || len(g.Hands) != 1 {
		return false
	}
	hand := g.Hands[0]
	return len(hand.Cards) == 2 && hand.Cards[0].Rank == hand.Cards[1].Rank
}

// Split divides the initial pair into two hands, deals one card to
// each, and duplicates the original bet onto the second hand. Play
// restarts at the first hand. Usable at most once per session. The
// caller is responsible for debiting the duplicated bet beforehand.
func (g *Session) Split() error {
	if !g.CanSplit() {
		return ErrCannotSplit
	}

	original := g.Hands[0]
	first := NewHand(original.Bet)
	second := NewHand(original.Bet)
	first.AddCard(original.Cards[0])
	second.AddCard(original.Cards[1])
	first.AddCard(g.Deck.Draw())
	second.AddCard(g.Deck.Draw())

	g.Hands = []*Hand{first, second}
	g.SplitUsed = true
	g.Current = 0
	return nil
}

// CanDouble reports whether the current hand may double down: exactly
// two cards, not already doubled, still playing.
func (g *Session) CanDouble() bool {
	hand := g.CurrentHand()
	if hand == nil {
		return false
	}
	return len(hand.Cards) == 2 && !hand.Doubled && hand.Status == StatusPlaying
}

// DoubleDown doubles the current hand's bet, draws exactly one card,
// and forces a stand. The caller is responsible for debiting the
// additional bet beforehand.
func (g *Session) DoubleDown() error {
	if !g.CanDouble() {
		return ErrCannotDouble
	}

	hand := g.CurrentHand()
	hand.Bet *= 2
	hand.Doubled = true
	hand.AddCard(g.Deck.Draw())
	if hand.Status != StatusBust {
		hand.Status = StatusStood
	}
	g.advance()
	return nil
}

// LegalActions returns the moves currently available to the player.
// The presentation layer renders exactly this set as enabled controls.
func (g *Session) LegalActions() []Action {
	if g.CurrentHand() == nil {
		return nil
	}

	actions := []Action{ActionHit, ActionStand}
	if g.CanSplit() {
		actions = append(actions, ActionSplit)
	}
	if g.CanDouble() {
		actions = append(actions, ActionDouble)
	}
	return actions
}

// advance moves play to the next hand still awaiting action, finishing
// the game when none remain.
func (g *Session) advance() {
	for g.Current < len(g.Hands) {
		if !g.Hands[g.Current].Status.Terminal() {
			return
		}
		g.Current++
	}
	g.finalize()
}

// finalize plays out the dealer and scores every surviving hand. The
// dealer draws to 17 or better, but only if at least one player hand
// survived; against a table of busts the dealer never acts.
func (g *Session) finalize() {
	anySurvived := false
	for _, hand := range g.Hands {
		if hand.Status != StatusBust {
			anySurvived = true
			break
		}
	}

	if anySurvived {
		for g.Dealer.Score() < DealerStandTotal {
			g.Dealer.AddCard(g.Deck.Draw())
		}

		dealerScore := g.Dealer.Score()
		dealerBust := dealerScore > BlackjackTotal

		for _, hand := range g.Hands {
			if hand.Status != StatusStood {
				continue
			}
			score := hand.Score()
			switch {
			case dealerBust || score > dealerScore:
				hand.Status = StatusWin
			case score == dealerScore:
				hand.Status = StatusPush
			default:
				hand.Status = StatusLose
			}
		}
	}

	g.finish()
}

// finish marks the session finished and writes the result summary.
func (g *Session) finish() {
	g.Finished = true
	g.Summary = g.summarize()
}

func (g *Session) summarize() string {
	wins, pushes := 0, 0
	for _, hand := range g.Hands {
		switch hand.Status {
		case StatusWin, StatusBlackjack:
			wins++
		case StatusPush:
			pushes++
		}
	}

	total := len(g.Hands)
	switch {
	case wins == total:
		return "You beat the house! Every hand is a winner."
	case wins > 0:
		return "A split decision. Some hands won, the rest go to the house."
	case pushes == total:
		return "Push. The house hands your money back."
	case pushes > 0:
		return "No winners here. Pushed hands get their bets back, the rest go to the house."
	default:
		return "The house wins. Better luck next time."
	}
}

// SettlePayout returns the total credit due for the finished game:
// 2x the bet for each winning or blackjack hand, the bet back for each
// push, nothing for busts and losses. It pays at most once; any later
// call returns 0.
func (g *Session) SettlePayout() (int64, error) {
	if !g.Finished {
		return 0, ErrNotFinished
	}
	if g.Settled {
		return 0, nil
	}
	g.Settled = true

	var payout int64
	for _, hand := range g.Hands {
		switch hand.Status {
		case StatusWin, StatusBlackjack:
			payout += hand.Bet * 2
		case StatusPush:
			payout += hand.Bet
		}
	}
	return payout, nil
}

// Forfeit ends an abandoned game. Hands still playing are marked lost;
// bets already debited stay with the house. Settlement still runs
// normally afterwards so stood-and-scored hands keep their payouts.
func (g *Session) Forfeit() {
	if g.Finished {
		return
	}
	for _, hand := range g.Hands {
		if hand.Status == StatusPlaying {
			hand.Status = StatusLose
		}
	}
	g.Finished = true
	g.Summary = "Time ran out. The house keeps your bet."
}
