package blackjack

import (
	"github.com/hallorann/pitboss/pkg/cards"
)

// Status represents the current state of a hand. Transitions are
// one-directional: playing moves to exactly one terminal status and
// terminal statuses never revert.
type Status string

const (
	StatusPlaying   Status = "PLAYING"
	StatusBust      Status = "BUST"
	StatusStood     Status = "STOOD"
	StatusWin       Status = "WIN"
	StatusLose      Status = "LOSE"
	StatusPush      Status = "PUSH"
	StatusBlackjack Status = "BLACKJACK"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s != StatusPlaying
}

// Hand is one party's cards plus the wager riding on them. The dealer
// hand carries a zero bet.
type Hand struct {
	Cards   []cards.Card
	Bet     int64
	Doubled bool
	Status  Status
}

// NewHand creates an empty playing hand with the given bet
func NewHand(bet int64) *Hand {
	return &Hand{
		Cards:  make([]cards.Card, 0, 4),
		Bet:    bet,
		Status: StatusPlaying,
	}
}

// AddCard adds a card to the hand and busts it if the total exceeds 21
func (h *Hand) AddCard(card cards.Card) {
	h.Cards = append(h.Cards, card)
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}
}

// Score returns the hand's best total
func (h *Hand) Score() int {
	return BestScore(h.Cards)
}

// IsNatural reports whether the hand is a two-card 21
func (h *Hand) IsNatural() bool {
	return IsNatural(h.Cards)
}
