package blackjack

import (
	"strconv"

	"github.com/hallorann/pitboss/pkg/cards"
)

const (
	// DealerStandTotal is the total the dealer draws up to.
	DealerStandTotal = 17

	// BlackjackTotal is the winning hand total.
	BlackjackTotal = 21
)

func CardValue(card cards.Card) int {
	switch card.Rank {
	case cards.Ace:
		return 11
	case cards.Jack, cards.Queen, cards.King:
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card cards.Card) bool {
	return card.Rank == cards.Ace
}

// BestScore returns the highest hand total that does not bust, counting
// each ace as 11 and degrading aces to 1 one at a time only as needed.
func BestScore(hand []cards.Card) int {
	score := 0
	aces := 0

	for _, card := range hand {
		if IsAce(card) {
			aces++
		} else {
			score += CardValue(card)
		}
	}

	for i := 0; i < aces; i++ {
		if score+11+(aces-i-1) <= BlackjackTotal {
			score += 11
		} else {
			score++
		}
	}

	return score
}

// IsNatural reports whether a hand is a two-card 21.
func IsNatural(hand []cards.Card) bool {
	return len(hand) == 2 && BestScore(hand) == BlackjackTotal
}

// IsBust checks if a hand exceeds 21
func IsBust(hand []cards.Card) bool {
	return BestScore(hand) > BlackjackTotal
}
