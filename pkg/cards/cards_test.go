package cards

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CardsTestSuite struct {
	suite.Suite
}

func TestCardsSuite(t *testing.T) {
	suite.Run(t, new(CardsTestSuite))
}

func (s *CardsTestSuite) TestCardString() {
	testCases := []struct {
		name     string
		card     Card
		expected string
	}{
		{
			name:     "ace of hearts",
			card:     Card{Suit: Hearts, Rank: Ace},
			expected: "♥A",
		},
		{
			name:     "ten of diamonds",
			card:     Card{Suit: Diamonds, Rank: Ten},
			expected: "♦10",
		},
		{
			name:     "king of clubs",
			card:     Card{Suit: Clubs, Rank: King},
			expected: "♣K",
		},
		{
			name:     "queen of spades",
			card:     Card{Suit: Spades, Rank: Queen},
			expected: "♠Q",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.card.String())
		})
	}
}

func (s *CardsTestSuite) TestNewDeck() {
	deck := NewDeck()

	s.Len(deck.Cards, 52, "a fresh deck should have 52 cards")

	// Every rank/suit combination appears exactly once
	seen := make(map[Card]int)
	for _, card := range deck.Cards {
		seen[card]++
	}
	s.Len(seen, 52, "all 52 cards should be distinct")
	for card, count := range seen {
		s.Equal(1, count, "card %s should appear exactly once", card)
	}
}

func (s *CardsTestSuite) TestShuffledDeckIsStillComplete() {
	deck := NewShuffledDeck()

	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		seen[card] = true
	}
	s.Len(seen, 52, "shuffling must not drop or duplicate cards")
}

func (s *CardsTestSuite) TestDrawNeverRepeatsWithinOneDeck() {
	deck := NewShuffledDeck()

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card := deck.Draw()
		s.False(seen[card], "card %s drawn twice from one deck", card)
		seen[card] = true
	}
	s.Equal(0, deck.Remaining())
}

func (s *CardsTestSuite) TestDrawReshufflesWhenEmpty() {
	deck := NewShuffledDeck()
	for i := 0; i < 52; i++ {
		deck.Draw()
	}
	s.Equal(0, deck.Remaining())

	// The next draw replaces the deck with a fresh shuffled 52
	card := deck.Draw()
	s.NotEmpty(card.Rank)
	s.Equal(51, deck.Remaining())

	// The new cycle is again 52 distinct cards
	seen := map[Card]bool{card: true}
	for i := 0; i < 51; i++ {
		c := deck.Draw()
		s.False(seen[c], "card %s repeated within the reshuffled cycle", c)
		seen[c] = true
	}
	s.Len(seen, 52)
}
