package cards

import (
	"math/rand"
	"time"
)

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
)

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns a string representation of the card
func (c Card) String() string {
	return string(c.Suit) + string(c.Rank)
}

// Deck represents a deck of cards
type Deck struct {
	Cards []Card
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit,
// in a fixed order. Call Shuffle to randomize it.
func NewDeck() *Deck {
	deck := &Deck{Cards: make([]Card, 0, 52)}
	suits := []Suit{Hearts, Diamonds, Clubs, Spades}
	ranks := []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, rank := range ranks {
			deck.Cards = append(deck.Cards, Card{Suit: suit, Rank: rank})
		}
	}

	return deck
}

// NewShuffledDeck creates a new deck of 52 cards in a uniformly random order.
func NewShuffledDeck() *Deck {
	deck := NewDeck()
	deck.Shuffle()
	return deck
}

// Shuffle randomly permutes the deck
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card. An exhausted deck is replaced
// with a fresh shuffled 52-card deck before drawing, so Draw always
// yields a card. No discard tracking is carried across the reshuffle.
func (d *Deck) Draw() Card {
	if len(d.Cards) == 0 {
		d.Cards = NewShuffledDeck().Cards
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card
}

// Remaining returns the number of cards left before the next reshuffle.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
