package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallorann/pitboss/pkg/cards"
	"github.com/hallorann/pitboss/pkg/entities"
	"github.com/hallorann/pitboss/pkg/services/blackjack"
	"github.com/hallorann/pitboss/pkg/services/coinflip"
)

func stackedDeck(ranks ...cards.Rank) *cards.Deck {
	deck := &cards.Deck{Cards: make([]cards.Card, 0, len(ranks))}
	for _, rank := range ranks {
		deck.Cards = append(deck.Cards, cards.Card{Suit: cards.Spades, Rank: rank})
	}
	return deck
}

func TestRenderBlackjackHidesDealerHoleCard(t *testing.T) {
	g := blackjack.NewSessionFromDeck("user1", 100, stackedDeck(
		cards.Ten, cards.Seven,
		cards.Nine, cards.Six,
	))

	view := renderBlackjack(g)
	assert.Contains(t, view, "♠9")
	assert.Contains(t, view, hiddenCard)
	assert.NotContains(t, view, "♠6")
	assert.Contains(t, view, "Bet: $100")
}

func TestRenderBlackjackRevealsDealerWhenFinished(t *testing.T) {
	g := blackjack.NewSessionFromDeck("user1", 100, stackedDeck(
		cards.Ten, cards.Nine,
		cards.Ten, cards.Seven,
	))
	require.NoError(t, g.Stand())

	view := renderBlackjack(g)
	assert.Contains(t, view, "♠7")
	assert.NotContains(t, view, hiddenCard)
	assert.Contains(t, view, g.Summary)
}

func TestRenderBlackjackMarksDoubledAndSplitHands(t *testing.T) {
	g := blackjack.NewSessionFromDeck("user1", 100, stackedDeck(
		cards.Eight, cards.Eight,
		cards.Ten, cards.Seven,
		cards.Ten, cards.Three,
		cards.Five,
	))
	require.NoError(t, g.Split())
	require.NoError(t, g.Stand())
	require.NoError(t, g.DoubleDown())

	view := renderBlackjack(g)
	assert.Contains(t, view, "Hand 1")
	assert.Contains(t, view, "Hand 2")
	assert.Contains(t, view, "(doubled)")
	assert.Contains(t, view, "Bet: $200")
}

func TestBlackjackButtonsMatchLegalActions(t *testing.T) {
	g := blackjack.NewSessionFromDeck("user1", 100, stackedDeck(
		cards.Eight, cards.Eight,
		cards.Ten, cards.Seven,
	))

	components := blackjackButtons(g)
	require.Len(t, components, 1)
	row := components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 4)

	labels := make([]string, 0, 4)
	for _, c := range row.Components {
		button := c.(discordgo.Button)
		labels = append(labels, button.Label)
		assert.Contains(t, button.CustomID, ":user1")
	}
	assert.ElementsMatch(t, []string{"Hit", "Stand", "Split", "Double Down"}, labels)
}

func TestBlackjackButtonsEmptyWhenFinished(t *testing.T) {
	g := blackjack.NewSessionFromDeck("user1", 100, stackedDeck(
		cards.Ace, cards.King,
		cards.Nine, cards.Seven,
	))
	assert.Nil(t, blackjackButtons(g))
}

func TestBetMenuOptions(t *testing.T) {
	components := betMenu("user1", []int64{10, 25, 50})
	require.Len(t, components, 1)
	row := components[0].(discordgo.ActionsRow)
	menu := row.Components[0].(discordgo.SelectMenu)

	assert.Equal(t, customIDBet+":user1", menu.CustomID)
	require.Len(t, menu.Options, 3)
	assert.Equal(t, "$10", menu.Options[0].Label)
	assert.Equal(t, "10", menu.Options[0].Value)
}

func TestRenderCoinflip(t *testing.T) {
	win := renderCoinflip(&coinflip.Result{Flip: coinflip.Heads, Correct: true, Streak: 5, Won: true, Payout: 500})
	assert.Contains(t, win, "you win $500")

	progress := renderCoinflip(&coinflip.Result{Flip: coinflip.Tails, Correct: true, Streak: 2})
	assert.Contains(t, progress, "Streak: 2 of 5")

	miss := renderCoinflip(&coinflip.Result{Flip: coinflip.Tails, Correct: false, Streak: 0})
	assert.Contains(t, miss, "reset to 0")
}

func TestRenderLeaderboardSortsAndCaps(t *testing.T) {
	wallets := make([]*entities.Wallet, 0, 12)
	for i := int64(0); i < 12; i++ {
		wallets = append(wallets, &entities.Wallet{
			UserID:  string(rune('a' + i)),
			Balance: i * 100,
		})
	}

	view := renderLeaderboard(wallets)
	assert.Contains(t, view, "1. <@l> — $1100")
	assert.Contains(t, view, "10. <@c> — $200")
	assert.NotContains(t, view, "$100\n")
	assert.NotContains(t, view, "11.")
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	assert.Contains(t, renderLeaderboard(nil), "Nobody has played yet")
}

func TestThreadName(t *testing.T) {
	assert.Equal(t, "fix the deploy", threadName("  fix the deploy  "))
	assert.Equal(t, "task-thread", threadName("   "))

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, threadName(string(long)), maxThreadNameLen)
}
