package discord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hallorann/pitboss/pkg/cards"
	"github.com/hallorann/pitboss/pkg/entities"
	"github.com/hallorann/pitboss/pkg/services/blackjack"
	"github.com/hallorann/pitboss/pkg/services/coinflip"
)

const hiddenCard = "🂠"

func formatCards(hand []cards.Card) string {
	parts := make([]string, 0, len(hand))
	for _, card := range hand {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}

// renderBlackjack builds the game view. The dealer's hole card stays
// hidden until the game is over.
func renderBlackjack(g *blackjack.Session) string {
	var sb strings.Builder
	sb.WriteString("🃏 **Blackjack**\n\n")

	if g.Finished {
		sb.WriteString(fmt.Sprintf("Dealer: %s (%d)\n", formatCards(g.Dealer.Cards), g.Dealer.Score()))
	} else {
		sb.WriteString(fmt.Sprintf("Dealer: %s %s\n", g.Dealer.Cards[0], hiddenCard))
	}

	for idx, hand := range g.Hands {
		label := "Your hand"
		if len(g.Hands) > 1 {
			label = fmt.Sprintf("Hand %d", idx+1)
			if !g.Finished && idx == g.Current {
				label = "👉 " + label
			}
		}

		bet := fmt.Sprintf("Bet: $%d", hand.Bet)
		if hand.Doubled {
			bet += " (doubled)"
		}

		sb.WriteString(fmt.Sprintf("%s: %s (%d) — %s%s\n",
			label, formatCards(hand.Cards), hand.Score(), bet, statusSuffix(hand.Status)))
	}

	if g.Finished {
		sb.WriteString("\n" + g.Summary)
	}

	return sb.String()
}

func statusSuffix(status blackjack.Status) string {
	switch status {
	case blackjack.StatusBust:
		return " — BUST"
	case blackjack.StatusStood:
		return " — stood"
	case blackjack.StatusWin:
		return " — WIN"
	case blackjack.StatusLose:
		return " — lose"
	case blackjack.StatusPush:
		return " — push"
	case blackjack.StatusBlackjack:
		return " — BLACKJACK"
	default:
		return ""
	}
}

// blackjackButtons renders one button per legal action for the owner.
// A finished game gets no buttons.
func blackjackButtons(g *blackjack.Session) []discordgo.MessageComponent {
	actions := g.LegalActions()
	if len(actions) == 0 {
		return nil
	}

	labels := map[blackjack.Action]struct {
		label    string
		customID string
	}{
		blackjack.ActionHit:    {"Hit", customIDHit},
		blackjack.ActionStand:  {"Stand", customIDStand},
		blackjack.ActionSplit:  {"Split", customIDSplit},
		blackjack.ActionDouble: {"Double Down", customIDDouble},
	}

	buttons := make([]discordgo.MessageComponent, 0, len(actions))
	for _, action := range actions {
		def := labels[action]
		buttons = append(buttons, discordgo.Button{
			Label:    def.label,
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s:%s", def.customID, g.UserID),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// betMenu renders the wager select for a user holding balance.
func betMenu(userID string, options []int64) []discordgo.MessageComponent {
	menuOptions := make([]discordgo.SelectMenuOption, 0, len(options))
	for _, amount := range options {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("$%d", amount),
			Value: strconv.FormatInt(amount, 10),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("%s:%s", customIDBet, userID),
					Placeholder: "Place your bet",
					Options:     menuOptions,
				},
			},
		},
	}
}

// renderCoinflip builds the streak view after a guess.
func renderCoinflip(result *coinflip.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🪙 The coin landed on **%s**!\n", result.Flip))

	switch {
	case result.Won:
		sb.WriteString(fmt.Sprintf("That's %d in a row — you win $%d!", coinflip.TargetStreak, result.Payout))
	case result.Correct:
		sb.WriteString(fmt.Sprintf("Correct! Streak: %d of %d.", result.Streak, coinflip.TargetStreak))
	default:
		sb.WriteString("Wrong call. Streak reset to 0.")
	}

	return sb.String()
}

// coinflipButtons renders the heads/tails controls for the owner.
func coinflipButtons(userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Heads",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%s", customIDHeads, userID),
				},
				discordgo.Button{
					Label:    "Tails",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%s", customIDTails, userID),
				},
			},
		},
	}
}

// leaderboardSize caps how many wallets the leaderboard shows.
const leaderboardSize = 10

// renderLeaderboard formats the richest wallets, highest balance first.
func renderLeaderboard(wallets []*entities.Wallet) string {
	if len(wallets) == 0 {
		return "Nobody has played yet. The house always wins an empty room."
	}

	sorted := make([]*entities.Wallet, len(wallets))
	copy(sorted, wallets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Balance > sorted[j].Balance
	})

	if len(sorted) > leaderboardSize {
		sorted = sorted[:leaderboardSize]
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Leaderboard**\n")
	for i, w := range sorted {
		sb.WriteString(fmt.Sprintf("%d. <@%s> — $%d\n", i+1, w.UserID, w.Balance))
	}
	return sb.String()
}
