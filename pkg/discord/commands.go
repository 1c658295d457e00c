package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Component custom ID prefixes. The owning user's ID is appended after
// the colon so handlers can reject button presses from other users.
const (
	customIDBet    = "bj_bet"
	customIDHit    = "bj_hit"
	customIDStand  = "bj_stand"
	customIDSplit  = "bj_split"
	customIDDouble = "bj_double"
	customIDHeads  = "flip_heads"
	customIDTails  = "flip_tails"
)

// commandDefinitions returns every slash command the bot registers.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "blackjack",
			Description: "Start a game of blackjack against the house",
		},
		{
			Name:        "coinflip",
			Description: "Call five coin flips in a row to win 500 coin",
		},
		{
			Name:        "balance",
			Description: "Check your coin balance",
		},
		{
			Name:        "transfer",
			Description: "Send coin to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "recipient",
					Description: "Who receives the coin",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How much to send",
					Required:    true,
				},
			},
		},
		{
			Name:        "give",
			Description: "Grant coin to a player (house only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "recipient",
					Description: "Who receives the coin",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How much to grant",
					Required:    true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players",
		},
		{
			Name:        "assigntask",
			Description: "Create a task thread and assign people to it",
			Options:     assignTaskOptions(),
		},
	}
}
