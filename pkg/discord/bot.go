package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"

	"github.com/hallorann/pitboss/internal/config"
	internaldiscord "github.com/hallorann/pitboss/internal/discord"
	"github.com/hallorann/pitboss/internal/logging"
	"github.com/hallorann/pitboss/pkg/services/blackjack"
	"github.com/hallorann/pitboss/pkg/services/coinflip"
	"github.com/hallorann/pitboss/pkg/services/wallet"
)

const (
	// betSelectTimeout disables an untouched bet menu. No wallet effect
	// since nothing is debited until a bet is chosen.
	betSelectTimeout = 60 * time.Second

	// gameTimeout forfeits an idle blackjack game or abandons an idle
	// coin-streak game. Each player action restarts the countdown.
	gameTimeout = 90 * time.Second
)

// betPrompt is a bet menu shown to a user before their game starts.
// mu serializes the selection handler against the expiry callback;
// whichever claims the prompt first sets done and the other backs off.
type betPrompt struct {
	mu          sync.Mutex
	done        bool
	userID      string
	interaction *discordgo.Interaction
	timer       *quartz.Timer
}

// activeGame is a running blackjack session plus the interaction its
// render currently lives on. mu serializes player actions against the
// idle-timeout callback; the session itself carries no locking. seq
// counts player actions so a timeout armed for an earlier turn can
// tell it lost the race and back off.
type activeGame struct {
	mu          sync.Mutex
	seq         int
	session     *blackjack.Session
	interaction *discordgo.Interaction
	timer       *quartz.Timer
}

// activeFlip is a running coin-streak game, locked the same way as
// activeGame.
type activeFlip struct {
	mu          sync.Mutex
	seq         int
	game        *coinflip.Game
	interaction *discordgo.Interaction
	timer       *quartz.Timer
}

// Bot wires the games and the wallet to Discord. Each user has at most
// one bet prompt, one blackjack session, and one coin-streak game at a
// time, all keyed by user ID.
type Bot struct {
	session internaldiscord.SessionHandler
	cfg     *config.Config
	wallet  wallet.WalletService
	clock   quartz.Clock
	logger  *logging.Logger

	mu      sync.Mutex
	prompts map[string]*betPrompt
	games   map[string]*activeGame
	flips   map[string]*activeFlip

	// Game constructors, overridable in tests to fix the deck or coin.
	newGame func(userID string, bet int64) *blackjack.Session
	newFlip func(userID string) *coinflip.Game
}

// NewBot creates a bot on an open-ready session handler.
func NewBot(session internaldiscord.SessionHandler, cfg *config.Config, walletSvc wallet.WalletService, clock quartz.Clock, logger *logging.Logger) *Bot {
	b := &Bot{
		session: session,
		cfg:     cfg,
		wallet:  walletSvc,
		clock:   clock,
		logger:  logger,
		prompts: make(map[string]*betPrompt),
		games:   make(map[string]*activeGame),
		flips:   make(map[string]*activeFlip),
		newGame: blackjack.NewSession,
		newFlip: coinflip.NewGame,
	}

	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleInteraction)

	return b
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	for _, cmd := range commandDefinitions() {
		if _, err := b.session.ApplicationCommandCreate(b.cfg.AppID, b.cfg.GuildID, cmd); err != nil {
			return fmt.Errorf("error registering command %s: %w", cmd.Name, err)
		}
		b.logger.Info("Registered command: %s", cmd.Name)
	}

	return nil
}

// Stop cancels every outstanding timeout and closes the connection.
// In-memory game state is dropped; debited bets stay with the house.
func (b *Bot) Stop() error {
	b.mu.Lock()
	for _, prompt := range b.prompts {
		prompt.timer.Stop()
	}
	for _, game := range b.games {
		game.timer.Stop()
	}
	for _, flip := range b.flips {
		flip.timer.Stop()
	}
	b.prompts = make(map[string]*betPrompt)
	b.games = make(map[string]*activeGame)
	b.flips = make(map[string]*activeFlip)
	b.mu.Unlock()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Bot is ready: %v#%v", r.User.Username, r.User.Discriminator)
}
