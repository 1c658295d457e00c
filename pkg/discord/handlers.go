package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	internaldiscord "github.com/hallorann/pitboss/internal/discord"
	"github.com/hallorann/pitboss/internal/types"
	"github.com/hallorann/pitboss/pkg/services/blackjack"
	"github.com/hallorann/pitboss/pkg/services/coinflip"
	"github.com/hallorann/pitboss/pkg/services/wallet"
)

// interactionUser returns the acting user for guild or DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// optionMap indexes a command's options by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "blackjack":
			b.handleBlackjack(i)
		case "coinflip":
			b.handleCoinflip(i)
		case "balance":
			b.handleBalance(i)
		case "transfer":
			b.handleTransfer(i)
		case "give":
			b.handleGive(i)
		case "leaderboard":
			b.handleLeaderboard(i)
		case "assigntask":
			b.handleAssignTask(i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		prefix, ownerID, ok := strings.Cut(customID, ":")
		if !ok {
			return
		}

		switch prefix {
		case customIDBet:
			b.handleBetSelect(i, ownerID)
		case customIDHit:
			b.handleGameAction(i, ownerID, blackjack.ActionHit)
		case customIDStand:
			b.handleGameAction(i, ownerID, blackjack.ActionStand)
		case customIDSplit:
			b.handleGameAction(i, ownerID, blackjack.ActionSplit)
		case customIDDouble:
			b.handleGameAction(i, ownerID, blackjack.ActionDouble)
		case customIDHeads:
			b.handleGuess(i, ownerID, coinflip.Heads)
		case customIDTails:
			b.handleGuess(i, ownerID, coinflip.Tails)
		}
	}
}

// reportError tells the initiating user what went wrong, privately.
// Delivery failures are logged and swallowed.
func (b *Bot) reportError(i *discordgo.InteractionCreate, err error) {
	if sendErr := internaldiscord.SendErrorResponse(b.session, i, err); sendErr != nil {
		b.logger.Warn("Failed to deliver error response: %v", sendErr)
	}
}

// respond sends a response, logging and swallowing delivery failures.
func (b *Bot) respond(i *discordgo.InteractionCreate, r *internaldiscord.Response) {
	if err := internaldiscord.SendResponse(b.session, i, r); err != nil {
		b.logger.Warn("Failed to deliver response: %v", err)
	}
}

// update edits the message the component interaction came from,
// logging and swallowing delivery failures.
func (b *Bot) update(i *discordgo.InteractionCreate, r *internaldiscord.Response) {
	if err := internaldiscord.UpdateResponse(b.session, i, r); err != nil {
		b.logger.Warn("Failed to update response: %v", err)
	}
}

// --- blackjack ---

func (b *Bot) handleBlackjack(i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	ctx := context.Background()

	b.mu.Lock()
	_, hasPrompt := b.prompts[user.ID]
	_, hasGame := b.games[user.ID]
	b.mu.Unlock()
	if hasPrompt || hasGame {
		b.reportError(i, types.NewGameError(types.ErrGameInProgress, "Finish your current game first."))
		return
	}

	balance, err := b.wallet.Balance(ctx, user.ID)
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrStorageError, "Couldn't read your balance.", err))
		return
	}

	options := blackjack.BetOptions(balance)
	if len(options) == 0 {
		b.reportError(i, types.NewGameError(types.ErrInsufficientFunds, "You're broke. Ask someone for a transfer."))
		return
	}

	prompt := &betPrompt{
		userID:      user.ID,
		interaction: i.Interaction,
	}
	prompt.timer = b.clock.AfterFunc(betSelectTimeout, func() {
		b.expireBetPrompt(user.ID, prompt)
	})

	b.mu.Lock()
	b.prompts[user.ID] = prompt
	b.mu.Unlock()

	b.respond(i, internaldiscord.NewResponse(
		fmt.Sprintf("🃏 <@%s> steps up to the table with $%d. Place your bet!", user.ID, balance),
		betMenu(user.ID, options),
	))
}

func (b *Bot) handleBetSelect(i *discordgo.InteractionCreate, ownerID string) {
	user := interactionUser(i)
	ctx := context.Background()

	if user.ID != ownerID {
		b.reportError(i, types.NewGameError(types.ErrNotSessionOwner, "That bet menu isn't yours."))
		return
	}

	b.mu.Lock()
	prompt, ok := b.prompts[user.ID]
	b.mu.Unlock()
	if !ok {
		b.reportError(i, types.NewGameError(types.ErrGameNotFound, "That bet menu has expired."))
		return
	}

	prompt.mu.Lock()
	defer prompt.mu.Unlock()
	if prompt.done {
		b.reportError(i, types.NewGameError(types.ErrGameNotFound, "That bet menu has expired."))
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		b.reportError(i, types.NewGameError(types.ErrInvalidArgument, "Pick exactly one bet."))
		return
	}
	bet, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		b.reportError(i, types.NewGameError(types.ErrInvalidArgument, "That bet isn't a number."))
		return
	}

	balance, err := b.wallet.Balance(ctx, user.ID)
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrStorageError, "Couldn't read your balance.", err))
		return
	}
	if !blackjack.ValidBet(bet, balance) {
		b.reportError(i, types.NewGameError(types.ErrInsufficientFunds, "You can't cover that bet."))
		return
	}

	if _, err := b.wallet.Adjust(ctx, user.ID, -bet); err != nil {
		b.reportError(i, walletError(err))
		return
	}

	prompt.done = true
	prompt.timer.Stop()
	b.mu.Lock()
	delete(b.prompts, user.ID)
	b.mu.Unlock()

	session := b.newGame(user.ID, bet)
	if session.Finished {
		// A natural on the deal; settle on the spot
		b.settle(ctx, session)
		b.update(i, internaldiscord.NewResponse(renderBlackjack(session), nil))
		return
	}

	game := &activeGame{
		session:     session,
		interaction: i.Interaction,
	}
	b.armGameTimer(user.ID, game)

	b.mu.Lock()
	b.games[user.ID] = game
	b.mu.Unlock()

	b.update(i, internaldiscord.NewResponse(renderBlackjack(session), blackjackButtons(session)))
}

func (b *Bot) handleGameAction(i *discordgo.InteractionCreate, ownerID string, action blackjack.Action) {
	user := interactionUser(i)
	ctx := context.Background()

	if user.ID != ownerID {
		b.reportError(i, types.NewGameError(types.ErrNotSessionOwner, "This isn't your game."))
		return
	}

	b.mu.Lock()
	game, ok := b.games[user.ID]
	b.mu.Unlock()
	if !ok {
		b.reportError(i, types.NewGameError(types.ErrGameNotFound, "You don't have a game running."))
		return
	}

	game.mu.Lock()
	defer game.mu.Unlock()

	session := game.session

	var err error
	switch action {
	case blackjack.ActionHit:
		err = session.Hit()

	case blackjack.ActionStand:
		err = session.Stand()

	case blackjack.ActionSplit:
		if !session.CanSplit() {
			err = blackjack.ErrCannotSplit
			break
		}
		// The split duplicates the bet; debit it before touching the game
		if _, walletErr := b.wallet.Adjust(ctx, user.ID, -session.Hands[0].Bet); walletErr != nil {
			b.reportError(i, walletError(walletErr))
			return
		}
		err = session.Split()

	case blackjack.ActionDouble:
		if !session.CanDouble() {
			err = blackjack.ErrCannotDouble
			break
		}
		if _, walletErr := b.wallet.Adjust(ctx, user.ID, -session.CurrentHand().Bet); walletErr != nil {
			b.reportError(i, walletError(walletErr))
			return
		}
		err = session.DoubleDown()
	}

	if err != nil {
		b.reportError(i, types.WrapError(types.ErrInvalidAction, "You can't do that right now.", err))
		return
	}

	if session.Finished {
		game.timer.Stop()
		b.mu.Lock()
		delete(b.games, user.ID)
		b.mu.Unlock()

		b.settle(ctx, session)
		b.update(i, internaldiscord.NewResponse(renderBlackjack(session), nil))
		return
	}

	game.seq++
	game.timer.Stop()
	b.armGameTimer(user.ID, game)
	game.interaction = i.Interaction
	b.update(i, internaldiscord.NewResponse(renderBlackjack(session), blackjackButtons(session)))
}

// armGameTimer starts the idle countdown for the game's current turn.
// The callback remembers which turn armed it; a turn that completes in
// the meantime invalidates the countdown. The caller must hold game.mu
// or have exclusive access to a game not yet published.
func (b *Bot) armGameTimer(userID string, game *activeGame) {
	seq := game.seq
	game.timer = b.clock.AfterFunc(gameTimeout, func() {
		b.expireGame(userID, game, seq)
	})
}

// settle credits the payout for a finished game. Settlement runs at
// most once per session; a crediting failure is logged, not raised.
func (b *Bot) settle(ctx context.Context, session *blackjack.Session) {
	payout, err := session.SettlePayout()
	if err != nil {
		b.logger.Error("Settlement refused for game %s: %v", session.ID, err)
		return
	}
	if payout == 0 {
		return
	}
	if _, err := b.wallet.Adjust(ctx, session.UserID, payout); err != nil {
		b.logger.Error("Failed to credit payout of %d to user %s: %v", payout, session.UserID, err)
	}
}

// expireBetPrompt disables a bet menu nobody used. Nothing was
// debited, so there is no wallet effect. A selection that claimed the
// prompt first wins the race and the expiry backs off.
func (b *Bot) expireBetPrompt(userID string, prompt *betPrompt) {
	b.mu.Lock()
	current, ok := b.prompts[userID]
	b.mu.Unlock()
	if !ok || current != prompt {
		return
	}

	prompt.mu.Lock()
	defer prompt.mu.Unlock()
	if prompt.done {
		return
	}
	prompt.done = true

	b.mu.Lock()
	delete(b.prompts, userID)
	b.mu.Unlock()

	content := "⌛ Bet selection timed out. Start a new game when you're ready."
	if _, err := b.session.InteractionResponseEdit(prompt.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	}); err != nil {
		b.logger.Warn("Failed to disable expired bet menu for user %s: %v", userID, err)
	}
}

// expireGame forfeits an idle blackjack game. Hands still in play are
// lost; any payout already earned by a finished hand is still settled.
// A player action that landed after the timer fired wins the race: the
// turn counter moved on, or the game finished, and the forfeit backs
// off.
func (b *Bot) expireGame(userID string, game *activeGame, seq int) {
	b.mu.Lock()
	current, ok := b.games[userID]
	b.mu.Unlock()
	if !ok || current != game {
		return
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	if game.seq != seq || game.session.Finished {
		return
	}

	b.mu.Lock()
	delete(b.games, userID)
	b.mu.Unlock()

	game.session.Forfeit()
	b.settle(context.Background(), game.session)

	content := renderBlackjack(game.session)
	if _, err := b.session.InteractionResponseEdit(game.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	}); err != nil {
		b.logger.Warn("Failed to render forfeited game for user %s: %v", userID, err)
	}
}

// --- coin streak ---

func (b *Bot) handleCoinflip(i *discordgo.InteractionCreate) {
	user := interactionUser(i)

	b.mu.Lock()
	_, exists := b.flips[user.ID]
	b.mu.Unlock()
	if exists {
		b.reportError(i, types.NewGameError(types.ErrGameInProgress, "Your coin is still spinning."))
		return
	}

	flip := &activeFlip{
		game:        b.newFlip(user.ID),
		interaction: i.Interaction,
	}
	b.armFlipTimer(user.ID, flip)

	b.mu.Lock()
	b.flips[user.ID] = flip
	b.mu.Unlock()

	b.respond(i, internaldiscord.NewResponse(
		fmt.Sprintf("🪙 <@%s> flips a coin. Call %d in a row to win $%d!",
			user.ID, coinflip.TargetStreak, coinflip.Reward),
		coinflipButtons(user.ID),
	))
}

func (b *Bot) handleGuess(i *discordgo.InteractionCreate, ownerID string, call coinflip.Side) {
	user := interactionUser(i)
	ctx := context.Background()

	if user.ID != ownerID {
		b.reportError(i, types.NewGameError(types.ErrNotSessionOwner, "This isn't your coin."))
		return
	}

	b.mu.Lock()
	flip, ok := b.flips[user.ID]
	b.mu.Unlock()
	if !ok {
		b.reportError(i, types.NewGameError(types.ErrGameNotFound, "You don't have a coin game running."))
		return
	}

	flip.mu.Lock()
	defer flip.mu.Unlock()

	result, err := flip.game.Guess(call)
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrGameAlreadyEnded, "That game is over.", err))
		return
	}

	if result.Won {
		if _, err := b.wallet.Adjust(ctx, user.ID, result.Payout); err != nil {
			b.logger.Error("Failed to credit streak reward to user %s: %v", user.ID, err)
		}
	}

	if flip.game.Finished {
		flip.timer.Stop()
		b.mu.Lock()
		delete(b.flips, user.ID)
		b.mu.Unlock()

		b.update(i, internaldiscord.NewResponse(renderCoinflip(result), nil))
		return
	}

	flip.seq++
	flip.timer.Stop()
	b.armFlipTimer(user.ID, flip)
	flip.interaction = i.Interaction
	b.update(i, internaldiscord.NewResponse(renderCoinflip(result), coinflipButtons(user.ID)))
}

// armFlipTimer starts the idle countdown for the flip's current guess,
// under the same discipline as armGameTimer.
func (b *Bot) armFlipTimer(userID string, flip *activeFlip) {
	seq := flip.seq
	flip.timer = b.clock.AfterFunc(gameTimeout, func() {
		b.expireFlip(userID, flip, seq)
	})
}

// expireFlip abandons an idle coin-streak game without reward. A guess
// that landed after the timer fired wins the race and the abandon
// backs off.
func (b *Bot) expireFlip(userID string, flip *activeFlip, seq int) {
	b.mu.Lock()
	current, ok := b.flips[userID]
	b.mu.Unlock()
	if !ok || current != flip {
		return
	}

	flip.mu.Lock()
	defer flip.mu.Unlock()
	if flip.seq != seq || flip.game.Finished {
		return
	}

	b.mu.Lock()
	delete(b.flips, userID)
	b.mu.Unlock()

	flip.game.Abandon()

	content := "⌛ The coin rolled under the table. Game over."
	if _, err := b.session.InteractionResponseEdit(flip.interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	}); err != nil {
		b.logger.Warn("Failed to disable expired coin game for user %s: %v", userID, err)
	}
}

// --- wallet commands ---

func (b *Bot) handleBalance(i *discordgo.InteractionCreate) {
	user := interactionUser(i)

	balance, err := b.wallet.Balance(context.Background(), user.ID)
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrStorageError, "Couldn't read your balance.", err))
		return
	}

	b.respond(i, internaldiscord.NewEphemeralResponse(fmt.Sprintf("💰 Your balance: $%d", balance), nil))
}

func (b *Bot) handleTransfer(i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	opts := optionMap(i.ApplicationCommandData().Options)

	recipient := opts["recipient"].UserValue(nil)
	amount := opts["amount"].IntValue()

	err := b.wallet.Transfer(context.Background(), user.ID, recipient.ID, amount)
	if err != nil {
		b.reportError(i, walletError(err))
		return
	}

	b.respond(i, internaldiscord.NewResponse(
		fmt.Sprintf("💸 <@%s> sent $%d to <@%s>.", user.ID, amount, recipient.ID), nil))
}

func (b *Bot) handleGive(i *discordgo.InteractionCreate) {
	user := interactionUser(i)

	if user.ID != b.cfg.AdminUserID {
		b.reportError(i, types.NewGameError(types.ErrPermissionDenied, "Only the house can print money."))
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	recipient := opts["recipient"].UserValue(nil)
	amount := opts["amount"].IntValue()

	balance, err := b.wallet.Grant(context.Background(), recipient.ID, amount)
	if err != nil {
		b.reportError(i, walletError(err))
		return
	}

	b.respond(i, internaldiscord.NewResponse(
		fmt.Sprintf("🏦 The house grants $%d to <@%s>. New balance: $%d.", amount, recipient.ID, balance), nil))
}

func (b *Bot) handleLeaderboard(i *discordgo.InteractionCreate) {
	wallets, err := b.wallet.AllBalances(context.Background())
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrStorageError, "Couldn't read the leaderboard.", err))
		return
	}

	b.respond(i, internaldiscord.NewResponse(renderLeaderboard(wallets), nil))
}

// walletError maps wallet service failures onto user-facing errors.
func walletError(err error) error {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return types.WrapError(types.ErrInsufficientFunds, "You can't cover that.", err)
	case errors.Is(err, wallet.ErrInvalidAmount):
		return types.WrapError(types.ErrInvalidArgument, "The amount has to be positive.", err)
	case errors.Is(err, wallet.ErrSelfTransfer):
		return types.WrapError(types.ErrInvalidArgument, "You can't pay yourself.", err)
	default:
		return types.WrapError(types.ErrStorageError, "The wallet ledger hiccuped.", err)
	}
}
