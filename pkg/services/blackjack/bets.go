package blackjack

// betTiers are the fixed wager sizes offered before a game, filtered
// to what the player can afford.
var betTiers = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// MaxBetOptions caps the number of selectable wagers. Matches the
// platform limit of 25 entries per select menu.
const MaxBetOptions = 25

// BetOptions returns the wagers to offer a player holding balance:
// every fixed tier not exceeding the balance, plus the exact balance
// as an all-in option when it isn't already a tier. An empty slice
// means the player cannot cover the smallest tier or is broke.
func BetOptions(balance int64) []int64 {
	if balance <= 0 {
		return nil
	}

	options := make([]int64, 0, len(betTiers)+1)
	allIn := true
	for _, tier := range betTiers {
		if tier > balance {
			break
		}
		if tier == balance {
			allIn = false
		}
		options = append(options, tier)
	}

	if allIn {
		options = append(options, balance)
	}

	if len(options) > MaxBetOptions {
		options = options[:MaxBetOptions]
	}
	return options
}

// ValidBet reports whether a chosen wager is acceptable for a player
// holding balance.
func ValidBet(bet, balance int64) bool {
	return bet > 0 && bet <= balance
}
