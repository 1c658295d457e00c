package entities

import (
	"time"
)

// StartingBalance is the balance a wallet is created with on first use.
const StartingBalance int64 = 1000

// Wallet represents a player's currency balance
type Wallet struct {
	UserID      string    // Discord user ID
	Balance     int64     // Current balance in coin
	LastUpdated time.Time // When the wallet was last updated
}

// NewWallet creates a wallet at the starting balance
func NewWallet(userID string) *Wallet {
	return &Wallet{
		UserID:      userID,
		Balance:     StartingBalance,
		LastUpdated: time.Now(),
	}
}
