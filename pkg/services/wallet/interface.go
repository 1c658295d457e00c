package wallet

import (
	"context"

	"github.com/hallorann/pitboss/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_wallet_service
type WalletService interface {
	// EnsureWallet retrieves a wallet, creating it at the starting
	// balance on first use. The bool reports whether it was created.
	EnsureWallet(ctx context.Context, userID string) (*entities.Wallet, bool, error)

	// Balance reports a user's balance without creating a wallet.
	// Unknown users report the starting balance.
	Balance(ctx context.Context, userID string) (int64, error)

	// Adjust applies a signed delta to a user's balance and returns
	// the new balance. An adjustment that would take the balance
	// below zero is rejected with ErrInsufficientFunds.
	Adjust(ctx context.Context, userID string, delta int64) (int64, error)

	// Transfer moves amount from one user to another atomically.
	Transfer(ctx context.Context, fromID, toID string, amount int64) error

	// Grant sets no floor on the source: it credits amount out of
	// thin air. Admin use only.
	Grant(ctx context.Context, userID string, amount int64) (int64, error)

	// AllBalances returns a snapshot of every known wallet.
	AllBalances(ctx context.Context) ([]*entities.Wallet, error)
}
