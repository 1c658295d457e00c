package wallet

import (
	"context"
	"errors"

	"github.com/hallorann/pitboss/pkg/entities"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
)

//go:generate mockgen -source=$GOFILE -destination=mock/repository.go -package=mock_wallet

// Repository defines the interface for wallet ledger persistence
type Repository interface {
	// GetWallet retrieves a wallet by user ID
	GetWallet(ctx context.Context, userID string) (*entities.Wallet, error)

	// SaveWallet creates or updates a wallet, persisting the change
	// before returning (write-through)
	SaveWallet(ctx context.Context, wallet *entities.Wallet) error

	// AllWallets returns a snapshot of every wallet in the ledger
	AllWallets(ctx context.Context) ([]*entities.Wallet, error)

	// Close releases any resources held by the repository
	Close() error
}
