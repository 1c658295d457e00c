package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/hallorann/pitboss/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage.
// Balances are lost on restart; intended for tests and ephemeral runs.
type MemoryRepository struct {
	wallets map[string]*entities.Wallet
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory wallet repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wallets: make(map[string]*entities.Wallet),
	}
}

// GetWallet retrieves a wallet by user ID
func (r *MemoryRepository) GetWallet(ctx context.Context, userID string) (*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallet, exists := r.wallets[userID]
	if !exists {
		return nil, ErrWalletNotFound
	}

	// Return a copy to prevent concurrent modification
	walletCopy := *wallet
	return &walletCopy, nil
}

// SaveWallet creates or updates a wallet
func (r *MemoryRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wallet.LastUpdated = time.Now()

	walletCopy := *wallet
	r.wallets[wallet.UserID] = &walletCopy

	return nil
}

// AllWallets returns a snapshot of every wallet in the ledger
func (r *MemoryRepository) AllWallets(ctx context.Context) ([]*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := make([]*entities.Wallet, 0, len(r.wallets))
	for _, wallet := range r.wallets {
		walletCopy := *wallet
		wallets = append(wallets, &walletCopy)
	}

	return wallets, nil
}

// Close implements Repository; nothing to release
func (r *MemoryRepository) Close() error {
	return nil
}
