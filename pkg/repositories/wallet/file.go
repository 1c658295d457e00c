package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hallorann/pitboss/pkg/entities"
)

// FileRepository implements Repository over a flat JSON ledger file
// mapping user ID to balance. The whole file is rewritten on every
// mutation, so the on-disk state always matches memory.
type FileRepository struct {
	path     string
	mu       sync.RWMutex
	balances map[string]int64
}

// NewFileRepository creates a file-backed wallet repository at path.
// A missing, unreadable, or corrupt ledger file is not fatal: the
// repository starts from an empty ledger and every user falls back to
// the starting balance on first use.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating ledger directory: %w", err)
	}

	r := &FileRepository{
		path:     path,
		balances: make(map[string]int64),
	}

	if err := r.load(); err != nil {
		log.Printf("Failed to load wallet ledger from %s, starting empty: %v", path, err)
		r.balances = make(map[string]int64)
	}

	return r, nil
}

// GetWallet retrieves a wallet by user ID
func (r *FileRepository) GetWallet(ctx context.Context, userID string) (*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance, exists := r.balances[userID]
	if !exists {
		return nil, ErrWalletNotFound
	}

	return &entities.Wallet{
		UserID:      userID,
		Balance:     balance,
		LastUpdated: time.Now(),
	}, nil
}

// SaveWallet creates or updates a wallet and rewrites the ledger file
func (r *FileRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wallet.LastUpdated = time.Now()
	r.balances[wallet.UserID] = wallet.Balance

	return r.save()
}

// AllWallets returns a snapshot of every wallet in the ledger
func (r *FileRepository) AllWallets(ctx context.Context) ([]*entities.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := make([]*entities.Wallet, 0, len(r.balances))
	for userID, balance := range r.balances {
		wallets = append(wallets, &entities.Wallet{
			UserID:  userID,
			Balance: balance,
		})
	}

	return wallets, nil
}

// Close implements Repository; nothing to release
func (r *FileRepository) Close() error {
	return nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &r.balances)
}

// save rewrites the full ledger file. Callers must hold the write lock.
func (r *FileRepository) save() error {
	data, err := json.Marshal(r.balances)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	return nil
}
