package wallet

import (
	"context"
	"errors"
	"sync"

	"github.com/hallorann/pitboss/internal/logging"
	"github.com/hallorann/pitboss/pkg/entities"
	walletRepo "github.com/hallorann/pitboss/pkg/repositories/wallet"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
)

// Service handles wallet business logic. All balance mutations for a
// user happen under that user's lock, so concurrent game settlements
// and transfers never interleave their read-modify-write cycles.
type Service struct {
	repo   walletRepo.Repository
	logger *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new wallet service
func NewService(repo walletRepo.Repository, logger *logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex guarding a single user's balance,
// creating it on first use.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// EnsureWallet retrieves a wallet or creates a new one at the starting
// balance if it doesn't exist
func (s *Service) EnsureWallet(ctx context.Context, userID string) (*entities.Wallet, bool, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.ensureWalletLocked(ctx, userID)
}

// ensureWalletLocked is EnsureWallet without locking. Callers must
// hold the user's lock.
func (s *Service) ensureWalletLocked(ctx context.Context, userID string) (*entities.Wallet, bool, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err == nil {
		return wallet, false, nil
	}

	if !errors.Is(err, walletRepo.ErrWalletNotFound) {
		return nil, false, err
	}

	wallet = entities.NewWallet(userID)
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return nil, false, err
	}

	s.logger.Info("Created wallet for user %s at starting balance %d", userID, wallet.Balance)
	return wallet, true, nil
}

// Balance reports a user's balance without creating a wallet. A user
// who has never played reports the starting balance.
func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if errors.Is(err, walletRepo.ErrWalletNotFound) {
		return entities.StartingBalance, nil
	}
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Adjust applies a signed delta to a user's balance and returns the
// new balance. The wallet is created at the starting balance first if
// the user is new.
func (s *Service) Adjust(ctx context.Context, userID string, delta int64) (int64, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.adjustLocked(ctx, userID, delta)
}

func (s *Service) adjustLocked(ctx context.Context, userID string, delta int64) (int64, error) {
	wallet, _, err := s.ensureWalletLocked(ctx, userID)
	if err != nil {
		return 0, err
	}

	if wallet.Balance+delta < 0 {
		return wallet.Balance, ErrInsufficientFunds
	}

	wallet.Balance += delta
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return 0, err
	}

	s.logger.Debug("Adjusted balance for user %s by %d to %d", userID, delta, wallet.Balance)
	return wallet.Balance, nil
}

// Transfer moves amount from one user to another. Both balances change
// or neither does. Locks are taken in a fixed order so two opposing
// transfers cannot deadlock.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSelfTransfer
	}

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	firstLock := s.userLock(first)
	secondLock := s.userLock(second)
	firstLock.Lock()
	defer firstLock.Unlock()
	secondLock.Lock()
	defer secondLock.Unlock()

	if _, err := s.adjustLocked(ctx, fromID, -amount); err != nil {
		return err
	}

	if _, err := s.adjustLocked(ctx, toID, amount); err != nil {
		// Credit failed after the debit persisted; put the funds back.
		if _, rbErr := s.adjustLocked(ctx, fromID, amount); rbErr != nil {
			s.logger.Error("Failed to roll back transfer of %d from %s: %v", amount, fromID, rbErr)
		}
		return err
	}

	s.logger.Info("Transferred %d from %s to %s", amount, fromID, toID)
	return nil
}

// Grant credits amount to a user without debiting anyone. Admin use only.
func (s *Service) Grant(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.Adjust(ctx, userID, amount)
}

// AllBalances returns a snapshot of every known wallet.
func (s *Service) AllBalances(ctx context.Context) ([]*entities.Wallet, error) {
	return s.repo.AllWallets(ctx)
}
