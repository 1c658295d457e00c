package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/hallorann/pitboss/internal/logging"
	"github.com/hallorann/pitboss/pkg/entities"
	walletRepo "github.com/hallorann/pitboss/pkg/repositories/wallet"
	mock_wallet "github.com/hallorann/pitboss/pkg/repositories/wallet/mock"
)

type WalletServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *walletRepo.MemoryRepository
	service *Service
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = walletRepo.NewMemoryRepository()
	s.service = NewService(s.repo, logging.Default)
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) TestEnsureWalletCreatesAtStartingBalance() {
	wallet, created, err := s.service.EnsureWallet(s.ctx, "user1")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(entities.StartingBalance, wallet.Balance)
}

func (s *WalletServiceTestSuite) TestEnsureWalletIsIdempotent() {
	_, created, err := s.service.EnsureWallet(s.ctx, "user1")
	s.Require().NoError(err)
	s.True(created)

	_, err = s.service.Adjust(s.ctx, "user1", -400)
	s.Require().NoError(err)

	wallet, created, err := s.service.EnsureWallet(s.ctx, "user1")
	s.Require().NoError(err)
	s.False(created)
	s.Equal(int64(600), wallet.Balance)
}

func (s *WalletServiceTestSuite) TestBalanceDoesNotCreateWallet() {
	balance, err := s.service.Balance(s.ctx, "user1")
	s.Require().NoError(err)
	s.Equal(entities.StartingBalance, balance)

	// Reporting the default balance must not have persisted anything
	_, err = s.repo.GetWallet(s.ctx, "user1")
	s.ErrorIs(err, walletRepo.ErrWalletNotFound)
}

func (s *WalletServiceTestSuite) TestAdjustRoundTrip() {
	_, err := s.service.Adjust(s.ctx, "user1", -250)
	s.Require().NoError(err)

	balance, err := s.service.Adjust(s.ctx, "user1", 250)
	s.Require().NoError(err)
	s.Equal(entities.StartingBalance, balance)
}

func (s *WalletServiceTestSuite) TestAdjustRejectsOverdraft() {
	balance, err := s.service.Adjust(s.ctx, "user1", -1001)
	s.ErrorIs(err, ErrInsufficientFunds)
	s.Equal(entities.StartingBalance, balance)

	// The failed adjustment left the balance untouched
	balance, err = s.service.Balance(s.ctx, "user1")
	s.Require().NoError(err)
	s.Equal(entities.StartingBalance, balance)
}

func (s *WalletServiceTestSuite) TestAdjustToExactlyZero() {
	balance, err := s.service.Adjust(s.ctx, "user1", -1000)
	s.Require().NoError(err)
	s.Equal(int64(0), balance)
}

func (s *WalletServiceTestSuite) TestTransfer() {
	err := s.service.Transfer(s.ctx, "alice", "bob", 300)
	s.Require().NoError(err)

	aliceBalance, err := s.service.Balance(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(700), aliceBalance)

	bobBalance, err := s.service.Balance(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(int64(1300), bobBalance)
}

func (s *WalletServiceTestSuite) TestTransferRejectsOverdraft() {
	err := s.service.Transfer(s.ctx, "alice", "bob", 5000)
	s.ErrorIs(err, ErrInsufficientFunds)

	bobBalance, err := s.service.Balance(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(entities.StartingBalance, bobBalance)
}

func (s *WalletServiceTestSuite) TestTransferRejectsSelfAndNonPositive() {
	s.ErrorIs(s.service.Transfer(s.ctx, "alice", "alice", 100), ErrSelfTransfer)
	s.ErrorIs(s.service.Transfer(s.ctx, "alice", "bob", 0), ErrInvalidAmount)
	s.ErrorIs(s.service.Transfer(s.ctx, "alice", "bob", -50), ErrInvalidAmount)
}

func (s *WalletServiceTestSuite) TestOpposingTransfersDoNotDeadlock() {
	_, _, err := s.service.EnsureWallet(s.ctx, "alice")
	s.Require().NoError(err)
	_, _, err = s.service.EnsureWallet(s.ctx, "bob")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.service.Transfer(s.ctx, "alice", "bob", 10)
		}()
		go func() {
			defer wg.Done()
			_ = s.service.Transfer(s.ctx, "bob", "alice", 10)
		}()
	}
	wg.Wait()

	aliceBalance, err := s.service.Balance(s.ctx, "alice")
	s.Require().NoError(err)
	bobBalance, err := s.service.Balance(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(int64(2000), aliceBalance+bobBalance)
}

func (s *WalletServiceTestSuite) TestConcurrentAdjustsSerialize() {
	_, _, err := s.service.EnsureWallet(s.ctx, "user1")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Adjust(s.ctx, "user1", 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	balance, err := s.service.Balance(s.ctx, "user1")
	s.Require().NoError(err)
	s.Equal(int64(1100), balance)
}

func (s *WalletServiceTestSuite) TestGrant() {
	balance, err := s.service.Grant(s.ctx, "user1", 500)
	s.Require().NoError(err)
	s.Equal(int64(1500), balance)

	_, err = s.service.Grant(s.ctx, "user1", 0)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *WalletServiceTestSuite) TestAllBalances() {
	_, _, err := s.service.EnsureWallet(s.ctx, "alice")
	s.Require().NoError(err)
	_, err = s.service.Adjust(s.ctx, "bob", 200)
	s.Require().NoError(err)

	wallets, err := s.service.AllBalances(s.ctx)
	s.Require().NoError(err)
	s.Len(wallets, 2)
}

func TestServicePropagatesStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_wallet.NewMockRepository(ctrl)
	service := NewService(repo, logging.Default)
	ctx := context.Background()

	storageErr := errors.New("disk on fire")
	repo.EXPECT().GetWallet(ctx, "user1").Return(nil, storageErr)

	_, _, err := service.EnsureWallet(ctx, "user1")
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestServiceSurfacesSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_wallet.NewMockRepository(ctrl)
	service := NewService(repo, logging.Default)
	ctx := context.Background()

	saveErr := errors.New("write failed")
	repo.EXPECT().GetWallet(ctx, "user1").Return(nil, walletRepo.ErrWalletNotFound)
	repo.EXPECT().SaveWallet(ctx, gomock.Any()).Return(saveErr)

	_, err := service.Adjust(ctx, "user1", 100)
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}
