package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/coder/quartz"

	"github.com/hallorann/pitboss/internal/config"
	internaldiscord "github.com/hallorann/pitboss/internal/discord"
	"github.com/hallorann/pitboss/internal/logging"
	"github.com/hallorann/pitboss/pkg/discord"
	walletRepo "github.com/hallorann/pitboss/pkg/repositories/wallet"
	walletService "github.com/hallorann/pitboss/pkg/services/wallet"
)

func main() {
	logger := logging.Default

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	repo := openRepository(cfg, logger)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("Error closing wallet repository: %v", err)
		}
	}()

	wallet := walletService.NewService(repo, logger)

	session, err := internaldiscord.NewSession(cfg.Token)
	if err != nil {
		logger.Error("Failed to create Discord session: %v", err)
		os.Exit(1)
	}

	bot := discord.NewBot(session, cfg, wallet, quartz.NewReal(), logger)
	if err := bot.Start(); err != nil {
		logger.Error("Failed to start bot: %v", err)
		os.Exit(1)
	}

	logger.Info("Bot is running. Press Ctrl+C to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	if err := bot.Stop(); err != nil {
		logger.Error("Error stopping bot: %v", err)
	}
}

// openRepository picks the wallet backend from configuration. Failures
// fall back towards less durable backends rather than refusing to run.
func openRepository(cfg *config.Config, logger *logging.Logger) walletRepo.Repository {
	switch cfg.StorageType {
	case config.StorageSQLite:
		path := filepath.Join(cfg.DataDir, "wallets.db")
		repo, err := walletRepo.NewSQLiteRepository(path)
		if err != nil {
			logger.Warn("Failed to open SQLite ledger at %s, falling back to file storage: %v", path, err)
			break
		}
		logger.Info("Using SQLite wallet ledger at %s", path)
		return repo

	case config.StorageMemory:
		logger.Info("Using in-memory wallet ledger (balances lost on restart)")
		return walletRepo.NewMemoryRepository()
	}

	path := filepath.Join(cfg.DataDir, "wallets.json")
	repo, err := walletRepo.NewFileRepository(path)
	if err != nil {
		logger.Warn("Failed to open wallet ledger file at %s, using in-memory ledger: %v", path, err)
		return walletRepo.NewMemoryRepository()
	}
	logger.Info("Using wallet ledger file at %s", path)
	return repo
}
