package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hallorann/pitboss/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const createWalletsTableSQL = `
CREATE TABLE IF NOT EXISTS wallets (
	user_id TEXT PRIMARY KEY,
	balance INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createWalletsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating wallets table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// GetWallet retrieves a wallet by user ID
func (r *SQLiteRepository) GetWallet(ctx context.Context, userID string) (*entities.Wallet, error) {
	query := `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = ?`

	var wallet entities.Wallet
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.Balance,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("error getting wallet: %w", err)
	}

	wallet.LastUpdated = time.Unix(updatedAt, 0)
	return &wallet, nil
}

// SaveWallet creates or updates a wallet
func (r *SQLiteRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	wallet.LastUpdated = time.Now()

	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			balance = excluded.balance,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		wallet.UserID, wallet.Balance, wallet.LastUpdated.Unix(),
	)
	if err != nil {
		return fmt.Errorf("error saving wallet: %w", err)
	}

	return nil
}

// AllWallets returns a snapshot of every wallet in the ledger
func (r *SQLiteRepository) AllWallets(ctx context.Context) ([]*entities.Wallet, error) {
	query := `SELECT user_id, balance, updated_at FROM wallets`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*entities.Wallet

	for rows.Next() {
		var wallet entities.Wallet
		var updatedAt int64

		if err := rows.Scan(&wallet.UserID, &wallet.Balance, &updatedAt); err != nil {
			return nil, fmt.Errorf("error scanning wallet row: %w", err)
		}

		wallet.LastUpdated = time.Unix(updatedAt, 0)
		wallets = append(wallets, &wallet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}

	return wallets, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
