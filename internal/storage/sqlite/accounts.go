package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// CreateAccount persists a new account.
func (s *SQLiteStore) CreateAccount(ctx context.Context, a *models.Account) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (address, password_hash, created_at) VALUES (?, ?, ?)",
		a.Address, a.PasswordHash, a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccount retrieves the account for an address.
func (s *SQLiteStore) GetAccount(ctx context.Context, addr string) (*models.Account, error) {
	a := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		"SELECT address, password_hash, created_at FROM accounts WHERE address = ?",
		addr,
	).Scan(&a.Address, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}
