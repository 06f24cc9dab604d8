package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// PutUsername persists a username registration. The schema enforces both
// one-name-per-address and global name uniqueness; violations surface as
// storage.ErrDuplicate.
func (s *SQLiteStore) PutUsername(ctx context.Context, e *models.UsernameEntry) error {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO usernames (address, username, created_at) VALUES (?, ?, ?)",
		e.Address, e.Username, e.CreatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert username: %w", err)
	}

	return nil
}

// GetUsernameByName resolves a username to its entry.
func (s *SQLiteStore) GetUsernameByName(ctx context.Context, name string) (*models.UsernameEntry, error) {
	e := &models.UsernameEntry{}
	err := s.db.QueryRowContext(ctx,
		"SELECT address, username, created_at FROM usernames WHERE username = ?",
		name,
	).Scan(&e.Address, &e.Username, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get username: %w", err)
	}

	return e, nil
}

// GetUsernameByAddress looks up the username registered for an address.
func (s *SQLiteStore) GetUsernameByAddress(ctx context.Context, addr string) (*models.UsernameEntry, error) {
	e := &models.UsernameEntry{}
	err := s.db.QueryRowContext(ctx,
		"SELECT address, username, created_at FROM usernames WHERE address = ?",
		addr,
	).Scan(&e.Address, &e.Username, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get username by address: %w", err)
	}

	return e, nil
}
