package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// CreatePot persists a new savings pot and assigns its ID and CreatedAt.
func (s *SQLiteStore) CreatePot(ctx context.Context, pot *models.SavingsPot) error {
	if pot.CreatedAt == 0 {
		pot.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO pots (owner, name, target_amount, current_amount, status, created_at, remarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pot.Owner, pot.Name, int64(pot.TargetAmount), int64(pot.CurrentAmount),
		int(pot.Status), pot.CreatedAt, pot.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read pot id: %w", err)
	}
	pot.ID = id

	return nil
}

// GetPot retrieves a savings pot by ID.
func (s *SQLiteStore) GetPot(ctx context.Context, id int64) (*models.SavingsPot, error) {
	return s.scanPot(s.db.QueryRowContext(ctx,
		`SELECT id, owner, name, target_amount, current_amount, status, created_at, remarks
		 FROM pots WHERE id = ?`,
		id,
	))
}

// UpdatePot persists a savings pot's balance and status.
func (s *SQLiteStore) UpdatePot(ctx context.Context, pot *models.SavingsPot) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pots SET current_amount = ?, status = ? WHERE id = ?`,
		int64(pot.CurrentAmount), int(pot.Status), pot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check pot update: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListPotsByOwner retrieves all pots owned by the address, newest first.
func (s *SQLiteStore) ListPotsByOwner(ctx context.Context, owner string) ([]*models.SavingsPot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, name, target_amount, current_amount, status, created_at, remarks
		 FROM pots WHERE owner = ? ORDER BY created_at DESC, id DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pots: %w", err)
	}
	defer rows.Close()

	var pots []*models.SavingsPot
	for rows.Next() {
		pot, err := s.scanPot(rows)
		if err != nil {
			return nil, err
		}
		pots = append(pots, pot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pots: %w", err)
	}

	return pots, nil
}

func (s *SQLiteStore) scanPot(row scanner) (*models.SavingsPot, error) {
	pot := &models.SavingsPot{}
	var target, current int64
	var status int

	err := row.Scan(&pot.ID, &pot.Owner, &pot.Name, &target, &current,
		&status, &pot.CreatedAt, &pot.Remarks)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pot: %w", err)
	}

	pot.TargetAmount = amount.Amount(target)
	pot.CurrentAmount = amount.Amount(current)
	pot.Status = models.PotStatus(status)

	return pot, nil
}
