package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/models"
)

// CreateReceipt persists a confirmed transfer receipt.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, r *models.TransferReceipt) error {
	// Generate ID if not set
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO receipts (id, from_ref, to_address, amount, created_at) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.From, r.To, int64(r.Amount), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	return nil
}

// ListReceiptsByAddress retrieves receipts sent to the address, newest first.
func (s *SQLiteStore) ListReceiptsByAddress(ctx context.Context, addr string) ([]*models.TransferReceipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_ref, to_address, amount, created_at
		 FROM receipts WHERE to_address = ? ORDER BY created_at DESC, id`,
		addr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.TransferReceipt
	for rows.Next() {
		r := &models.TransferReceipt{}
		var amt int64
		if err := rows.Scan(&r.ID, &r.From, &r.To, &amt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		r.Amount = amount.Amount(amt)
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	return receipts, nil
}
