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

// CreatePayment persists a new payment and assigns its ID and CreatedAt.
func (s *SQLiteStore) CreatePayment(ctx context.Context, p *models.GroupPayment) error {
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (creator, recipient, total_amount, amount_per_person, num_participants, amount_collected, status, created_at, remarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Creator, p.Recipient, int64(p.TotalAmount), int64(p.AmountPerPerson),
		p.NumParticipants, int64(p.AmountCollected), int(p.Status), p.CreatedAt, p.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	p.ID = id

	return nil
}

// GetPayment retrieves a payment with its contributor ledger.
func (s *SQLiteStore) GetPayment(ctx context.Context, id int64) (*models.GroupPayment, error) {
	p, err := s.scanPayment(s.db.QueryRowContext(ctx,
		`SELECT id, creator, recipient, total_amount, amount_per_person, num_participants, amount_collected, status, created_at, remarks
		 FROM payments WHERE id = ?`,
		id,
	))
	if err != nil {
		return nil, err
	}

	contributions, err := s.getContributions(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Contributions = contributions

	return p, nil
}

// UpdatePayment atomically persists the payment record and its contributor
// ledger. The contribution rows are rewritten to match p.Contributions.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, p *models.GroupPayment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET amount_collected = ?, status = ? WHERE id = ?`,
		int64(p.AmountCollected), int(p.Status), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check payment update: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM contributions WHERE payment_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear contributions: %w", err)
	}
	for i, c := range p.Contributions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contributions (payment_id, position, contributor, amount, refunded)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, i, c.Contributor, int64(c.Amount), boolToInt(c.Refunded),
		)
		if err != nil {
			return fmt.Errorf("failed to insert contribution: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPaymentsByAddress retrieves payments the address created or contributed
// to, newest first.
func (s *SQLiteStore) ListPaymentsByAddress(ctx context.Context, addr string) ([]*models.GroupPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT p.id, p.creator, p.recipient, p.total_amount, p.amount_per_person, p.num_participants, p.amount_collected, p.status, p.created_at, p.remarks
		 FROM payments p
		 LEFT JOIN contributions c ON c.payment_id = p.id
		 WHERE p.creator = ? OR p.recipient = ? OR c.contributor = ?
		 ORDER BY p.created_at DESC, p.id DESC`,
		addr, addr, addr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.GroupPayment
	for rows.Next() {
		p, err := s.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	for _, p := range payments {
		contributions, err := s.getContributions(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Contributions = contributions
	}

	return payments, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanPayment(row scanner) (*models.GroupPayment, error) {
	p := &models.GroupPayment{}
	var total, perPerson, collected int64
	var status int

	err := row.Scan(&p.ID, &p.Creator, &p.Recipient, &total, &perPerson,
		&p.NumParticipants, &collected, &status, &p.CreatedAt, &p.Remarks)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	p.TotalAmount = amount.Amount(total)
	p.AmountPerPerson = amount.Amount(perPerson)
	p.AmountCollected = amount.Amount(collected)
	p.Status = models.PaymentStatus(status)

	return p, nil
}

func (s *SQLiteStore) getContributions(ctx context.Context, paymentID int64) ([]models.Contribution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT contributor, amount, refunded FROM contributions
		 WHERE payment_id = ? ORDER BY position`,
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		var amt int64
		var refunded int
		if err := rows.Scan(&c.Contributor, &amt, &refunded); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		c.Amount = amount.Amount(amt)
		c.Refunded = refunded != 0
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}

	return contributions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
