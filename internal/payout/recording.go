// Package payout provides PayoutSink implementations. The ledger engines
// treat value transfer as a collaborator capability; this package supplies
// the confirmable default used when running the service standalone.
package payout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// RecordingSink confirms transfers by writing a TransferReceipt through the
// store. A transfer is confirmed if and only if its receipt persisted; the
// receipts double as the dashboard's activity history.
type RecordingSink struct {
	store storage.Store
}

// NewRecordingSink creates a sink writing receipts to the given store.
func NewRecordingSink(store storage.Store) *RecordingSink {
	return &RecordingSink{store: store}
}

// Transfer records the transfer and confirms it.
func (s *RecordingSink) Transfer(ctx context.Context, from, to string, amt amount.Amount) error {
	r := &models.TransferReceipt{
		ID:     uuid.New().String(),
		From:   from,
		To:     to,
		Amount: amt,
	}
	if err := s.store.CreateReceipt(ctx, r); err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}

	slog.Info("Transfer confirmed",
		"receipt_id", r.ID,
		"from", from,
		"to", to,
		"amount", amt,
	)
	return nil
}

var _ ledger.PayoutSink = (*RecordingSink)(nil)
