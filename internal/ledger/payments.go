package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// PaymentEngine drives the lifecycle of group payments: create, contribute,
// complete, refund.
type PaymentEngine struct {
	store storage.Store
	sink  PayoutSink
	locks *lockTable
}

// NewPaymentEngine creates a payment engine over the given store and sink.
func NewPaymentEngine(store storage.Store, sink PayoutSink) *PaymentEngine {
	return &PaymentEngine{
		store: store,
		sink:  sink,
		locks: newLockTable(),
	}
}

// Create allocates a new pending group payment splitting total into
// numParticipants equal shares.
func (e *PaymentEngine) Create(ctx context.Context, creator, recipient string, total amount.Amount, numParticipants int64, remarks string) (*models.GroupPayment, error) {
	if numParticipants < 1 {
		return nil, ErrInvalidParticipants
	}
	if total <= 0 {
		return nil, ErrInvalidAmount
	}
	share, exact := total.Div(numParticipants)
	if !exact {
		return nil, fmt.Errorf("%w: %s does not divide evenly by %d", ErrInvalidAmount, total, numParticipants)
	}
	// Cross-check the share math with overflow-checked arithmetic.
	if product, err := share.Mul(numParticipants); err != nil || product != total {
		return nil, ErrInvalidAmount
	}

	p := &models.GroupPayment{
		Creator:         creator,
		Recipient:       recipient,
		TotalAmount:     total,
		AmountPerPerson: share,
		NumParticipants: numParticipants,
		AmountCollected: amount.Zero,
		Status:          models.PaymentPending,
		Remarks:         remarks,
	}
	if err := e.store.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	slog.Info("Group payment created",
		"payment_id", p.ID,
		"creator", creator,
		"recipient", recipient,
		"total", total,
		"participants", numParticipants,
	)
	return p, nil
}

// Get retrieves a payment by ID.
func (e *PaymentEngine) Get(ctx context.Context, id int64) (*models.GroupPayment, error) {
	p, err := e.store.GetPayment(ctx, id)
	if err == storage.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByAddress retrieves payments the address created, receives, or
// contributed to.
func (e *PaymentEngine) ListByAddress(ctx context.Context, addr string) ([]*models.GroupPayment, error) {
	payments, err := e.store.ListPaymentsByAddress(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Contribute accepts exactly one share from contributor. When the final
// share arrives the escrow completes: the sink transfers the full total to
// the recipient and only then does the record turn Completed. A failed
// payout leaves the record untouched, including the triggering contribution.
func (e *PaymentEngine) Contribute(ctx context.Context, id int64, contributor string, amt amount.Amount) (*models.GroupPayment, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	p, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status.Terminal() {
		return nil, ErrAlreadyFinalized
	}
	// Exact-share policy: each call must equal exactly one share. Repeat
	// contributions from the same address accumulate in the ledger.
	if amt != p.AmountPerPerson {
		return nil, fmt.Errorf("%w: contribution must equal the per-person share %s", ErrInvalidAmount, p.AmountPerPerson)
	}

	collected, err := p.AmountCollected.Add(amt)
	if err != nil {
		return nil, err
	}
	if collected > p.TotalAmount {
		return nil, ErrOverfunded
	}

	if c := p.Contribution(contributor); c != nil {
		sum, err := c.Amount.Add(amt)
		if err != nil {
			return nil, err
		}
		c.Amount = sum
	} else {
		p.Contributions = append(p.Contributions, models.Contribution{
			Contributor: contributor,
			Amount:      amt,
		})
	}
	p.AmountCollected = collected

	if collected == p.TotalAmount {
		// Fully funded: pay the recipient before committing Completed.
		if err := e.sink.Transfer(ctx, paymentRef(p.ID), p.Recipient, p.TotalAmount); err != nil {
			slog.Warn("Completion payout failed",
				"payment_id", p.ID,
				"recipient", p.Recipient,
				"error", err,
			)
			return nil, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
		}
		p.Status = models.PaymentCompleted
	}

	if err := e.store.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	slog.Info("Contribution accepted",
		"payment_id", p.ID,
		"contributor", contributor,
		"amount", amt,
		"collected", p.AmountCollected,
		"status", p.Status.String(),
	)
	return p, nil
}

// Refund returns every contribution to its contributor and marks the payment
// Refunded. Only the creator may refund, and only while the payment is
// Pending. Each contributor is paid at most once: confirmed payouts are
// flagged on the contribution and persisted even when later payouts fail, so
// a retry after a partial failure skips contributors already refunded.
func (e *PaymentEngine) Refund(ctx context.Context, id int64, caller string) (*models.GroupPayment, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	p, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != p.Creator {
		return nil, ErrNotAuthorized
	}
	if p.Status.Terminal() {
		return nil, ErrAlreadyFinalized
	}

	var unpaid []string
	for i := range p.Contributions {
		c := &p.Contributions[i]
		if c.Refunded || c.Amount == 0 {
			continue
		}
		if err := e.sink.Transfer(ctx, paymentRef(p.ID), c.Contributor, c.Amount); err != nil {
			slog.Warn("Refund payout failed",
				"payment_id", p.ID,
				"contributor", c.Contributor,
				"error", err,
			)
			unpaid = append(unpaid, c.Contributor)
			continue
		}
		c.Refunded = true
	}

	if len(unpaid) == 0 {
		p.Status = models.PaymentRefunded
	}

	// Persist refunded flags even on partial failure so a retry never pays
	// the same contributor twice. The status stays Pending until everyone
	// has been paid back.
	if err := e.store.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	if len(unpaid) > 0 {
		return nil, &RefundIncompleteError{Unpaid: unpaid}
	}

	slog.Info("Payment refunded",
		"payment_id", p.ID,
		"creator", p.Creator,
		"contributors", len(p.Contributions),
	)
	return p, nil
}

func paymentRef(id int64) string {
	return fmt.Sprintf("payment/%d", id)
}
