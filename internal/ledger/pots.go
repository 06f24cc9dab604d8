package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// PotPolicy configures the contribution rules for savings pots.
// The defaults (owner-only, uncapped) are the conservative reading of the
// contract: a pot is a personal savings goal, not a funding cap.
type PotPolicy struct {
	// OpenContributions permits addresses other than the owner to contribute.
	OpenContributions bool

	// CapAtTarget rejects contributions that would push the balance past
	// the target instead of letting the pot overshoot its goal.
	CapAtTarget bool
}

// PotEngine drives the lifecycle of savings pots: create, contribute, break.
type PotEngine struct {
	store  storage.Store
	sink   PayoutSink
	policy PotPolicy
	locks  *lockTable
}

// NewPotEngine creates a pot engine over the given store and sink.
func NewPotEngine(store storage.Store, sink PayoutSink, policy PotPolicy) *PotEngine {
	return &PotEngine{
		store:  store,
		sink:   sink,
		policy: policy,
		locks:  newLockTable(),
	}
}

// Create allocates a new active savings pot with the given target.
func (e *PotEngine) Create(ctx context.Context, owner, name string, target amount.Amount, remarks string) (*models.SavingsPot, error) {
	if target <= 0 {
		return nil, ErrInvalidAmount
	}

	pot := &models.SavingsPot{
		Owner:         owner,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: amount.Zero,
		Status:        models.PotActive,
		Remarks:       remarks,
	}
	if err := e.store.CreatePot(ctx, pot); err != nil {
		return nil, fmt.Errorf("create pot: %w", err)
	}

	slog.Info("Savings pot created",
		"pot_id", pot.ID,
		"owner", owner,
		"name", name,
		"target", target,
	)
	return pot, nil
}

// Get retrieves a pot by ID.
func (e *PotEngine) Get(ctx context.Context, id int64) (*models.SavingsPot, error) {
	pot, err := e.store.GetPot(ctx, id)
	if err == storage.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pot: %w", err)
	}
	return pot, nil
}

// ListByOwner retrieves all pots owned by the address.
func (e *PotEngine) ListByOwner(ctx context.Context, owner string) ([]*models.SavingsPot, error) {
	pots, err := e.store.ListPotsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list pots: %w", err)
	}
	return pots, nil
}

// Contribute adds amt to the pot's balance. Exceeding the target is allowed
// unless the engine is configured to cap at target.
func (e *PotEngine) Contribute(ctx context.Context, id int64, caller string, amt amount.Amount) (*models.SavingsPot, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	pot, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pot.Status == models.PotBroken {
		return nil, ErrAlreadyBroken
	}
	if !e.policy.OpenContributions && caller != pot.Owner {
		return nil, ErrNotAuthorized
	}
	if amt <= 0 {
		return nil, ErrInvalidAmount
	}

	current, err := pot.CurrentAmount.Add(amt)
	if err != nil {
		return nil, err
	}
	if e.policy.CapAtTarget && current > pot.TargetAmount {
		return nil, ErrOverfunded
	}
	pot.CurrentAmount = current

	if err := e.store.UpdatePot(ctx, pot); err != nil {
		return nil, fmt.Errorf("update pot: %w", err)
	}

	slog.Info("Pot contribution accepted",
		"pot_id", pot.ID,
		"contributor", caller,
		"amount", amt,
		"current", pot.CurrentAmount,
	)
	return pot, nil
}

// Break pays the pot's balance back to its owner, zeroes it, and marks the
// pot Broken. On payout failure the pot stays Active and unchanged.
func (e *PotEngine) Break(ctx context.Context, id int64, caller string) (*models.SavingsPot, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	pot, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != pot.Owner {
		return nil, ErrNotAuthorized
	}
	if pot.Status == models.PotBroken {
		return nil, ErrAlreadyBroken
	}

	if pot.CurrentAmount > 0 {
		if err := e.sink.Transfer(ctx, potRef(pot.ID), pot.Owner, pot.CurrentAmount); err != nil {
			slog.Warn("Break payout failed",
				"pot_id", pot.ID,
				"owner", pot.Owner,
				"error", err,
			)
			return nil, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
		}
	}

	paidOut := pot.CurrentAmount
	pot.CurrentAmount = amount.Zero
	pot.Status = models.PotBroken

	if err := e.store.UpdatePot(ctx, pot); err != nil {
		return nil, fmt.Errorf("update pot: %w", err)
	}

	slog.Info("Pot broken",
		"pot_id", pot.ID,
		"owner", pot.Owner,
		"paid_out", paidOut,
	)
	return pot, nil
}

func potRef(id int64) string {
	return fmt.Sprintf("pot/%d", id)
}
