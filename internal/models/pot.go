package models

import "github.com/protectedpay/ledger/internal/amount"

// PotStatus is the lifecycle state of a savings pot. The numeric values
// mirror the on-chain contract's status enum.
type PotStatus int

const (
	PotActive PotStatus = 0
	PotBroken PotStatus = 1
)

// String returns the display label for the status.
func (s PotStatus) String() string {
	switch s {
	case PotActive:
		return "active"
	case PotBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// SavingsPot is a goal-tracked balance owned by a single address.
// CurrentAmount only grows while the pot is Active; breaking the pot pays
// the balance back to the owner, zeroes it, and is terminal.
type SavingsPot struct {
	// ID is assigned monotonically by the store at creation.
	ID int64

	// Owner is the address that created the pot and may break it.
	Owner string

	// Name is the display name of the pot (e.g., "vacation").
	Name string

	// TargetAmount is the savings goal in base units. It is a goal, not a
	// cap, unless the engine is configured otherwise.
	TargetAmount amount.Amount

	// CurrentAmount is the balance saved so far.
	CurrentAmount amount.Amount

	// Status is Active until the pot is broken.
	Status PotStatus

	// CreatedAt is the Unix timestamp when the pot was created.
	CreatedAt int64

	// Remarks is free text supplied by the owner.
	Remarks string
}
