package models

import "github.com/protectedpay/ledger/internal/amount"

// PaymentStatus is the lifecycle state of a group payment. The numeric
// values mirror the on-chain contract's status enum.
type PaymentStatus int

const (
	PaymentPending   PaymentStatus = 0
	PaymentCompleted PaymentStatus = 1
	PaymentRefunded  PaymentStatus = 2
)

// String returns the display label for the status.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "pending"
	case PaymentCompleted:
		return "completed"
	case PaymentRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status permits no further mutation.
func (s PaymentStatus) Terminal() bool {
	return s != PaymentPending
}

// Contribution is one contributor's entry in a payment's contributor ledger.
// Refunded is internal bookkeeping: it marks contributors already paid back
// so that refund retries never pay the same contributor twice.
type Contribution struct {
	// Contributor is the contributing address.
	Contributor string

	// Amount is the total contributed by this address, in base units.
	Amount amount.Amount

	// Refunded marks this contribution as already returned by a refund.
	Refunded bool
}

// GroupPayment is an escrow record splitting TotalAmount into NumParticipants
// equal shares, released to Recipient only when fully funded.
//
// Invariants: 0 <= AmountCollected <= TotalAmount, AmountCollected equals the
// sum of Contributions, and AmountPerPerson * NumParticipants == TotalAmount.
type GroupPayment struct {
	// ID is assigned monotonically by the store at creation.
	ID int64

	// Creator is the address that created the payment and may refund it.
	Creator string

	// Recipient is the address paid out when the escrow completes.
	Recipient string

	// TotalAmount is the full escrow amount in base units.
	TotalAmount amount.Amount

	// AmountPerPerson is the exact share each contribution must equal.
	AmountPerPerson amount.Amount

	// NumParticipants is the number of equal shares (>= 1).
	NumParticipants int64

	// AmountCollected is the sum of accepted contributions so far.
	AmountCollected amount.Amount

	// Status is Pending until the escrow completes or is refunded.
	Status PaymentStatus

	// CreatedAt is the Unix timestamp when the payment was created.
	CreatedAt int64

	// Remarks is free text supplied by the creator.
	Remarks string

	// Contributions is the contributor ledger, in arrival order.
	Contributions []Contribution
}

// Contribution returns the ledger entry for the given address, or nil.
func (p *GroupPayment) Contribution(addr string) *Contribution {
	for i := range p.Contributions {
		if p.Contributions[i].Contributor == addr {
			return &p.Contributions[i]
		}
	}
	return nil
}
