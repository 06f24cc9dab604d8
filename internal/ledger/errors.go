package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy for engine operations. Every failure an engine can report
// wraps one of these sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidAmount indicates a non-positive amount, a total that does
	// not divide evenly, or a contribution that is not exactly one share.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidParticipants indicates a participant count below one.
	ErrInvalidParticipants = errors.New("invalid participant count")

	// ErrNotFound indicates an unknown payment or pot ID.
	ErrNotFound = errors.New("record not found")

	// ErrNotAuthorized indicates the caller is not the record's creator/owner.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrAlreadyFinalized indicates the payment is no longer Pending.
	ErrAlreadyFinalized = errors.New("payment already finalized")

	// ErrAlreadyBroken indicates the pot has been broken.
	ErrAlreadyBroken = errors.New("pot already broken")

	// ErrOverfunded indicates a contribution that would push the collected
	// amount past the total (or a capped pot past its target).
	ErrOverfunded = errors.New("contribution exceeds limit")

	// ErrDuplicateUsername indicates the username is taken by another address.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrAlreadyRegistered indicates the address already owns a username.
	ErrAlreadyRegistered = errors.New("address already registered")

	// ErrPayoutFailed indicates the payout sink did not confirm a transfer.
	// The record is left exactly as before the call; the caller may retry.
	ErrPayoutFailed = errors.New("payout failed")
)

// RefundIncompleteError reports a refund where some contributor payouts did
// not confirm. Contributors already refunded are flagged in the record, so
// retrying the refund only pays the remaining ones.
type RefundIncompleteError struct {
	// Unpaid lists the contributor addresses not yet refunded.
	Unpaid []string
}

func (e *RefundIncompleteError) Error() string {
	return fmt.Sprintf("refund incomplete, %d contributors unpaid: %s",
		len(e.Unpaid), strings.Join(e.Unpaid, ", "))
}

// Unwrap classifies the partial failure as a payout failure.
func (e *RefundIncompleteError) Unwrap() error {
	return ErrPayoutFailed
}
