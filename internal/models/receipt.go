package models

import "github.com/protectedpay/ledger/internal/amount"

// TransferReceipt records a confirmed value transfer performed by the
// payout sink. A receipt exists only for transfers that succeeded; the
// engines never assume a payout happened without one.
type TransferReceipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// From is the originating context, e.g. "payment/3" or "pot/7".
	From string

	// To is the address that received the transfer.
	To string

	// Amount is the transferred value in base units.
	Amount amount.Amount

	// CreatedAt is the Unix timestamp when the transfer was confirmed.
	CreatedAt int64
}
