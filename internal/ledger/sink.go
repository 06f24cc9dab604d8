package ledger

import (
	"context"

	"github.com/protectedpay/ledger/internal/amount"
)

// PayoutSink is the collaborator that performs actual value transfers.
// Transfer is synchronous from the engine's view and must be confirmable:
// no payout is assumed to have happened unless it returns nil.
//
// from identifies the originating record (e.g. "payment/3"), not an address;
// the sink decides what, if anything, to do with it.
type PayoutSink interface {
	Transfer(ctx context.Context, from, to string, amt amount.Amount) error
}
