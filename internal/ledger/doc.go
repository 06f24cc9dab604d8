// Package ledger implements the escrow engines at the core of ProtectedPay:
// the PaymentEngine for group payments and the PotEngine for savings pots.
//
// Both engines follow the same discipline: lock the target record, validate
// against the record's invariants, attempt any required payout through the
// PayoutSink, and persist only after the payout is confirmed. A failed payout
// leaves the record exactly as it was before the call, so state never shows a
// terminal status without a confirmed transfer.
package ledger
