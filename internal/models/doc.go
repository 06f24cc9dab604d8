// Package models defines the core domain records for the ProtectedPay ledger.
//
// # Records
//
//   - GroupPayment: an escrow splitting a fixed total among a fixed number of
//     equal contributions, released to a recipient only when fully funded
//   - Contribution: one contributor's entry in a payment's contributor ledger
//   - SavingsPot: a goal-tracked balance owned by a single address
//   - UsernameEntry: a bidirectional address/username mapping
//   - TransferReceipt: a confirmed value transfer performed by the payout sink
//   - Account: a dashboard login bound to an address
//
// # Design Principles
//
// 1. **Exact accounting**: all monetary fields are amount.Amount base units;
// no floats anywhere.
//
// 2. **Append-only history**: records are never deleted; terminal statuses
// (Completed, Refunded, Broken) mark them read-only.
//
// 3. **Numeric status codes**: statuses keep the contract's numeric encoding
// and expose labels separately for display.
//
// 4. **Internal refund bookkeeping**: Contribution rows carry a Refunded flag
// that is not part of the externally visible payment shape but makes refund
// retries idempotent.
package models
