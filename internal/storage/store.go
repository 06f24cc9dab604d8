// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/protectedpay/ledger/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (e.g. a taken username or an existing account).
	ErrDuplicate = errors.New("record already exists")
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the engines.
//
// Implementations must assign payment and pot IDs monotonically at creation
// and must apply each update atomically: a payment update persists the record
// and its contributor ledger in a single transaction, or not at all.
type Store interface {
	// CreatePayment persists a new payment and assigns its ID and CreatedAt.
	CreatePayment(ctx context.Context, p *models.GroupPayment) error

	// GetPayment retrieves a payment with its contributor ledger.
	// Returns ErrNotFound if the ID is unknown.
	GetPayment(ctx context.Context, id int64) (*models.GroupPayment, error)

	// UpdatePayment atomically persists the payment record and its
	// contributor ledger. Returns ErrNotFound if the ID is unknown.
	UpdatePayment(ctx context.Context, p *models.GroupPayment) error

	// ListPaymentsByAddress retrieves payments the address created or
	// contributed to, newest first.
	ListPaymentsByAddress(ctx context.Context, addr string) ([]*models.GroupPayment, error)

	// CreatePot persists a new savings pot and assigns its ID and CreatedAt.
	CreatePot(ctx context.Context, pot *models.SavingsPot) error

	// GetPot retrieves a savings pot. Returns ErrNotFound if the ID is unknown.
	GetPot(ctx context.Context, id int64) (*models.SavingsPot, error)

	// UpdatePot persists a savings pot. Returns ErrNotFound if the ID is unknown.
	UpdatePot(ctx context.Context, pot *models.SavingsPot) error

	// ListPotsByOwner retrieves all pots owned by the address, newest first.
	ListPotsByOwner(ctx context.Context, owner string) ([]*models.SavingsPot, error)

	// PutUsername persists a username registration.
	// Returns ErrDuplicate if the name or the address is already registered.
	PutUsername(ctx context.Context, e *models.UsernameEntry) error

	// GetUsernameByName resolves a username to its entry.
	GetUsernameByName(ctx context.Context, name string) (*models.UsernameEntry, error)

	// GetUsernameByAddress looks up the username registered for an address.
	GetUsernameByAddress(ctx context.Context, addr string) (*models.UsernameEntry, error)

	// CreateAccount persists a new account.
	// Returns ErrDuplicate if the address already has one.
	CreateAccount(ctx context.Context, a *models.Account) error

	// GetAccount retrieves the account for an address.
	GetAccount(ctx context.Context, addr string) (*models.Account, error)

	// CreateReceipt persists a confirmed transfer receipt.
	CreateReceipt(ctx context.Context, r *models.TransferReceipt) error

	// ListReceiptsByAddress retrieves receipts sent to the address, newest first.
	ListReceiptsByAddress(ctx context.Context, addr string) ([]*models.TransferReceipt, error)

	// Close releases any resources held by the store.
	Close() error
}
