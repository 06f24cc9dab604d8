// Package registry implements the bidirectional address/username mapping
// used to resolve human-readable recipients.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage"
)

// Registry enforces globally unique, immutable usernames: one name per
// address, registered once, never changed.
type Registry struct {
	store storage.Store

	// mu serializes the check-then-insert in Register. The schema's unique
	// constraints remain the backstop for any competing writer.
	mu sync.Mutex
}

// New creates a registry over the given store.
func New(store storage.Store) *Registry {
	return &Registry{store: store}
}

// Register binds name to address. The address must not already own a name
// and the name must not be taken by anyone.
func (r *Registry) Register(ctx context.Context, address, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty username", ledger.ErrDuplicateUsername)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.store.GetUsernameByAddress(ctx, address); err == nil {
		return ledger.ErrAlreadyRegistered
	} else if err != storage.ErrNotFound {
		return fmt.Errorf("check address registration: %w", err)
	}

	if _, err := r.store.GetUsernameByName(ctx, name); err == nil {
		return ledger.ErrDuplicateUsername
	} else if err != storage.ErrNotFound {
		return fmt.Errorf("check username: %w", err)
	}

	err := r.store.PutUsername(ctx, &models.UsernameEntry{Address: address, Username: name})
	if err == storage.ErrDuplicate {
		return ledger.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("register username: %w", err)
	}

	slog.Info("Username registered", "address", address, "username", name)
	return nil
}

// Resolve returns the address registered under name.
func (r *Registry) Resolve(ctx context.Context, name string) (string, error) {
	e, err := r.store.GetUsernameByName(ctx, name)
	if err == storage.ErrNotFound {
		return "", ledger.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve username: %w", err)
	}
	return e.Address, nil
}

// ReverseResolve returns the username registered for address.
func (r *Registry) ReverseResolve(ctx context.Context, address string) (string, error) {
	e, err := r.store.GetUsernameByAddress(ctx, address)
	if err == storage.ErrNotFound {
		return "", ledger.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reverse resolve: %w", err)
	}
	return e.Username, nil
}
