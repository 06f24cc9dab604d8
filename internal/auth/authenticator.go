package auth

import (
	"context"

	"github.com/protectedpay/ledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// wallet signatures, OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new account binding the address to a credential.
	// The credential format depends on the implementation.
	Register(ctx context.Context, address, credential string) (*models.Account, error)

	// Authenticate verifies the credential for the address and returns the
	// account if valid.
	Authenticate(ctx context.Context, address, credential string) (*models.Account, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements (length, format, etc.).
	ValidateCredential(credential string) error
}
