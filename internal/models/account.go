package models

// Account is a dashboard login bound to an address. The ledger engines
// authorize by address; accounts only exist so the HTTP layer can issue
// session tokens carrying that address.
type Account struct {
	// Address is the unique address this account controls.
	Address string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
