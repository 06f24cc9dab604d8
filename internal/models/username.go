package models

// UsernameEntry maps an address to its registered username.
// Usernames are globally unique and, once registered, immutable:
// an address keeps its first username for good.
type UsernameEntry struct {
	// Address is the owning address.
	Address string

	// Username is the registered name.
	Username string

	// CreatedAt is the Unix timestamp when the name was registered.
	CreatedAt int64
}
