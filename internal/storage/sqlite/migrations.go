package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Payment and pot IDs use AUTOINCREMENT so IDs are assigned monotonically
// and never reused, matching the contract's ID semantics.
const schema = `
CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    creator TEXT NOT NULL,
    recipient TEXT NOT NULL,
    total_amount INTEGER NOT NULL,
    amount_per_person INTEGER NOT NULL,
    num_participants INTEGER NOT NULL,
    amount_collected INTEGER NOT NULL,
    status INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    remarks TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS contributions (
    payment_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    contributor TEXT NOT NULL,
    amount INTEGER NOT NULL,
    refunded INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (payment_id, contributor),
    FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS pots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner TEXT NOT NULL,
    name TEXT NOT NULL,
    target_amount INTEGER NOT NULL,
    current_amount INTEGER NOT NULL,
    status INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    remarks TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS usernames (
    address TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    address TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS receipts (
    id TEXT PRIMARY KEY,
    from_ref TEXT NOT NULL,
    to_address TEXT NOT NULL,
    amount INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contributions_payment_id ON contributions(payment_id);
CREATE INDEX IF NOT EXISTS idx_contributions_contributor ON contributions(contributor);
CREATE INDEX IF NOT EXISTS idx_payments_creator ON payments(creator);
CREATE INDEX IF NOT EXISTS idx_pots_owner ON pots(owner);
CREATE INDEX IF NOT EXISTS idx_receipts_to_address ON receipts(to_address);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
