package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts and balances are stored as TEXT and round-tripped through
// decimal strings; REAL would drift under repeated balance folds.
const schema = `
CREATE TABLE IF NOT EXISTS parties (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    credit_limit TEXT NOT NULL DEFAULT '0',
    current_balance TEXT NOT NULL DEFAULT '0',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_parties_name ON parties(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS staff (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_name ON staff(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    party_id TEXT,
    staff_id TEXT,
    date TEXT NOT NULL,
    type TEXT NOT NULL,
    amount TEXT NOT NULL,
    running_balance TEXT NOT NULL DEFAULT '0',
    bill_number TEXT NOT NULL DEFAULT '',
    has_gst INTEGER NOT NULL DEFAULT 0,
    mode TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (party_id) REFERENCES parties(id),
    FOREIGN KEY (staff_id) REFERENCES staff(id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_party ON transactions(party_id, date, created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_match ON transactions(party_id, date, type, amount);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
