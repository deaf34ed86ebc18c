package sqlite

import "database/sql"

// schema runs on startup. Rows are created by an upload before the bill's
// fields are known, hence the permissive defaults.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL DEFAULT 0,
    date TEXT NOT NULL DEFAULT '',
    vat TEXT NOT NULL DEFAULT '',
    pct REAL NOT NULL DEFAULT 0,
    commentary TEXT NOT NULL DEFAULT '',
    file_url TEXT,
    file_name TEXT,
    status TEXT NOT NULL DEFAULT 'pending',
    comment_admin TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_email ON bills(email);
CREATE INDEX IF NOT EXISTS idx_bills_date ON bills(date);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
