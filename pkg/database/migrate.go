package database

import (
	"database/sql"
	"fmt"
)

// scans is append-only; expected_records and expected_count are replaced
// wholesale on each manifest upload, always inside one transaction.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_at  TEXT    NOT NULL,
    order_number INTEGER NOT NULL,
    clp_number   INTEGER NOT NULL,
    status       INTEGER NOT NULL CHECK (status IN (0, 1))
);

CREATE INDEX IF NOT EXISTS idx_scans_pair ON scans(order_number, clp_number);
CREATE INDEX IF NOT EXISTS idx_scans_recorded_at ON scans(recorded_at);

CREATE TABLE IF NOT EXISTS expected_records (
    order_number INTEGER NOT NULL,
    clp_number   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expected_count (
    id             INTEGER PRIMARY KEY CHECK (id = 1),
    expected_count INTEGER NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
