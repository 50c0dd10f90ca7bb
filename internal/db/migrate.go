package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The renders table is a ledger of generations. It holds output metadata
// only; plan field values never reach the database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS renders (
		id               TEXT PRIMARY KEY,
		created_at       TEXT NOT NULL,
		target           TEXT NOT NULL
		                 CHECK(target IN ('fragment','print','pdf')),
		plan_format      TEXT NOT NULL
		                 CHECK(plan_format IN ('Full Plan','BFMP Only','BFRB Only')),
		output_path      TEXT NOT NULL DEFAULT '',
		output_bytes     INTEGER NOT NULL DEFAULT 0,
		digest           TEXT NOT NULL DEFAULT '',
		missing_sections TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL
		                 CHECK(status IN ('completed','aborted','failed'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_renders_status ON renders(status)`,

	// Added after the first release; older ledgers get the column on open.
	`ALTER TABLE renders ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`,
}
