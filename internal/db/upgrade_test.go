package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A ledger written before duration_ms existed keeps its rows and gains the
// column with a zero default.
func TestMigrate_UpgradePath_LedgerWithoutDuration(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE renders (
		id               TEXT PRIMARY KEY,
		created_at       TEXT NOT NULL,
		target           TEXT NOT NULL,
		plan_format      TEXT NOT NULL,
		output_path      TEXT NOT NULL DEFAULT '',
		output_bytes     INTEGER NOT NULL DEFAULT 0,
		digest           TEXT NOT NULL DEFAULT '',
		missing_sections TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO renders (id, created_at, target, plan_format, output_path, output_bytes, status)
		VALUES ('legacy-1', '2025-11-02T09:00:00Z', 'print', 'Full Plan', '/tmp/plan.html', 2048, 'completed')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var (
		path     string
		size     int
		duration int
	)
	err = db.QueryRow(`SELECT output_path, output_bytes, duration_ms FROM renders WHERE id = 'legacy-1'`).
		Scan(&path, &size, &duration)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plan.html", path)
	assert.Equal(t, 2048, size)
	assert.Equal(t, 0, duration)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_renders_created'`).Scan(&name))
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger", "history.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM renders`).Scan(&n))
	assert.Equal(t, 0, n)
}
