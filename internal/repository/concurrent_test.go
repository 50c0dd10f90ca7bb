package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/bfmp/internal/db"
	"github.com/alexanderramin/bfmp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// A ledger write while `bfmp history` reads must not corrupt either side.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteRenderRepo(database)

	const writes = 20
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			if err := repo.Create(ctx, testutil.NewTestRender()); err != nil {
				t.Errorf("writer: create render %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				recs, err := repo.List(ctx, 100)
				if err != nil {
					t.Errorf("reader %d: list renders: %v", reader, err)
					return
				}
				for _, rec := range recs {
					if rec.ID == "" || rec.Status == "" {
						t.Errorf("reader %d: got half-written record", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	recs, err := repo.List(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, recs, writes)
}
