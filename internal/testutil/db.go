package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/maptotext/mindmap/internal/repo"
)

func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repo.Open(filepath.Join(t.TempDir(), "mindmap_test.db"))
	require.NoError(t, err)
	require.NoError(t, repo.ApplyMigrations(db))
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
