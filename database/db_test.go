package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB creates a SQLite file in a temp dir and runs stmts against it.
func newTestDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	for _, stmt := range stmts {
		_, err := conn.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}
