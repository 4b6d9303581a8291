// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hrms/backend/internal/commands"
	"hrms/backend/internal/pkg/repository/database"
)

// NewDatabase opens a migrated SQLite store in a temporary directory. It is
// closed when the test ends.
func NewDatabase(t *testing.T) *database.Database {
	t.Helper()

	ctx := context.Background()
	db, err := database.New(ctx, database.Config{URL: filepath.Join(t.TempDir(), "hrms.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, commands.Migrate(ctx, db))

	return db
}
