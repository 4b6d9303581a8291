package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/internal/commands"
	"hrms/backend/internal/pkg/repository/database"
	"hrms/backend/internal/testutil"
)

func TestMigrateRecordsVersion(t *testing.T) {
	db := testutil.NewDatabase(t)

	version, dirty, err := commands.CurrentVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, commands.Version(), version)
	assert.False(t, dirty)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.NewDatabase(t)
	ctx := context.Background()

	require.NoError(t, commands.Migrate(ctx, db))
	require.NoError(t, commands.Migrate(ctx, db))

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM schema_migrations").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestMigrateCreatesTables(t *testing.T) {
	db := testutil.NewDatabase(t)
	ctx := context.Background()

	for _, table := range []string{"employees", "attendance"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hrms.db")

	db, err := database.New(ctx, database.Config{URL: path})
	require.NoError(t, err)
	require.NoError(t, commands.Migrate(ctx, db))
	_, err = db.ExecContext(ctx,
		"INSERT INTO employees (employee_id, full_name, email, department) VALUES ('E1', 'Ada', 'ada@x.io', 'Eng')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.New(ctx, database.Config{URL: path})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, commands.Migrate(ctx, db))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM employees").Scan(&count))
	assert.Equal(t, 1, count)
}
