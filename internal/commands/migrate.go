package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"hrms/backend/internal/pkg/repository/database"
)

type Scheme struct {
	Index       int
	Description string
	Postgres    string
	SQLite      string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: employees.",
		Postgres: `
        CREATE TABLE IF NOT EXISTS employees (
            id serial primary key,
            employee_id text not null,
            full_name text not null,
            email text not null,
            department text not null,
            created_at timestamp not null default now(),
            CONSTRAINT employees_employee_id_key UNIQUE (employee_id),
            CONSTRAINT employees_email_key UNIQUE (email)
        );`,
		SQLite: `
        CREATE TABLE IF NOT EXISTS employees (
            id integer primary key autoincrement,
            employee_id text not null,
            full_name text not null,
            email text not null,
            department text not null,
            created_at timestamp not null default current_timestamp,
            CONSTRAINT employees_employee_id_key UNIQUE (employee_id),
            CONSTRAINT employees_email_key UNIQUE (email)
        );`,
	},
	{
		Index:       2,
		Description: "Create table: attendance.",
		Postgres: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            employee_id int not null references employees(id) on delete cascade,
            date date not null,
            status text not null check (status in ('Present', 'Absent')),
            created_at timestamp not null default now(),
            CONSTRAINT attendance_employee_id_date_key UNIQUE (employee_id, date)
        );`,
		SQLite: `
        CREATE TABLE IF NOT EXISTS attendance (
            id integer primary key autoincrement,
            employee_id integer not null references employees(id) on delete cascade,
            date date not null,
            status text not null check (status in ('Present', 'Absent')),
            created_at timestamp not null default current_timestamp,
            CONSTRAINT attendance_employee_id_date_key UNIQUE (employee_id, date)
        );`,
	},
	{
		Index:       3,
		Description: "Create index: attendance by date.",
		Postgres:    `CREATE INDEX IF NOT EXISTS attendance_date_idx ON attendance (date DESC, id DESC);`,
		SQLite:      `CREATE INDEX IF NOT EXISTS attendance_date_idx ON attendance (date DESC, id DESC);`,
	},
}

func (s Scheme) query(driver database.Driver) string {
	if driver == database.Postgres {
		return s.Postgres
	}
	return s.SQLite
}

// Version returns the highest scheme index known to this binary.
func Version() int {
	return scheme[len(scheme)-1].Index
}

// Migrate brings the store up to the latest scheme. A version left dirty by
// a failed run is re-applied first.
func Migrate(ctx context.Context, db *database.Database) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty boolean not null, error text)`); err != nil {
		return errors.Wrap(err, "creating schema_migrations")
	}

	var (
		version int
		dirty   bool
		er      sql.NullString
	)
	err := db.QueryRowContext(ctx, "SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = db.ExecContext(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (0, ?)", false); err != nil {
			return errors.Wrap(err, "initializing schema_migrations")
		}
		version, dirty = 0, false
	} else if err != nil {
		return errors.Wrap(err, "reading schema_migrations")
	}

	for _, s := range scheme {
		if s.Index < version || (s.Index == version && !dirty) {
			continue
		}

		if _, err := db.ExecContext(ctx, s.query(db.Driver())); err != nil {
			if _, uerr := db.ExecContext(ctx,
				"UPDATE schema_migrations SET error = ?, version = ?, dirty = ?", err.Error(), s.Index, true); uerr != nil {
				return errors.Wrap(uerr, "recording migrate error")
			}
			return errors.Wrap(err, fmt.Sprintf("migrate version %d (%s)", s.Index, s.Description))
		}

		if _, err := db.ExecContext(ctx,
			"UPDATE schema_migrations SET version = ?, dirty = ?, error = NULL", s.Index, false); err != nil {
			return errors.Wrap(err, "recording migrate version")
		}
	}

	return nil
}

// CurrentVersion reports the version recorded in schema_migrations.
func CurrentVersion(ctx context.Context, db *database.Database) (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	if err := db.QueryRowContext(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty); err != nil {
		return 0, false, errors.Wrap(err, "reading schema_migrations")
	}

	return version, dirty, nil
}
