// Package database opens the record store behind bun. PostgreSQL is used for
// postgres:// URLs; anything else is treated as a SQLite file.
package database

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Driver names the backend selected from the store URL.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite3"
)

type Config struct {
	URL        string
	DisableTLS bool
	Debug      bool
	LogWriter  io.Writer
}

// Database is the bun handle shared by all repositories.
type Database struct {
	*bun.DB
	driver Driver
}

// New opens the store described by cfg and verifies the connection.
func New(ctx context.Context, cfg Config) (*Database, error) {
	driver, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	var db *bun.DB
	switch driver {
	case Postgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithInsecure(cfg.DisableTLS),
		))
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		sqldb, err := sql.Open(string(SQLite), dsn)
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite")
		}

		// SQLite allows a single writer.
		sqldb.SetMaxOpenConns(1)
		sqldb.SetMaxIdleConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if cfg.Debug {
		opts := []bundebug.Option{bundebug.WithVerbose(true)}
		if cfg.LogWriter != nil {
			opts = append(opts, bundebug.WithWriter(cfg.LogWriter))
		}
		db.AddQueryHook(bundebug.NewQueryHook(opts...))
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s", driver)
	}

	return &Database{DB: db, driver: driver}, nil
}

// Driver reports which backend the database talks to.
func (d *Database) Driver() Driver {
	return d.driver
}

// Transaction runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise; the connection is released on
// every path.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return d.RunInTx(ctx, nil, fn)
}

// ParseURL maps a store URL to a driver and its DSN. An empty URL selects
// ./hrms.db. SQLAlchemy style sqlite:///path URLs are accepted.
func ParseURL(raw string) (Driver, string, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "":
		return SQLite, sqliteDSN("./hrms.db"), nil
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Postgres, raw, nil
	case strings.HasPrefix(raw, "sqlite:///"):
		return SQLite, sqliteDSN(strings.TrimPrefix(raw, "sqlite:///")), nil
	case strings.HasPrefix(raw, "sqlite://"):
		return SQLite, sqliteDSN(strings.TrimPrefix(raw, "sqlite://")), nil
	case strings.Contains(raw, "://"):
		return "", "", errors.Errorf("unsupported database url %q", raw)
	default:
		return SQLite, sqliteDSN(raw), nil
	}
}

func sqliteDSN(path string) string {
	path = strings.TrimPrefix(path, "file:")
	if path == "" {
		path = "./hrms.db"
	}

	params := "_foreign_keys=on&_busy_timeout=5000"
	if !strings.Contains(path, ":memory:") {
		params += "&_journal_mode=WAL"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return "file:" + path + sep + params
}

// UniqueViolation reports whether err is a unique constraint failure and, if
// so, the constraint (PostgreSQL) or column list (SQLite) that failed.
func UniqueViolation(err error) (string, bool) {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		if pgErr.Field('C') == "23505" {
			return pgErr.Field('n'), true
		}
		return "", false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return strings.TrimPrefix(liteErr.Error(), "UNIQUE constraint failed: "), true
		}
	}

	return "", false
}

// ForeignKeyViolation reports whether err is a foreign key constraint failure.
func ForeignKeyViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23503"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}
