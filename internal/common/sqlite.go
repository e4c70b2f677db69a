package common

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteSubstrate is the durable Substrate implementation: a single local
// sqlite file holding one key/value table. It survives process restarts and
// needs no external server.
type SQLiteSubstrate struct {
	db *sql.DB
}

// NewSQLiteSubstrate opens (or creates) the database file at path and brings
// its schema up to date.
func NewSQLiteSubstrate(path string) (*SQLiteSubstrate, error) {
	db, err := connectDB(path)
	if err != nil {
		return nil, &SubstrateError{Op: "open", Key: path, Err: err}
	}

	if err := migrateDB(db); err != nil {
		db.Close()
		return nil, &SubstrateError{Op: "migrate", Key: path, Err: err}
	}

	return &SQLiteSubstrate{db: db}, nil
}

// connectDB connects to the database and returns the connection
func connectDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer; a larger pool only produces lock errors.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func migrateDB(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func (s *SQLiteSubstrate) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value FROM kv
		WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return "", false, nil
		default:
			return "", false, &SubstrateError{Op: "get", Key: key, Err: err}
		}
	}

	return value, true, nil
}

func (s *SQLiteSubstrate) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := s.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return &SubstrateError{Op: "set", Key: key, Err: err}
	}

	return nil
}

func (s *SQLiteSubstrate) Remove(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv
		WHERE key = ?`

	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return &SubstrateError{Op: "remove", Key: key, Err: err}
	}

	return nil
}

// Close closes the underlying database connection
func (s *SQLiteSubstrate) Close() error {
	return s.db.Close()
}
