// Package storage provides the SQLite-backed store for synsets, images and
// hyponym edges.
//
// All relational integrity lives in the engine: foreign keys are declared
// with ON UPDATE CASCADE ON DELETE CASCADE, so renaming or deleting a synset
// propagates to its images and to hyponym edges referencing it on either
// side. Every mutating operation runs in one transaction; uniqueness
// violations roll back and surface as ErrConflict, never as partial writes.
package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"evalgo.org/wnbrowser/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique key collides.
	ErrConflict = errors.New("already exists")
)

// Storage wraps the SQLite database handle.
type Storage struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at the configured path,
// enables foreign key enforcement and applies pending migrations.
func New(cfg *config.Config) (*Storage, error) {
	return Open(cfg.Database.Path)
}

// Open opens the database at the given path. Parent directories are created
// as needed.
func Open(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The pragma is per-connection; a single connection keeps it effective
	// and serializes writers, matching the one-transaction-per-request model.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func migrate(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func (s *Storage) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
