package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fpath-go/internal/catalog"
	"fpath-go/internal/database/migrations"
	"fpath-go/internal/fpath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements catalog.Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the store at path, which can be a file path or
// ":memory:". The schema is not touched; see Migrate and CheckMigrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing connection.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens and configures a SQLite connection with appropriate PRAGMAs.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

const rootColumns = "id, path, created_at"

func (s *SQLiteStore) FindRoot(key string) (*catalog.Root, error) {
	row := s.db.QueryRowContext(context.Background(),
		"SELECT "+rootColumns+" FROM roots WHERE path_key = ?", key)
	r, err := scanRoot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding root by key: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListRoots() ([]*catalog.Root, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT "+rootColumns+" FROM roots ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}
	defer rows.Close()

	var roots []*catalog.Root
	for rows.Next() {
		r, err := scanRoot(rows)
		if err != nil {
			return nil, fmt.Errorf("reading root: %w", err)
		}
		roots = append(roots, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing roots: %w", err)
	}
	return roots, nil
}

func (s *SQLiteStore) CreateRoot(root *catalog.Root, replaces []string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range replaces {
		if _, err := tx.ExecContext(ctx, "DELETE FROM roots WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting replaced root %s: %w", id, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO roots (id, path_key, path, created_at) VALUES (?, ?, ?, ?)",
		root.ID, root.Path.Key(), root.Path, root.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting root: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRoot(id string) error {
	if _, err := s.db.ExecContext(context.Background(), "DELETE FROM roots WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting root: %w", err)
	}
	return nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// Migrate applies pending schema migrations.
func (s *SQLiteStore) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Status reports the schema version without applying anything.
func (s *SQLiteStore) Status() (migrations.Status, error) {
	return migrations.GetStatus(s.db)
}

// Schema returns the CREATE statements of the applied schema.
func (s *SQLiteStore) Schema() (string, error) {
	return migrations.DumpSchema(s.db)
}

// BackupTo writes a complete copy of the database to destPath using VACUUM INTO.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoot(row rowScanner) (*catalog.Root, error) {
	var (
		r       catalog.Root
		p       fpath.Path
		created time.Time
	)
	if err := row.Scan(&r.ID, &p, &created); err != nil {
		return nil, err
	}
	r.Path = p.AsDirectory()
	r.CreatedAt = created
	return &r, nil
}

var _ catalog.Store = (*SQLiteStore)(nil)
