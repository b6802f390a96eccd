package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// UnitStore accepts batches of parsed units. Implementations must make a
// batch upsert atomic: either every unit in the batch is stored or none.
type UnitStore interface {
	UpsertUnits(ctx context.Context, units []Unit) error
	Close() error
}

// SQLiteStore persists units in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the unit database at dbPath and ensures
// the schema exists. Use ":memory:" for an ephemeral store in tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writes anyway, and a single connection keeps
	// ":memory:" databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// UpsertUnits writes a batch of units atomically, replacing any unit that
// already exists under the same unit ID.
func (s *SQLiteStore) UpsertUnits(ctx context.Context, units []Unit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, u := range units {
		createdAt := u.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err := sq.Insert("units").
			Options("OR REPLACE").
			Columns("unit_id", "document_id", "file_path", "file_type", "content", "metadata", "created_at").
			Values(
				u.UnitID,
				u.DocumentID.String(),
				u.FilePath,
				u.FileType,
				u.Content,
				u.Metadata,
				createdAt.UTC().Format(time.RFC3339),
			).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert unit %s: %w", u.UnitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountUnits returns the number of stored units for a document ID.
func (s *SQLiteStore) CountUnits(ctx context.Context, documentID string) (int, error) {
	var count int
	err := sq.Select("COUNT(*)").
		From("units").
		Where(sq.Eq{"document_id": documentID}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}
	return count, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
