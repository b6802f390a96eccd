package storage

import (
	"database/sql"
	"fmt"
)

const createUnitsTable = `
CREATE TABLE IF NOT EXISTS units (
	unit_id     TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	file_path   TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	content     TEXT NOT NULL,
	metadata    TEXT NOT NULL,
	created_at  TEXT NOT NULL
)`

const createUnitsDocumentIndex = `
CREATE INDEX IF NOT EXISTS idx_units_document_id ON units(document_id)`

// CreateSchema creates the units table and its index. All DDL runs in one
// transaction: schema creation succeeds or fails together.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := tx.Exec(createUnitsTable); err != nil {
		return fmt.Errorf("failed to create units table: %w", err)
	}
	if _, err := tx.Exec(createUnitsDocumentIndex); err != nil {
		return fmt.Errorf("failed to create units index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
