package storage

import (
	"time"

	"github.com/google/uuid"
)

// Unit is one parsed file's stored form: its canonical text plus the
// serialized metadata record, keyed by a stable document identifier.
type Unit struct {
	DocumentID uuid.UUID
	UnitID     string
	FilePath   string
	FileType   string
	Content    string
	Metadata   string // JSON-encoded metadata record
	CreatedAt  time.Time
}

// StorageResult reports, per document, whether all of its batches stored
// and how many units actually made it into the store.
type StorageResult struct {
	DocumentID uuid.UUID
	NumUnits   int
	Success    bool
}
