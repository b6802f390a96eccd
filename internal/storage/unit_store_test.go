package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for SQLiteStore:
// - Opening a store creates the schema
// - UpsertUnits stores a batch and CountUnits sees it
// - Re-upserting the same unit IDs replaces rows instead of duplicating
// - An empty batch is a no-op

func newMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_UpsertAndCount(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(t)
	ctx := context.Background()

	docID := uuid.New()
	units := []Unit{
		{
			DocumentID: docID,
			UnitID:     "unit-package/libfoo/libfoo.mk",
			FilePath:   "package/libfoo/libfoo.mk",
			FileType:   "makefile",
			Content:    "[package_version] LIBFOO",
			Metadata:   `{"file_type":"makefile"}`,
			CreatedAt:  time.Now(),
		},
		{
			DocumentID: docID,
			UnitID:     "unit-scripts/build.sh",
			FilePath:   "scripts/build.sh",
			FileType:   "shell",
			Content:    "[variable] FOO",
			Metadata:   `{"file_type":"shell"}`,
		},
	}

	require.NoError(t, store.UpsertUnits(ctx, units))

	count, err := store.CountUnits(ctx, docID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(t)
	ctx := context.Background()

	docID := uuid.New()
	unit := Unit{
		DocumentID: docID,
		UnitID:     "unit-scripts/build.sh",
		FilePath:   "scripts/build.sh",
		FileType:   "shell",
		Content:    "first",
	}

	require.NoError(t, store.UpsertUnits(ctx, []Unit{unit}))

	unit.Content = "second"
	require.NoError(t, store.UpsertUnits(ctx, []Unit{unit}))

	count, err := store.CountUnits(ctx, docID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_EmptyBatch(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(t)
	assert.NoError(t, store.UpsertUnits(context.Background(), nil))
}
