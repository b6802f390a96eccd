package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Pipe:
// - Units flush in batches of the configured size
// - Results report one entry per document, in first-appearance order
// - Unit counts are per document, summed across batches
// - A failing batch marks its documents unsuccessful but the run continues
// - A non-positive batch size falls back to the default

// recordingStore captures batches and can fail selected flushes.
type recordingStore struct {
	batches  [][]Unit
	failNext map[int]bool // batch index -> fail
}

func (r *recordingStore) UpsertUnits(ctx context.Context, units []Unit) error {
	idx := len(r.batches)
	batch := make([]Unit, len(units))
	copy(batch, units)
	r.batches = append(r.batches, batch)
	if r.failNext[idx] {
		return errors.New("disk full")
	}
	return nil
}

func (r *recordingStore) Close() error { return nil }

func makeUnits(docID uuid.UUID, n int) []Unit {
	units := make([]Unit, 0, n)
	for i := 0; i < n; i++ {
		units = append(units, Unit{
			DocumentID: docID,
			UnitID:     uuid.NewString(),
			Content:    "content",
		})
	}
	return units
}

func TestPipe_BatchesAndCounts(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	pipe := NewPipe(store, 2)

	docA := uuid.New()
	docB := uuid.New()

	units := append(makeUnits(docA, 3), makeUnits(docB, 2)...)
	results := pipe.Run(context.Background(), units)

	// 5 units at batch size 2: three flushes.
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 2)
	assert.Len(t, store.batches[1], 2)
	assert.Len(t, store.batches[2], 1)

	require.Len(t, results, 2)
	assert.Equal(t, docA, results[0].DocumentID)
	assert.Equal(t, 3, results[0].NumUnits)
	assert.True(t, results[0].Success)
	assert.Equal(t, docB, results[1].DocumentID)
	assert.Equal(t, 2, results[1].NumUnits)
	assert.True(t, results[1].Success)
}

func TestPipe_FailedBatchContinues(t *testing.T) {
	t.Parallel()

	store := &recordingStore{failNext: map[int]bool{0: true}}
	pipe := NewPipe(store, 2)

	docA := uuid.New()
	docB := uuid.New()

	units := append(makeUnits(docA, 2), makeUnits(docB, 2)...)
	results := pipe.Run(context.Background(), units)

	// Both batches were attempted despite the first failing.
	require.Len(t, store.batches, 2)

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Equal(t, 0, results[0].NumUnits)
	assert.True(t, results[1].Success)
	assert.Equal(t, 2, results[1].NumUnits)
}

func TestPipe_DefaultBatchSize(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	pipe := NewPipe(store, 0)

	units := makeUnits(uuid.New(), DefaultBatchSize+1)
	pipe.Run(context.Background(), units)

	require.Len(t, store.batches, 2)
	assert.Len(t, store.batches[0], DefaultBatchSize)
	assert.Len(t, store.batches[1], 1)
}

func TestPipe_EmptyInput(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	pipe := NewPipe(store, 2)

	results := pipe.Run(context.Background(), nil)
	assert.Empty(t, results)
	assert.Empty(t, store.batches)
}
