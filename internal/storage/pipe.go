package storage

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// DefaultBatchSize is the number of units accumulated before a flush.
const DefaultBatchSize = 128

// Pipe is the storage stage of the ingestion pipeline. It accepts parsed
// units keyed by document identifier, flushes them to the store in batches,
// and reports per-document outcomes. A failed batch is logged and the stage
// continues: the counts it reports only cover batches that succeeded.
type Pipe struct {
	store     UnitStore
	batchSize int
}

// NewPipe creates a storage pipe around a unit store. A non-positive batch
// size falls back to DefaultBatchSize.
func NewPipe(store UnitStore, batchSize int) *Pipe {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipe{store: store, batchSize: batchSize}
}

// Run stores all units and returns one StorageResult per document, in
// first-appearance order. Success means every batch containing one of the
// document's units was stored.
func (p *Pipe) Run(ctx context.Context, units []Unit) []StorageResult {
	counts := make(map[uuid.UUID]int)
	failed := make(map[uuid.UUID]bool)
	var order []uuid.UUID

	batch := make([]Unit, 0, p.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := p.store.UpsertUnits(ctx, batch); err != nil {
			log.Printf("Failed to store unit batch: %v\n", err)
			for _, u := range batch {
				failed[u.DocumentID] = true
			}
		} else {
			for _, u := range batch {
				counts[u.DocumentID]++
			}
		}
		batch = batch[:0]
	}

	for _, u := range units {
		if _, seen := counts[u.DocumentID]; !seen {
			counts[u.DocumentID] = 0
			order = append(order, u.DocumentID)
		}
		batch = append(batch, u)
		if len(batch) >= p.batchSize {
			flush()
		}
	}
	flush()

	results := make([]StorageResult, 0, len(order))
	for _, docID := range order {
		count := counts[docID]
		success := !failed[docID]
		if success {
			log.Printf("Successful ingestion for document %s, with unit count: %d\n", docID, count)
		}
		results = append(results, StorageResult{
			DocumentID: docID,
			NumUnits:   count,
			Success:    success,
		})
	}
	return results
}
