package storage

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/buildsight/buildsight/internal/embed"
)

// vectorCollection is the chromem-go collection holding canonical text.
const vectorCollection = "build-units"

// VectorIndex stores the canonical text of units in a chromem-go collection
// so downstream retrieval can run similarity search over them. Units with
// empty content (error emissions) are skipped: they carry nothing worth
// indexing.
type VectorIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	provider   embed.Provider
}

// NewVectorIndex opens or creates a persistent vector index at path, using
// the given provider to embed content.
func NewVectorIndex(path string, provider embed.Provider) (*VectorIndex, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := provider.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		return vectors[0], nil
	}

	collection, err := db.GetOrCreateCollection(vectorCollection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", vectorCollection, err)
	}

	return &VectorIndex{db: db, collection: collection, provider: provider}, nil
}

// Add indexes the canonical text of each unit. Returns the number of units
// actually indexed.
func (v *VectorIndex) Add(ctx context.Context, units []Unit) (int, error) {
	indexed := 0
	for _, u := range units {
		if u.Content == "" {
			continue
		}

		doc := chromem.Document{
			ID:      u.UnitID,
			Content: u.Content,
			Metadata: map[string]string{
				"document_id": u.DocumentID.String(),
				"file_path":   u.FilePath,
				"file_type":   u.FileType,
			},
		}
		if err := v.collection.AddDocument(ctx, doc); err != nil {
			return indexed, fmt.Errorf("failed to index unit %s: %w", u.UnitID, err)
		}
		indexed++
	}
	return indexed, nil
}

// Close releases the embedding provider. chromem-go persists on write, so
// there is nothing else to flush.
func (v *VectorIndex) Close() error {
	return v.provider.Close()
}
