package embed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

const mockDimensions = 384

// mockProvider generates deterministic embeddings by expanding a content
// hash. Identical text always maps to the identical vector, which is what
// tests and offline indexing runs need.
type mockProvider struct {
	dimensions int
}

func newMockProvider() Provider {
	return &mockProvider{dimensions: mockDimensions}
}

// Embed hashes each text and stretches the digest over the vector,
// normalizing each value into [-1, 1].
func (p *mockProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	for i, text := range texts {
		digest := sha256.Sum256([]byte(text))

		vec := make([]float32, p.dimensions)
		for j := range vec {
			offset := (j * 4) % (len(digest) - 3)
			raw := binary.BigEndian.Uint32(digest[offset : offset+4])
			vec[j] = (float32(raw)/float32(1<<32))*2 - 1
		}
		vectors[i] = vec
	}

	return vectors, nil
}

func (p *mockProvider) Dimensions() int {
	return p.dimensions
}

func (p *mockProvider) Close() error {
	return nil
}
