package embed

import (
	"context"
	"fmt"
)

// Provider converts text into vector representations. The real embedding
// pipeline lives outside this repository; buildsight only depends on this
// contract so the vector index can be fed by whatever provider the host
// wires in.
type Provider interface {
	// Embed converts a slice of texts into their vectors, one per input.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of the produced vectors.
	Dimensions() int

	// Close releases any resources held by the provider.
	Close() error
}

// NewProvider creates an embedding provider by name. "mock" returns the
// deterministic hash-based provider; anything else is an error so a typo in
// the config fails loudly rather than silently skipping the vector index.
func NewProvider(name string) (Provider, error) {
	switch name {
	case "mock":
		return newMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", name)
	}
}
