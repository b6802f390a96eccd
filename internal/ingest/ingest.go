package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/buildsight/buildsight/internal/classify"
	"github.com/buildsight/buildsight/internal/extract"
)

// Ingestor runs one file through the full chain: classify → dispatch →
// extract → aggregate. It is the error boundary of the pipeline: whatever
// fails inside, the caller receives exactly one emission per file and no
// panic escapes.
type Ingestor struct {
	classifier *classify.Classifier
	registry   *extract.Registry

	// maxFileBytes bounds the input size per file; 0 disables the check.
	maxFileBytes int64
}

// NewIngestor creates an ingestor around a prebuilt extractor registry.
func NewIngestor(registry *extract.Registry, classifier *classify.Classifier, maxFileBytes int64) *Ingestor {
	return &Ingestor{
		classifier:   classifier,
		registry:     registry,
		maxFileBytes: maxFileBytes,
	}
}

// IngestFile converts one file into its single emission. Classification
// ambiguity falls back to plain-text extraction; a supported repository
// with an unrecognized suffix, an extractor failure, or a panic all become
// error emissions. The returned Extraction is always usable.
func (in *Ingestor) IngestFile(ctx context.Context, req extract.ParseRequest) (out extract.Extraction) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error parsing %s: panic: %v\n", req.Path, r)
			out = errorExtraction(fmt.Sprintf("panic during extraction: %v", r))
		}
	}()

	// The size bound applies before any extraction, including the
	// plain-text fallback: oversized content never passes through.
	if in.maxFileBytes > 0 && int64(len(req.Content)) > in.maxFileBytes {
		log.Printf("Skipping %s: %d bytes exceeds limit of %d\n", req.Path, len(req.Content), in.maxFileBytes)
		return errorExtraction(fmt.Sprintf("file exceeds size limit of %d bytes", in.maxFileBytes))
	}

	repo := classify.RepoType(req.RepoType)
	if repo == "" {
		repo = in.classifier.Detect(req.Path)
	}

	set, ok := in.registry.ForRepo(repo)
	if !ok {
		// No structural grammar for this repository: fall back to basic
		// text extraction so the file still contributes content.
		return extract.Extraction{
			Content:  string(req.Content),
			Metadata: extract.Metadata{FileType: "text", Relationships: []any{}},
		}
	}

	res, err := set.Extract(ctx, req.Path, req.Content)
	if err != nil {
		log.Printf("Error parsing %s: %v\n", req.Path, err)
		return errorExtraction(err.Error())
	}

	return extract.Render(res)
}

// errorExtraction is the single terminal emission for a failed file: empty
// content plus an error description in metadata. Relationships is populated
// so the record never serializes the list as null.
func errorExtraction(msg string) extract.Extraction {
	return extract.Extraction{
		Content:  "",
		Metadata: extract.Metadata{Error: msg, Relationships: []any{}},
	}
}
