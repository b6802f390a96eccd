package ingest

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/buildsight/buildsight/internal/extract"
	"github.com/buildsight/buildsight/internal/storage"
)

// Stats tracks what one processing run did.
type Stats struct {
	FilesProcessed int
	ErrorEmissions int
	Documents      int
	UnitsStored    int
	UnitsIndexed   int
	ProcessingTime time.Duration
}

// Options tunes per-run processor behavior.
type Options struct {
	// RepoType, when non-empty, overrides path-based classification for
	// every file in the run.
	RepoType string

	// ParseTimeout bounds a single file's extraction; 0 disables it.
	ParseTimeout time.Duration
}

// Processor drives the read → ingest → store pipeline over a file list.
// Each file is parsed independently; no state is shared across files.
type Processor struct {
	rootDir  string
	ingestor *Ingestor
	pipe     *storage.Pipe
	vector   *storage.VectorIndex // nil when vector indexing is disabled
	progress ProgressReporter
	opts     Options
}

// NewProcessor creates a processor. The vector index is optional; pass nil
// to store canonical text in SQLite only.
func NewProcessor(rootDir string, ingestor *Ingestor, pipe *storage.Pipe, vector *storage.VectorIndex, progress ProgressReporter, opts Options) *Processor {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Processor{
		rootDir:  rootDir,
		ingestor: ingestor,
		pipe:     pipe,
		vector:   vector,
		progress: progress,
		opts:     opts,
	}
}

// ProcessFiles ingests every file and hands the emissions to the storage
// stage. A malformed or unsupported file contributes no indexed content but
// never aborts the batch.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) (*Stats, error) {
	startTime := time.Now()
	stats := &Stats{}

	if len(files) == 0 {
		return stats, nil
	}

	p.progress.OnFileProcessingStart(len(files))

	units := make([]storage.Unit, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v\n", file, err)
			p.progress.OnFileProcessed(file)
			continue
		}

		relPath, err := filepath.Rel(p.rootDir, file)
		if err != nil {
			relPath = file
		}
		relPath = filepath.ToSlash(relPath)

		emission := p.ingestOne(ctx, file, content)
		if emission.Metadata.Error != "" {
			stats.ErrorEmissions++
		}

		metaJSON, err := json.Marshal(emission.Metadata)
		if err != nil {
			log.Printf("Warning: failed to encode metadata for %s: %v\n", relPath, err)
			p.progress.OnFileProcessed(file)
			continue
		}

		units = append(units, storage.Unit{
			DocumentID: documentID(relPath),
			UnitID:     "unit-" + relPath,
			FilePath:   relPath,
			FileType:   emission.Metadata.FileType,
			Content:    emission.Content,
			Metadata:   string(metaJSON),
			CreatedAt:  time.Now(),
		})

		stats.FilesProcessed++
		p.progress.OnFileProcessed(file)
	}

	p.progress.OnStorageStart(len(units))
	results := p.pipe.Run(ctx, units)
	stats.Documents = len(results)
	for _, r := range results {
		stats.UnitsStored += r.NumUnits
	}

	if p.vector != nil {
		indexed, err := p.vector.Add(ctx, units)
		if err != nil {
			log.Printf("Warning: vector indexing stopped early: %v\n", err)
		}
		stats.UnitsIndexed = indexed
	}

	p.progress.OnStorageComplete(stats.Documents, stats.UnitsStored)
	stats.ProcessingTime = time.Since(startTime)
	return stats, nil
}

// ingestOne runs the error boundary for a single file under the configured
// per-file deadline.
func (p *Processor) ingestOne(ctx context.Context, file string, content []byte) extract.Extraction {
	fileCtx := ctx
	if p.opts.ParseTimeout > 0 {
		var cancel context.CancelFunc
		fileCtx, cancel = context.WithTimeout(ctx, p.opts.ParseTimeout)
		defer cancel()
	}

	return p.ingestor.IngestFile(fileCtx, extract.ParseRequest{
		Path:     file,
		Content:  content,
		RepoType: p.opts.RepoType,
	})
}

// documentID derives a stable identifier from the file's tree-relative
// path, so re-indexing a tree upserts rather than duplicates.
func documentID(relPath string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("buildsight://"+relPath))
}
