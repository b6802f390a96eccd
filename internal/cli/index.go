package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buildsight/buildsight/internal/classify"
	"github.com/buildsight/buildsight/internal/config"
	"github.com/buildsight/buildsight/internal/embed"
	"github.com/buildsight/buildsight/internal/extract"
	"github.com/buildsight/buildsight/internal/ingest"
	"github.com/buildsight/buildsight/internal/storage"
)

var quietFlag bool

// indexCmd represents the index command.
var indexCmd = &cobra.Command{
	Use:   "index [tree]",
	Short: "Index an embedded-OS build tree",
	Long: `Index walks a build tree, classifies each file by repository and
suffix, extracts its structures and dependency edges, and stores one unit
per file (canonical text plus metadata) in the unit database.

Examples:
  # Index the current directory
  buildsight index

  # Index a Buildroot tree without progress bars
  buildsight index --quiet ~/src/buildroot
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling indexing...")
		cancel()
	}()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(rootDir, ".buildsight"), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	store, err := storage.NewSQLiteStore(cfg.DatabasePath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open unit store: %w", err)
	}
	defer store.Close()

	var vector *storage.VectorIndex
	if cfg.Embedding.Provider != "" && cfg.Embedding.Provider != "none" {
		provider, err := embed.NewProvider(cfg.Embedding.Provider)
		if err != nil {
			return fmt.Errorf("failed to create embedding provider: %w", err)
		}
		vector, err = storage.NewVectorIndex(cfg.VectorPath(rootDir), provider)
		if err != nil {
			return fmt.Errorf("failed to open vector index: %w", err)
		}
		defer vector.Close()
	}

	progress := NewCLIProgressReporter(quietFlag)

	progress.OnDiscoveryStart()
	discovery, err := ingest.NewFileDiscovery(rootDir, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to compile discovery patterns: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}
	progress.OnDiscoveryComplete(len(files))

	registry := extract.NewRegistry(extract.Providers{})
	ingestor := ingest.NewIngestor(registry, classify.NewClassifier(), cfg.Limits.MaxFileBytes)
	pipe := storage.NewPipe(store, cfg.Storage.BatchSize)

	processor := ingest.NewProcessor(rootDir, ingestor, pipe, vector, progress, ingest.Options{
		RepoType:     cfg.Repo.Type,
		ParseTimeout: cfg.Limits.ParseTimeout,
	})

	stats, err := processor.ProcessFiles(ctx, files)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("indexing cancelled")
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Indexing complete: %d files, %d units stored, %d error emissions in %.2fs\n",
		stats.FilesProcessed, stats.UnitsStored, stats.ErrorEmissions,
		stats.ProcessingTime.Seconds())
	return nil
}

// resolveRoot turns the optional positional argument into an absolute tree
// root, defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve tree root: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
