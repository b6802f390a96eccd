package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildsight/buildsight/internal/classify"
	"github.com/buildsight/buildsight/internal/config"
	"github.com/buildsight/buildsight/internal/extract"
	"github.com/buildsight/buildsight/internal/graph"
	"github.com/buildsight/buildsight/internal/ingest"
)

var (
	graphTop  int
	graphName string
)

// graphCmd represents the graph command.
var graphCmd = &cobra.Command{
	Use:   "graph [tree]",
	Short: "Build the dependency graph of a build tree",
	Long: `Graph extracts every discovered file and merges the dependency edges
into one directed identifier graph, then prints the identifiers most
depended upon. Use --of to list the dependents of one identifier
instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().IntVar(&graphTop, "top", 10, "Number of most-depended identifiers to print")
	graphCmd.Flags().StringVar(&graphName, "of", "", "Print the dependents of this identifier")
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	discovery, err := ingest.NewFileDiscovery(rootDir, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to compile discovery patterns: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	registry := extract.NewRegistry(extract.Providers{})
	classifier := classify.NewClassifier()
	builder := graph.NewBuilder()

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v\n", file, err)
			continue
		}
		if cfg.Limits.MaxFileBytes > 0 && int64(len(content)) > cfg.Limits.MaxFileBytes {
			continue
		}

		repo := classify.RepoType(cfg.Repo.Type)
		if repo == "" {
			repo = classifier.Detect(file)
		}
		set, ok := registry.ForRepo(repo)
		if !ok {
			continue
		}

		res, err := set.Extract(ctx, file, content)
		if err != nil {
			continue
		}

		relPath, err := filepath.Rel(rootDir, file)
		if err != nil {
			relPath = file
		}
		if err := builder.AddResult(filepath.ToSlash(relPath), res); err != nil {
			return fmt.Errorf("failed to merge edges from %s: %w", file, err)
		}
	}

	if graphName != "" {
		dependents, err := builder.Dependents(graphName)
		if err != nil {
			return fmt.Errorf("failed to query dependents: %w", err)
		}
		if len(dependents) == 0 {
			fmt.Printf("Nothing depends on %s\n", graphName)
			return nil
		}
		fmt.Printf("Dependents of %s:\n", graphName)
		for _, d := range dependents {
			fmt.Printf("  %s\n", d)
		}
		return nil
	}

	vertices, edges, err := builder.Stats()
	if err != nil {
		return fmt.Errorf("failed to compute graph stats: %w", err)
	}
	fmt.Printf("Dependency graph: %d identifiers, %d edges\n", vertices, edges)

	top, err := builder.MostDepended(graphTop)
	if err != nil {
		return fmt.Errorf("failed to rank identifiers: %w", err)
	}
	if len(top) > 0 {
		fmt.Println("Most depended upon:")
		for _, entry := range top {
			fmt.Printf("  %4d  %s\n", entry.Degree, entry.Name)
		}
	}
	return nil
}
