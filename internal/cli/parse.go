package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildsight/buildsight/internal/classify"
	"github.com/buildsight/buildsight/internal/extract"
	"github.com/buildsight/buildsight/internal/ingest"
)

var (
	parseJSON bool
	parseRepo string
)

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract one file and print its canonical text",
	Long: `Parse runs a single file through the extraction pipeline and prints
the canonical text form. With --json the metadata record is printed
instead: structures, dependency edges, and any extraction error.

The repository is detected from the file path; pass --repo to override
when the path does not mention the tree it came from.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the metadata record as JSON")
	parseCmd.Flags().StringVar(&parseRepo, "repo", "", "Repository type (home-assistant, buildroot)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	registry := extract.NewRegistry(extract.Providers{})
	ingestor := ingest.NewIngestor(registry, classify.NewClassifier(), 0)

	emission := ingestor.IngestFile(context.Background(), extract.ParseRequest{
		Path:     path,
		Content:  content,
		RepoType: parseRepo,
	})

	if parseJSON {
		out, err := json.MarshalIndent(emission.Metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if emission.Metadata.Error != "" {
		return fmt.Errorf("extraction failed: %s", emission.Metadata.Error)
	}

	fmt.Println(emission.Content)
	return nil
}
