// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-query/internal/arxiv"
	"github.com/pdiddy/arxiv-query/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Archive papers locally and search the archive",
	Long: `Store keeps a SQLite archive of papers under the archive directory. With
--ingest it adds the results of a saved query file; otherwise it searches
the archive by full text, category, or author.`,
	RunE: runStore,
}

func init() {
	storeCmd.Flags().String("archive-dir", "", "base directory for the archive (overrides config)")
	storeCmd.Flags().String("ingest", "", "query file whose results to archive")
	storeCmd.Flags().String("query", "", "full-text search over titles and abstracts")
	storeCmd.Flags().String("category", "", "filter by subject category code")
	storeCmd.Flags().String("paper-author", "", "filter by author name substring")
	storeCmd.Flags().Int("max-results", 0, "maximum number of query results")
	storeCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg := archiveConfig()
	if dir, _ := flags.GetString("archive-dir"); dir != "" {
		cfg.ArchiveDir = dir
	}

	s, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if path, _ := flags.GetString("ingest"); path != "" {
		summary, err := s.IngestQueryFile(cmd.Context(), path, os.Stderr)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d papers failed to archive", summary.Failed)
		}
		return nil
	}

	opts := store.QueryOptions{}
	opts.Query, _ = flags.GetString("query")
	opts.Category, _ = flags.GetString("category")
	opts.Author, _ = flags.GetString("paper-author")
	opts.MaxResults, _ = flags.GetInt("max-results")

	if opts.IsEmpty() {
		return fmt.Errorf("nothing to do: provide --ingest or a search filter")
	}

	papers, err := s.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON, _ := flags.GetBool("json"); asJSON {
		return arxiv.FormatJSON(papers, os.Stdout)
	}
	arxiv.FormatTable(papers, os.Stdout)
	return nil
}
