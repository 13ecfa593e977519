// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-query/internal/arxiv"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the arXiv API for papers",
	Long: `Search builds a boolean query from the given field predicates, sends it to
the arXiv API, and prints the matching papers. All given predicates are
combined with AND; use the library directly for OR/ANDNOT trees.

The submitted-date window takes YYYYMMDDHHMM bounds, e.g.
--from 202412010000 --to 202412312359.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("title", "", "match words in the title")
	searchCmd.Flags().String("author", "", "match author names")
	searchCmd.Flags().String("abstract", "", "match words in the abstract")
	searchCmd.Flags().String("category", "", "match a subject category code (e.g. cs.AI)")
	searchCmd.Flags().String("all", "", "match across all fields")
	searchCmd.Flags().String("id", "", "match an arXiv identifier")
	searchCmd.Flags().String("from", "", "submitted-date range start (YYYYMMDDHHMM)")
	searchCmd.Flags().String("to", "", "submitted-date range end (YYYYMMDDHHMM)")
	searchCmd.Flags().Int("start", 0, "zero-based result offset")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results to return")
	searchCmd.Flags().String("sort-by", "", "sort key: relevance, lastUpdatedDate, submittedDate")
	searchCmd.Flags().String("sort-order", "", "sort order: ascending, descending")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	params := arxiv.QueryParams{}
	params.Title, _ = flags.GetString("title")
	params.Author, _ = flags.GetString("author")
	params.Abstract, _ = flags.GetString("abstract")
	params.Category, _ = flags.GetString("category")
	params.All, _ = flags.GetString("all")
	params.ID, _ = flags.GetString("id")
	params.DateFrom, _ = flags.GetString("from")
	params.DateTo, _ = flags.GetString("to")
	params.Start, _ = flags.GetInt("start")
	params.MaxResults, _ = flags.GetInt("max-results")
	params.SortBy, _ = flags.GetString("sort-by")
	params.SortOrder, _ = flags.GetString("sort-order")

	req, err := params.ToRequest()
	if err != nil {
		return err
	}
	url, err := req.URL()
	if err != nil {
		return err
	}

	client := arxiv.NewClient(clientConfig())
	papers, err := client.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	if path, _ := flags.GetString("save"); path != "" {
		if err := arxiv.WriteQueryFile(path, params, url, papers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(papers), path)
	}

	if asJSON, _ := flags.GetBool("json"); asJSON {
		return arxiv.FormatJSON(papers, os.Stdout)
	}
	arxiv.FormatTable(papers, os.Stdout)
	return nil
}
