// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-query/internal/arxiv"
	"github.com/pdiddy/arxiv-query/internal/download"
)

var downloadCmd = &cobra.Command{
	Use:   "download [query-files...]",
	Short: "Download PDFs for saved search results",
	Long: `Download reads one or more saved query files and fetches the PDF for each
result into the papers directory, writing a YAML metadata sidecar next to
each file. Papers already on disk are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("papers-dir", "", "base directory for papers (overrides config)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := downloadConfig()
	if dir, _ := cmd.Flags().GetString("papers-dir"); dir != "" {
		cfg.PapersDir = dir
	}

	client := &http.Client{Timeout: cfg.Timeout}

	var failures int
	for _, path := range args {
		qf, err := arxiv.ReadQueryFile(path)
		if err != nil {
			return err
		}
		result := download.DownloadBatch(cmd.Context(), client, qf.Results, cfg, os.Stderr)
		if result.HasFailures() {
			failures += result.Failed
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d downloads failed", failures)
	}
	return nil
}
