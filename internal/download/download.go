// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches paper PDFs and writes metadata sidecars. The
// PDF URL comes from the parsed feed entry, so no identifier resolution
// is needed.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-query/internal/httputil"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of papers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadPaper fetches one paper's PDF to papersDir/raw/<slug>.pdf and
// writes a YAML metadata sidecar. An existing PDF skips the download; the
// skipped return value reports that case.
func DownloadPaper(ctx context.Context, client *http.Client, p types.Paper, cfg types.DownloadConfig, w io.Writer) (skipped bool, err error) {
	slug := p.Slug()
	if slug == "" {
		return false, fmt.Errorf("paper %q has no identifier", p.Title)
	}
	if p.PDFURL == "" {
		return false, fmt.Errorf("paper %s has no pdf link", slug)
	}

	pdfPath := filepath.Join(cfg.PapersDir, rawDir, slug+".pdf")
	metaPath := filepath.Join(cfg.PapersDir, metadataDir, slug+".yaml")

	if _, err := os.Stat(pdfPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", slug)
		return true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.PapersDir, rawDir),
		filepath.Join(cfg.PapersDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", slug)

	if err := downloadFile(ctx, client, p.PDFURL, pdfPath, cfg); err != nil {
		return false, fmt.Errorf("downloading %s: %w", slug, err)
	}

	if err := writeMetadata(p, metaPath); err != nil {
		return false, fmt.Errorf("writing metadata for %s: %w", slug, err)
	}
	return false, nil
}

// DownloadBatch processes multiple papers, printing per-item status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive downloads.
func DownloadBatch(ctx context.Context, client *http.Client, papers []types.Paper, cfg types.DownloadConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, p := range papers {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}
		wasSkipped, err := DownloadPaper(ctx, client, p, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", p.Slug(), err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// downloadFile fetches url to destPath using a temporary file, renaming
// on success so a partial download never lands at the final path.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.DownloadConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata saves the paper record next to the PDF as YAML.
func writeMetadata(p types.Paper, path string) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadMetadata loads a previously written metadata sidecar.
func ReadMetadata(path string) (*types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var p types.Paper
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return &p, nil
}
