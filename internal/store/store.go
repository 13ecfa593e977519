// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fetched Paper records in a local SQLite archive
// with a full-text index over titles and abstracts. The archive is a
// library of papers the researcher chose to keep; nothing on the query
// path consults it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-query/internal/arxiv"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "arxiv.db"
)

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at
// archiveDir/index/arxiv.db, creating the schema if needed.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ArchiveDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			slug TEXT NOT NULL UNIQUE,
			entry_url TEXT,
			title TEXT,
			authors TEXT,
			abstract TEXT,
			published TEXT,
			updated TEXT,
			doi TEXT,
			comments TEXT,
			journal_ref TEXT,
			pdf_url TEXT,
			primary_category TEXT,
			categories TEXT,
			added_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_primary_category ON papers(primary_category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an archive run.
type IngestSummary struct {
	Added   int
	Updated int
	Failed  int
}

// Total returns the number of papers processed.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated + s.Failed
}

// Ingest upserts the given papers into the archive.
func (s *Store) Ingest(ctx context.Context, papers []types.Paper, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, p := range papers {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		slug := p.Slug()
		if slug == "" {
			fmt.Fprintf(w, "failed  (missing id): %q\n", p.Title)
			summary.Failed++
			continue
		}

		updated, err := s.upsertPaper(ctx, slug, p)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", slug, err)
			summary.Failed++
			continue
		}
		if updated {
			fmt.Fprintf(w, "updated %s\n", slug)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s\n", slug)
			summary.Added++
		}
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d, failed: %d\n",
		summary.Added, summary.Updated, summary.Failed)
	return summary, nil
}

// IngestQueryFile reads a saved query file and archives its results.
func (s *Store) IngestQueryFile(ctx context.Context, path string, w io.Writer) (IngestSummary, error) {
	qf, err := arxiv.ReadQueryFile(path)
	if err != nil {
		return IngestSummary{}, err
	}
	return s.Ingest(ctx, qf.Results, w)
}

func (s *Store) upsertPaper(ctx context.Context, slug string, p types.Paper) (updated bool, err error) {
	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM papers WHERE slug = ?`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking paper: %w", err)
	}

	authorsJSON, _ := json.Marshal(p.Authors)
	commentsJSON, _ := json.Marshal(p.Comments)
	categoriesJSON, _ := json.Marshal(p.Categories)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO papers (slug, entry_url, title, authors, abstract, published, updated,
			doi, comments, journal_ref, pdf_url, primary_category, categories, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			entry_url=excluded.entry_url, title=excluded.title, authors=excluded.authors,
			abstract=excluded.abstract, published=excluded.published, updated=excluded.updated,
			doi=excluded.doi, comments=excluded.comments, journal_ref=excluded.journal_ref,
			pdf_url=excluded.pdf_url, primary_category=excluded.primary_category,
			categories=excluded.categories`,
		slug, p.ID, p.Title, string(authorsJSON), p.Abstract, p.Published, p.Updated,
		p.DOI, string(commentsJSON), p.JournalRef, p.PDFURL, p.PrimaryCategory,
		string(categoriesJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("upserting paper: %w", err)
	}
	return exists > 0, nil
}
