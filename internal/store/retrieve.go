// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-query/pkg/types"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over titles and abstracts.
	Query string

	// Category filters by subject code, matching the primary category or
	// any member of the category list.
	Category string

	// Author filters by substring match on author names.
	Author string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.Author == ""
}

// Retrieve queries the archive with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by publication date, newest first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Paper, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.entry_url, p.title, p.authors, p.abstract, p.published, p.updated,
				p.doi, p.comments, p.journal_ref, p.pdf_url, p.primary_category, p.categories
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.entry_url, p.title, p.authors, p.abstract, p.published, p.updated,
				p.doi, p.comments, p.journal_ref, p.pdf_url, p.primary_category, p.categories
			FROM papers p
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND (p.primary_category = ? OR EXISTS (SELECT 1 FROM json_each(p.categories) WHERE value = ?))`)
		args = append(args, opts.Category, opts.Category)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.authors) WHERE value LIKE ?)`)
		args = append(args, "%"+opts.Author+"%")
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.published DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var (
			p              types.Paper
			authorsJSON    sql.NullString
			commentsJSON   sql.NullString
			categoriesJSON sql.NullString
		)

		if err := rows.Scan(
			&p.ID, &p.Title, &authorsJSON, &p.Abstract, &p.Published, &p.Updated,
			&p.DOI, &commentsJSON, &p.JournalRef, &p.PDFURL, &p.PrimaryCategory,
			&categoriesJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
		}
		if commentsJSON.Valid {
			json.Unmarshal([]byte(commentsJSON.String), &p.Comments)
		}
		if categoriesJSON.Valid {
			json.Unmarshal([]byte(categoriesJSON.String), &p.Categories)
		}

		papers = append(papers, p)
	}

	return papers, rows.Err()
}
