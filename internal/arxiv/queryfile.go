// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-query/internal/query"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// The researcher can save a search to a file and reload or archive it
// later without re-querying the API.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores field predicates and auxiliary parameters in a
// serializable form. Every non-empty field predicate is ANDed into the
// expression; this covers the conjunctive searches the CLI issues, while
// library callers with Or/AndNot/Group trees compose them in code.
type QueryParams struct {
	Title      string `yaml:"title,omitempty"`
	Author     string `yaml:"author,omitempty"`
	Abstract   string `yaml:"abstract,omitempty"`
	Category   string `yaml:"category,omitempty"`
	All        string `yaml:"all,omitempty"`
	ID         string `yaml:"id,omitempty"`
	DateFrom   string `yaml:"date_from,omitempty"`
	DateTo     string `yaml:"date_to,omitempty"`
	Start      int    `yaml:"start,omitempty"`
	MaxResults int    `yaml:"max_results,omitempty"`
	SortBy     string `yaml:"sort_by,omitempty"`
	SortOrder  string `yaml:"sort_order,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	URL       string    `yaml:"url"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ToRequest converts stored parameters into a Request.
func (p QueryParams) ToRequest() (*query.Request, error) {
	var terms []query.Expr
	if p.Title != "" {
		terms = append(terms, query.Title(p.Title))
	}
	if p.Author != "" {
		terms = append(terms, query.Author(p.Author))
	}
	if p.Abstract != "" {
		terms = append(terms, query.Abstract(p.Abstract))
	}
	if p.Category != "" {
		terms = append(terms, query.SubjectCategory(types.Category(p.Category)))
	}
	if p.All != "" {
		terms = append(terms, query.All(p.All))
	}
	if p.ID != "" {
		terms = append(terms, query.ID(p.ID))
	}

	var req *query.Request
	switch len(terms) {
	case 0:
		if p.DateFrom == "" && p.DateTo == "" {
			return nil, query.ErrEmptyQuery
		}
		req = query.NewRequest(query.Expr{})
	case 1:
		req = query.NewRequest(terms[0])
	default:
		req = query.NewRequest(query.And(terms[0], terms[1:]...))
	}

	if p.DateFrom != "" || p.DateTo != "" {
		req.SubmittedBetween(p.DateFrom, p.DateTo)
	}
	if p.Start > 0 {
		req.Start(p.Start)
	}
	if p.MaxResults > 0 {
		req.MaxResults(p.MaxResults)
	}
	if p.SortBy != "" {
		req.SortBy(query.SortBy(p.SortBy))
	}
	if p.SortOrder != "" {
		req.SortOrder(query.SortOrder(p.SortOrder))
	}
	return req, nil
}

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path string, params QueryParams, url string, papers []types.Paper) error {
	qf := QueryFile{
		Query:   params,
		Results: papers,
		Summary: QuerySummary{
			Total:     len(papers),
			URL:       url,
			Timestamp: time.Now(),
		},
	}
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
