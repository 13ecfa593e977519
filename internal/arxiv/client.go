// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv ties the query builder and the feed parser together: one
// Search call renders the request URL, performs a single GET, and parses
// the Atom body into Paper records.
package arxiv

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/arxiv-query/internal/feed"
	"github.com/pdiddy/arxiv-query/internal/httputil"
	"github.com/pdiddy/arxiv-query/internal/query"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

// Client performs queries against the arXiv API. A Client is safe for
// concurrent use; each Search carries its own state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        types.ClientConfig
}

// NewClient builds a client from configuration. An empty BaseURL selects
// the public endpoint; tests point it at an httptest server.
func NewClient(cfg types.ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = query.DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		cfg:        cfg,
	}
}

// Search executes one query: render URL, perform the GET, parse the body.
// Contract violations in the request surface before any network I/O.
// Transport failures and non-200 responses propagate without retry beyond
// the transport layer's 429 backoff.
func (c *Client) Search(ctx context.Context, req *query.Request) ([]types.Paper, error) {
	enc, err := req.Encode()
	if err != nil {
		return nil, err
	}
	url := c.baseURL + "?" + enc

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, httpReq, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	papers, err := feed.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return papers, nil
}
