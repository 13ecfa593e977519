// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-query/internal/query"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All You Need</title>
    <author><name>Ashish Vaswani</name></author>
  </entry>
</feed>
`

func testClient(baseURL string) *Client {
	return NewClient(types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "arxiv-query-test/0.1",
		},
		BaseURL: baseURL,
	})
}

func TestSearch(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	req := query.NewRequest(query.Title("attention")).MaxResults(5)
	papers, err := testClient(server.URL).Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(papers) != 1 || papers[0].Title != "Attention Is All You Need" {
		t.Errorf("papers = %+v", papers)
	}
	if !strings.Contains(gotQuery, "search_query=") || !strings.Contains(gotQuery, "max_results=5") {
		t.Errorf("query sent = %q", gotQuery)
	}
	if gotAgent != "arxiv-query-test/0.1" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	req := query.NewRequest(query.Title("attention"))
	_, err := testClient(server.URL).Search(context.Background(), req)
	if err == nil {
		t.Fatal("Search: expected error on HTTP 404")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestSearchContractErrorBeforeNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	req := query.NewRequest(query.Expr{})
	_, err := testClient(server.URL).Search(context.Background(), req)
	if !errors.Is(err, query.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0", requests)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<feed><entry>"))
	}))
	defer server.Close()

	req := query.NewRequest(query.Title("attention"))
	_, err := testClient(server.URL).Search(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "parsing arXiv response") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	c := NewClient(types.ClientConfig{})
	if c.baseURL != query.DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, query.DefaultBaseURL)
	}
}
