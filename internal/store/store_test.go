// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-query/internal/arxiv"
	"github.com/pdiddy/arxiv-query/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.ArchiveConfig{ArchiveDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePapers() []types.Paper {
	return []types.Paper{
		{
			ID:              "http://arxiv.org/abs/1706.03762v7",
			Title:           "Attention Is All You Need",
			Authors:         []string{"Ashish Vaswani", "Noam Shazeer"},
			Abstract:        "The dominant sequence transduction models are based on recurrent networks.",
			Published:       "2017-06-12T17:57:34Z",
			PrimaryCategory: "cs.CL",
			Categories:      []string{"cs.CL", "cs.LG"},
		},
		{
			ID:              "http://arxiv.org/abs/2301.00001v1",
			Title:           "Graph Neural Networks for Routing",
			Authors:         []string{"Jane Example"},
			Abstract:        "We study routing with graph neural networks.",
			Published:       "2023-01-01T00:00:00Z",
			PrimaryCategory: "cs.NI",
			Categories:      []string{"cs.NI", "cs.LG"},
		},
	}
}

func TestIngest(t *testing.T) {
	s := testStore(t)

	var out strings.Builder
	summary, err := s.Ingest(context.Background(), samplePapers(), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Total())
	assert.Contains(t, out.String(), "added   1706.03762v7")
}

func TestIngestUpdatesExisting(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	papers := samplePapers()
	_, err := s.Ingest(ctx, papers, io.Discard)
	require.NoError(t, err)

	papers[0].Title = "Attention Is All You Need (v8)"
	summary, err := s.Ingest(ctx, papers[:1], io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 1, summary.Updated)

	got, err := s.Retrieve(ctx, QueryOptions{Author: "Vaswani"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Attention Is All You Need (v8)", got[0].Title)
}

func TestIngestRejectsMissingID(t *testing.T) {
	s := testStore(t)

	summary, err := s.Ingest(context.Background(), []types.Paper{{Title: "No ID"}}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Added)
}

func TestRetrieveFullText(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), io.Discard)
	require.NoError(t, err)

	got, err := s.Retrieve(ctx, QueryOptions{Query: "transduction"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Attention Is All You Need", got[0].Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, got[0].Authors)
	assert.Equal(t, []string{"cs.CL", "cs.LG"}, got[0].Categories)
}

func TestRetrieveByCategory(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), io.Discard)
	require.NoError(t, err)

	// Primary category match.
	got, err := s.Retrieve(ctx, QueryOptions{Category: "cs.NI"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Graph Neural Networks for Routing", got[0].Title)

	// Secondary category matches both papers; newest first.
	got, err = s.Retrieve(ctx, QueryOptions{Category: "cs.LG"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Graph Neural Networks for Routing", got[0].Title)
}

func TestRetrieveByAuthorSubstring(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), io.Discard)
	require.NoError(t, err)

	got, err := s.Retrieve(ctx, QueryOptions{Author: "Shazeer"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Attention Is All You Need", got[0].Title)
}

func TestRetrieveCombinedFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), io.Discard)
	require.NoError(t, err)

	got, err := s.Retrieve(ctx, QueryOptions{Query: "networks", Category: "cs.NI"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Graph Neural Networks for Routing", got[0].Title)
}

func TestRetrieveMaxResults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, samplePapers(), io.Discard)
	require.NoError(t, err)

	got, err := s.Retrieve(ctx, QueryOptions{Category: "cs.LG", MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestIngestQueryFile(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	err := arxiv.WriteQueryFile(path, arxiv.QueryParams{Title: "attention"}, "", samplePapers())
	require.NoError(t, err)

	summary, err := s.IngestQueryFile(context.Background(), path, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
}

func TestNewStoreCreatesIndexDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.ArchiveConfig{ArchiveDir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "index", "arxiv.db"))
	assert.NoError(t, err)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Query: "x"}.IsEmpty())
	assert.False(t, QueryOptions{Category: "cs.AI"}.IsEmpty())
	assert.False(t, QueryOptions{Author: "a"}.IsEmpty())
}
