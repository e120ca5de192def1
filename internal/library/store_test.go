// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-scout/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.LibraryConfig{
		DBPath:     filepath.Join(t.TempDir(), "library", "papers.db"),
		MaxResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testPapers() []types.Paper {
	return []types.Paper{
		{
			ID:      "p1",
			Title:   "Residual Learning at Scale",
			Authors: []string{"A. One", "B. Two"},
			Year:    2021,
			Venue:   "ICML",
			URL:     "https://example.org/p1",
			Source:  "semantic_scholar",
		},
		{
			ID:      "p2",
			Title:   "Sparse Attention Revisited",
			Authors: []string{},
			Year:    2022,
			Venue:   "NeurIPS",
			Source:  "google_scholar",
		},
	}
}

func TestRecordRunAndSearch(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.RecordRun("attention", "semantic_scholar", testPapers())
	require.NoError(t, err)
	assert.Positive(t, runID)

	papers, err := store.Search(SearchOptions{})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, "Residual Learning at Scale", papers[0].Title)
	assert.Equal(t, []string{"A. One", "B. Two"}, papers[0].Authors)
	assert.Equal(t, 2021, papers[0].Year)
	assert.Equal(t, []string{}, papers[1].Authors, "empty author list round-trips as empty, not nil")
}

func TestSearchFilters(t *testing.T) {
	store := openTestStore(t)
	_, err := store.RecordRun("attention", "semantic_scholar", testPapers())
	require.NoError(t, err)

	byTitle, err := store.Search(SearchOptions{TitleLike: "residual"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "p1", byTitle[0].ID)

	byVenue, err := store.Search(SearchOptions{VenueLike: "NeurIPS"})
	require.NoError(t, err)
	require.Len(t, byVenue, 1)
	assert.Equal(t, "p2", byVenue[0].ID)

	byYear, err := store.Search(SearchOptions{Year: 2021})
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, "p1", byYear[0].ID)

	none, err := store.Search(SearchOptions{TitleLike: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchNewestRunFirst(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordRun("first", "semantic_scholar", []types.Paper{
		{Title: "Older Paper", Authors: []string{}, Year: 2020, Venue: "ICML"},
	})
	require.NoError(t, err)
	_, err = store.RecordRun("second", "semantic_scholar", []types.Paper{
		{Title: "Newer Paper", Authors: []string{}, Year: 2023, Venue: "ICML"},
	})
	require.NoError(t, err)

	papers, err := store.Search(SearchOptions{})
	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "Newer Paper", papers[0].Title)
	assert.Equal(t, "Older Paper", papers[1].Title)
}

func TestSearchLimit(t *testing.T) {
	store := openTestStore(t)
	_, err := store.RecordRun("attention", "semantic_scholar", testPapers())
	require.NoError(t, err)

	papers, err := store.Search(SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "papers.db")
	store, err := Open(types.LibraryConfig{DBPath: path})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.RecordRun("t", "semantic_scholar", nil)
	require.NoError(t, err)
}

func TestRecordRunEmptyPapers(t *testing.T) {
	store := openTestStore(t)
	runID, err := store.RecordRun("empty", "google_scholar", nil)
	require.NoError(t, err)
	assert.Positive(t, runID)

	papers, err := store.Search(SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, papers)
}
