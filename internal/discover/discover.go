// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover queries bibliographic search backends and narrows the
// results to a venue allowlist and year window.
// Implements: docs/ARCHITECTURE § Discovery.
package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// Query holds the discovery parameters. Years is forwarded to backends that
// support server-side bounds; the filter stage applies it either way.
type Query struct {
	Topic string
	Years YearRange
}

// Backend retrieves raw results from one paginated search API and maps them
// into canonical Paper records. Each backend (Semantic Scholar, Google
// Scholar via SerpAPI) implements this interface per the Strategy pattern.
//
// Search pages through the API until the endpoint is exhausted or cfg.Limit
// raw results have been fetched. Rate-limit responses are retried in place;
// any other non-success status aborts with an error.
type Backend interface {
	Name() string
	Search(ctx context.Context, query Query, cfg types.DiscoveryConfig) ([]types.Paper, error)
}

// FilterStats counts the outcome of one filter pass. Individual rejections
// are silent; only these totals are reported.
type FilterStats struct {
	Input         int
	Accepted      int
	NoTitle       int
	OutsideYears  int
	VenueMismatch int
	Duplicates    int
}

// String renders the counts for the terminal summary.
func (s FilterStats) String() string {
	return fmt.Sprintf("%d raw, %d accepted (%d untitled, %d outside years, %d venue mismatch, %d duplicates)",
		s.Input, s.Accepted, s.NoTitle, s.OutsideYears, s.VenueMismatch, s.Duplicates)
}

type dedupKey struct {
	title string
	year  int
}

// Filter applies the acceptance predicates to papers in arrival order and
// removes records repeating an earlier (normalized title, year) key. The
// dedup set is local to the call, so pipeline runs in one process stay
// independent.
//
// Per record, in order: reject empty titles, reject years outside the window
// (an unknown year never passes, even unbounded), reject venues that miss the
// allowlist, then reject duplicates. Relative order of accepted records is
// preserved.
func Filter(papers []types.Paper, window YearRange, allowlist []string) ([]types.Paper, FilterStats) {
	stats := FilterStats{Input: len(papers)}
	seen := make(map[dedupKey]struct{})

	accepted := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if strings.TrimSpace(p.Title) == "" {
			stats.NoTitle++
			continue
		}
		if !window.Contains(p.Year) {
			stats.OutsideYears++
			continue
		}
		if !VenueMatches(p.Venue, allowlist) {
			stats.VenueMismatch++
			continue
		}
		key := dedupKey{title: NormalizeVenue(p.Title), year: p.Year}
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, p)
	}
	stats.Accepted = len(accepted)
	return accepted, stats
}
