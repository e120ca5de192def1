// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/internal/httputil"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// scholarAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var scholarAPIBase = "https://serpapi.com/search.json"

// yearPattern matches the first plausible 4-digit publication year in free
// text.
var yearPattern = regexp.MustCompile(`(19\d{2}|20\d{2})`)

// ScholarBackend queries Google Scholar through SerpAPI, paging by start
// index. The API key is required. Year bounds are pushed server-side via
// as_ylo/as_yhi; the filter stage re-applies them regardless.
type ScholarBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ScholarBackend) Name() string { return "google_scholar" }

// Search pages through organic results until the target count is reached or
// a page comes back empty. The start index advances by the number of items
// actually returned; Scholar pages are typically 10 results.
func (b *ScholarBackend) Search(ctx context.Context, query Query, cfg types.DiscoveryConfig) ([]types.Paper, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required for the google_scholar backend")
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = 100
	}

	var papers []types.Paper
	start := 0
	for len(papers) < limit {
		params := url.Values{
			"engine":  {"google_scholar"},
			"q":       {query.Topic},
			"api_key": {cfg.APIKey},
			"start":   {strconv.Itoa(start)},
		}
		if query.Years.Start != 0 {
			params.Set("as_ylo", strconv.Itoa(query.Years.Start))
		}
		if query.Years.End != 0 {
			params.Set("as_yhi", strconv.Itoa(query.Years.End))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, scholarAPIBase+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", cfg.UserAgent)

		resp, err := httputil.DoWithRetry(ctx, b.Client, req, cfg.RateLimitBackoff())
		if err != nil {
			return nil, fmt.Errorf("SerpAPI request: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("SerpAPI returned HTTP %d", resp.StatusCode)
		}

		var page scholarResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing SerpAPI response: %w", err)
		}

		if len(page.OrganicResults) == 0 {
			return papers, nil
		}

		for _, item := range page.OrganicResults {
			papers = append(papers, parseScholarResult(item))
			if len(papers) >= limit {
				return papers, nil
			}
		}

		start += len(page.OrganicResults)
		if cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return papers, ctx.Err()
			case <-time.After(cfg.PageDelay):
			}
		}
	}
	return papers, nil
}

// parseScholarResult maps one Scholar result into the canonical record.
// Scholar metadata is patchy, so authors, venue, and year fall back to
// parsing the free-text publication summary. The heuristics are best-effort:
// a hyphen inside a venue name ("IEEE S&P - Oakland") will split wrong.
func parseScholarResult(item scholarResult) types.Paper {
	summary := strings.TrimSpace(item.PublicationInfo.Summary)

	year := extractYear(summary)
	if year == 0 {
		year = extractYear(item.Snippet)
	}

	return types.Paper{
		Title:   strings.TrimSpace(item.Title),
		Authors: extractScholarAuthors(item),
		Year:    year,
		Venue:   extractScholarVenue(summary),
		URL:     item.Link,
		PDFURL:  extractScholarPDFURL(item.Resources),
		Snippet: item.Snippet,
		Source:  "google_scholar",
	}
}

// extractScholarAuthors prefers the structured author list; otherwise it
// parses the summary form "A. One, B. Two - Venue, Year - host", taking the
// text before the first hyphen and splitting on commas.
func extractScholarAuthors(item scholarResult) []string {
	names := []string{}
	for _, a := range item.PublicationInfo.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}

	left, _, found := strings.Cut(item.PublicationInfo.Summary, "-")
	if !found {
		return names
	}
	for _, part := range strings.Split(left, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// extractScholarVenue takes the second dash-delimited summary segment, which
// commonly reads "Authors - Venue, Year - Host". With fewer than two
// segments the raw summary is the best guess available.
func extractScholarVenue(summary string) string {
	if summary == "" {
		return ""
	}
	var parts []string
	for _, p := range strings.Split(summary, "-") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return parts[1]
	}
	return summary
}

// extractYear returns the first 19xx/20xx token in text, or 0.
func extractYear(text string) int {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

// extractScholarPDFURL picks a resource whose label mentions "pdf" or whose
// link ends in ".pdf".
func extractScholarPDFURL(resources []scholarResource) string {
	for _, r := range resources {
		if r.Link == "" {
			continue
		}
		if strings.Contains(strings.ToLower(r.Title), "pdf") ||
			strings.HasSuffix(strings.ToLower(r.Link), ".pdf") {
			return r.Link
		}
	}
	return ""
}

// SerpAPI JSON structures (Google Scholar engine).
type scholarResponse struct {
	OrganicResults []scholarResult `json:"organic_results"`
}

type scholarResult struct {
	Title           string            `json:"title"`
	Link            string            `json:"link"`
	Snippet         string            `json:"snippet"`
	PublicationInfo scholarPubInfo    `json:"publication_info"`
	Resources       []scholarResource `json:"resources"`
}

type scholarPubInfo struct {
	Summary string          `json:"summary"`
	Authors []scholarAuthor `json:"authors"`
}

type scholarAuthor struct {
	Name string `json:"name"`
}

type scholarResource struct {
	Title      string `json:"title"`
	FileFormat string `json:"file_format"`
	Link       string `json:"link"`
}
