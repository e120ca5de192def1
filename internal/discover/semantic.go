// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/paper-scout/internal/httputil"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,authors,year,venue,publicationTypes,url,externalIds,openAccessPdf"

// semanticPageSize caps the per-page limit the API accepts.
const semanticPageSize = 100

// SemanticScholarBackend queries the Semantic Scholar Graph API, paging by
// offset. The API key is optional; without one the public rate limits apply
// and 429 recovery does the waiting.
type SemanticScholarBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

// Search pages through results until the target count is reached or the
// backend returns an empty page. The offset advances by the number of items
// actually returned, so a short page before exhaustion stays correct.
func (b *SemanticScholarBackend) Search(ctx context.Context, query Query, cfg types.DiscoveryConfig) ([]types.Paper, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 200
	}
	pageSize := limit
	if pageSize > semanticPageSize {
		pageSize = semanticPageSize
	}

	var papers []types.Paper
	offset := 0
	for len(papers) < limit {
		params := url.Values{
			"query":  {query.Topic},
			"limit":  {fmt.Sprintf("%d", pageSize)},
			"offset": {fmt.Sprintf("%d", offset)},
			"fields": {semanticFields},
		}
		reqURL := semanticAPIBase + "?" + params.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", cfg.UserAgent)
		if cfg.APIKey != "" {
			req.Header.Set("x-api-key", cfg.APIKey)
		}

		resp, err := httputil.DoWithRetry(ctx, b.Client, req, cfg.RateLimitBackoff())
		if err != nil {
			return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
		}

		var page semanticResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
		}

		// An empty page signals backend exhaustion.
		if len(page.Data) == 0 {
			return papers, nil
		}

		for _, item := range page.Data {
			papers = append(papers, parseSemanticPaper(item))
			if len(papers) >= limit {
				return papers, nil
			}
		}

		offset += len(page.Data)
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

// parseSemanticPaper maps one API item into the canonical record. Missing
// fields stay absent; an empty title is kept and filtered later.
func parseSemanticPaper(item semanticPaper) types.Paper {
	authors := []string{}
	for _, a := range item.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	var pubTypes []string
	for _, t := range item.PublicationTypes {
		if t != "" {
			pubTypes = append(pubTypes, t)
		}
	}

	year := 0
	if item.Year >= 1900 && item.Year <= 2099 {
		year = item.Year
	}

	p := types.Paper{
		ID:               item.PaperID,
		Title:            strings.TrimSpace(item.Title),
		Authors:          authors,
		Year:             year,
		Venue:            item.Venue,
		URL:              item.URL,
		DOI:              item.ExternalIDs.DOI,
		PublicationTypes: pubTypes,
		Source:           "semantic_scholar",
	}
	if item.OpenAccessPDF != nil {
		p.PDFURL = item.OpenAccessPDF.URL
	}
	return p
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID          string              `json:"paperId"`
	Title            string              `json:"title"`
	Year             int                 `json:"year"`
	Venue            string              `json:"venue"`
	PublicationTypes []string            `json:"publicationTypes"`
	URL              string              `json:"url"`
	Authors          []semanticAuthor    `json:"authors"`
	ExternalIDs      semanticExternalIDs `json:"externalIds"`
	OpenAccessPDF    *semanticOpenAccess `json:"openAccessPdf"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}

type semanticOpenAccess struct {
	URL string `json:"url"`
}
