// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the discovery stage.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the maximum number of raw results to fetch before
	// filtering (default 200).
	Limit int `json:"limit" yaml:"limit"`

	// PageDelay is the sleep between successful page fetches (default 1s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// APIKey authenticates against the selected backend. Semantic Scholar
	// sends it as an x-api-key header and treats it as optional; SerpAPI
	// sends it as a query parameter and requires it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// RateLimitBackoff returns the sleep applied when a page fetch is rate
// limited: several times the inter-page delay, never less than two seconds.
func (c DiscoveryConfig) RateLimitBackoff() time.Duration {
	backoff := 4 * c.PageDelay
	if backoff < 2*time.Second {
		backoff = 2 * time.Second
	}
	return backoff
}

// FetchConfig holds settings for the PDF fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}

// LibraryConfig holds settings for the paper catalog.
type LibraryConfig struct {
	// DBPath is the SQLite database file (default "library/papers.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
