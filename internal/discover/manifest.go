// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest records what a discovery run did: the query, the window, the
// filter counts, and where the outputs landed. It is written next to the
// outputs so a result set stays interpretable after the fact.
type Manifest struct {
	Query   ManifestQuery   `yaml:"query"`
	Summary ManifestSummary `yaml:"summary"`
	Outputs []string        `yaml:"outputs"`
}

// ManifestQuery stores the run parameters in a serializable form.
type ManifestQuery struct {
	Topic   string `yaml:"topic"`
	Years   string `yaml:"years,omitempty"`
	Backend string `yaml:"backend"`
	Limit   int    `yaml:"limit"`
}

// ManifestSummary stores the filter counts and a timestamp.
type ManifestSummary struct {
	Raw           int       `yaml:"raw"`
	Accepted      int       `yaml:"accepted"`
	NoTitle       int       `yaml:"no_title"`
	OutsideYears  int       `yaml:"outside_years"`
	VenueMismatch int       `yaml:"venue_mismatch"`
	Duplicates    int       `yaml:"duplicates"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteManifest saves a run manifest to a YAML file.
func WriteManifest(path string, query Query, backend string, limit int, stats FilterStats, outputs []string) error {
	m := Manifest{
		Query: ManifestQuery{
			Topic:   query.Topic,
			Years:   query.Years.String(),
			Backend: backend,
			Limit:   limit,
		},
		Summary: ManifestSummary{
			Raw:           stats.Input,
			Accepted:      stats.Accepted,
			NoTitle:       stats.NoTitle,
			OutsideYears:  stats.OutsideYears,
			VenueMismatch: stats.VenueMismatch,
			Duplicates:    stats.Duplicates,
			Timestamp:     time.Now(),
		},
		Outputs: outputs,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling run manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a previously written run manifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing run manifest: %w", err)
	}
	return &m, nil
}
