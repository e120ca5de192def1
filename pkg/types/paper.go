// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is the canonical record every backend normalizes into. It is
// constructed once per raw result and never mutated afterwards.
type Paper struct {
	// ID is the backend's persistent identifier, when one exists.
	ID string `json:"paper_id,omitempty" yaml:"paper_id,omitempty"`

	// Title is the paper title, trimmed. A record with an empty title is
	// still constructed and rejected at the filter stage.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in source order. Never nil; empty slice
	// when the backend supplies no usable names.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, or 0 when unknown. Normalizers only
	// set 4-digit years in the 19xx/20xx range.
	Year int `json:"year" yaml:"year"`

	// Venue is the publication venue as supplied by the backend, free-form.
	Venue string `json:"venue" yaml:"venue"`

	// URL is the landing-page link.
	URL string `json:"url" yaml:"url"`

	// PDFURL is a direct link to an openly available document, when known.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// DOI, when the backend exposes one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PublicationTypes holds backend-specific free-form tags.
	PublicationTypes []string `json:"publication_types,omitempty" yaml:"publication_types,omitempty"`

	// Snippet is a short result summary, backend-specific.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Source identifies the backend that produced the record.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}
