package model

import "time"

// SubjectKind classifies the kind of person a Subject record describes.
// The register only lists sitting members, but the downstream schema
// shares the person table with other sources, so the kind travels with
// the record.
type SubjectKind string

// Subject kinds understood by the downstream transform.
const (
	// SubjectKindPolitician is the kind for members of Parliament.
	SubjectKindPolitician SubjectKind = "politician"
)

// Subject is a person whose declared financial interests are published
// in the register. One Subject is emitted per subject page, before any
// of the page's Interest records.
//
// Ownership is transient: the crawler owns a Subject only until it has
// been handed to the output sink.
type Subject struct {
	// FullName is the person's name as scraped from the page heading.
	// Always non-empty; a page without a parseable name emits nothing.
	FullName string `json:"full_name"`

	// Kind classifies the person for the downstream schema.
	Kind SubjectKind `json:"type"`

	// ParliamentID is an opaque identifier derived from the canonical
	// URL path segment of the subject page. It is the stable key the
	// downstream transform uses to deduplicate subjects across runs.
	ParliamentID string `json:"parliament_id"`

	// Constituency is the constituency-style affiliation from the page
	// subtitle, when present.
	Constituency string `json:"constituency,omitempty"`

	// IsCurrentMP records that the subject appeared in the current
	// edition of the register.
	IsCurrentMP bool `json:"is_current_mp"`

	// SourceURL is the subject page this record was scraped from.
	SourceURL string `json:"source_url"`

	// ScrapeDate is when the page was fetched.
	ScrapeDate time.Time `json:"scrape_date"`
}

// Valid reports whether the subject satisfies the downstream quality
// gate's per-record requirements: non-empty name and identifier.
func (s *Subject) Valid() bool {
	return s.FullName != "" && s.ParliamentID != ""
}
