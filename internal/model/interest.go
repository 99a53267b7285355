package model

import "time"

// InterestType is the closed classification of a declared interest.
// Classification is total: every entry maps to exactly one of the seven
// values below, falling back to InterestMiscellaneous.
type InterestType string

// The seven interest types recognized by the downstream schema.
const (
	InterestEmployment    InterestType = "employment"
	InterestDirectorship  InterestType = "directorship"
	InterestShareholding  InterestType = "shareholding"
	InterestDonation      InterestType = "donation"
	InterestGift          InterestType = "gift"
	InterestProperty      InterestType = "property"
	InterestMiscellaneous InterestType = "miscellaneous"
)

// InterestTypes lists all valid interest types.
// Useful for validation and for aggregating counts by type.
var InterestTypes = []InterestType{
	InterestEmployment,
	InterestDirectorship,
	InterestShareholding,
	InterestDonation,
	InterestGift,
	InterestProperty,
	InterestMiscellaneous,
}

// Interest is one declared financial interest belonging to a Subject.
//
// The link to the Subject is name-based: PersonName equals the FullName
// of the Subject emitted from the same page parse. Resolving that
// reference into a durable foreign key is a downstream responsibility.
//
// Every field other than Type is optional. Disclosure text is free-form
// and partial extraction is expected; a missing amount or date is an
// absent field, never an error.
type Interest struct {
	// PersonName is the name-based cross-reference to the owning Subject.
	PersonName string `json:"person_name"`

	// Type is the classified interest type. Always set.
	Type InterestType `json:"type"`

	// Description is the raw, newline-joined paragraph text of the entry.
	// Never empty: entries with empty aggregated text are not emitted.
	Description string `json:"description"`

	// Amount is the one-time monetary amount found in the description,
	// if any.
	Amount *float64 `json:"amount,omitempty"`

	// Currency is the ISO code for Amount. Set to "GBP" when an amount
	// was parsed without an explicit currency; empty when no amount was
	// found at all.
	Currency string `json:"currency,omitempty"`

	// RegisteredDate is when the interest was registered, if stated.
	RegisteredDate *time.Time `json:"registered_date,omitempty"`

	// StartDate is when the interest was received or began, if stated.
	StartDate *time.Time `json:"start_date,omitempty"`

	// SourceDocument labels the register edition the entry came from.
	SourceDocument string `json:"source_document"`

	// SourceURL is the subject page this record was scraped from.
	SourceURL string `json:"source_url"`

	// ScrapeDate is when the page was fetched.
	ScrapeDate time.Time `json:"scrape_date"`
}

// Valid reports whether the interest satisfies the downstream quality
// gate's per-record requirements: non-empty cross-reference and type.
func (i *Interest) Valid() bool {
	return i.PersonName != "" && i.Type != ""
}
