package crawler

import "errors"

// Crawl errors usable with errors.Is.
//
// Design decision: only ErrSourceUnreachable is fatal to a run. All
// in-document irregularities (a page without a name, an entry without a
// body) degrade to partial output, because disclosure HTML is loosely
// structured and partial extraction is the expected mode of operation.
var (
	// ErrMissingIdentity is returned by the subject-page parser when no
	// person name can be found. The spider logs the page and continues;
	// nothing is emitted for it.
	ErrMissingIdentity = errors.New("subject page has no parseable name")

	// ErrSourceUnreachable is returned when a crawl could not fetch a
	// single document. This is the only condition that fails the run.
	ErrSourceUnreachable = errors.New("source site unreachable: no page could be fetched")

	// ErrNoSeeds is returned when a crawl is started without seed URLs.
	ErrNoSeeds = errors.New("no seed URLs provided")
)
