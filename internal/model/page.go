package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PageVisit records one successfully fetched document. Visits feed the
// crawl-history database and the compare command; they are run
// bookkeeping, not output records, and never reach the record stream.
type PageVisit struct {
	// URL is the fetched document's absolute URL.
	URL string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentHash is the SHA-256 hex digest of the response body,
	// used for edition change detection between runs.
	ContentHash string

	// FetchedAt is when the document was retrieved.
	FetchedAt time.Time
}

// HashContent returns the SHA-256 hex digest of a response body.
// Empty bodies hash to the empty string so unchanged-vs-missing stays
// distinguishable in the history database.
func HashContent(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
