package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSeeds is returned when no seed URL is configured.
	ErrNoSeeds = errors.New("no seed URL specified: provide a seed argument or configure one")

	// ErrNoAllowedDomains is returned when the domain allow-list is
	// empty. An empty allow-list would follow no index links at all.
	ErrNoAllowedDomains = errors.New("no allowed domains specified")

	// ErrInvalidRunDate is returned when the run date does not parse as
	// YYYY-MM-DD.
	ErrInvalidRunDate = errors.New("invalid run date: must be YYYY-MM-DD")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not
	// positive. Zero workers would fetch no subject pages.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidThresholds is returned when a quality-gate threshold is
	// negative.
	ErrInvalidThresholds = errors.New("invalid quality thresholds: must be non-negative")
)
