// Package log provides logging for crawl runs, built on top of the
// standard slog package.
//
// Crawled page content leaks into log attributes: entry bodies, error
// text quoting response snippets, long register URLs. The
// CompactHandler keeps each log record on one line and bounds its
// size, so a malformed page cannot flood the run log.
//
// # Usage
//
//	// Create a compact logger
//	logger := log.NewCompactLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Warn("skipping subject page",
//	    "url", pageURL,
//	    "error", err, // multi-line error text is flattened
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
