// Package crawler discovers subject pages in the published register and
// turns each one into typed records.
//
// # Architecture
//
//   - LinkFilter: stateless URL admission (domain allow-list + path pattern)
//   - index/subject parsers: pure functions from a fetched document to
//     discovered URLs or records
//   - Segment: partitions a subject page's heading/paragraph sequence
//     into category-tagged entries
//   - Spider: owns the frontier and visited set, runs bounded concurrent
//     subject fetches, and streams records to the sink
//
// Parsing and extraction are pure, CPU-only operations over an
// already-fetched document; the only suspension point is the HTTP fetch.
// Each subject-page parse is self-contained, so pages may be processed
// in any order and a cancelled crawl leaves the already-emitted records
// valid.
//
// # Politeness
//
// The spider spaces requests with a configurable delay and caps both
// concurrency and total pages per run.
package crawler
