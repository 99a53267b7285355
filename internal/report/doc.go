// Package report provides record stream output and run summary
// generation.
//
// This package contains two kinds of writers:
//   - record sinks (JSONWriter, NDJSONWriter) that receive the crawl's
//     record stream one record at a time and stream it to an output
//   - the summary writer, which renders a finished run's statistics as
//     Markdown for documentation and sharing
//
// Design decision: We separate output writing from the record and
// report data structures (which are in the model package) to follow
// the single responsibility principle. This allows adding new output
// formats without modifying the core data structures.
//
// Record sinks implement the Sink interface and stream incrementally:
// a crawl that fails midway leaves the records emitted so far already
// written, rather than buffered and lost.
package report
