// Package database provides SQLite-based storage for crawl run history.
//
// Each crawl run is persisted with its headline counts, page visit log
// and emitted subject names. The history answers two operational
// questions: did the register change between runs (the compare
// command), and did previously working pages start failing (the visit
// log's status codes and content hashes).
//
// Design decision: The record stream itself is not stored; it goes to
// the output file. The database keeps only what run-to-run comparison
// needs, so it stays small across hundreds of runs.
package database
