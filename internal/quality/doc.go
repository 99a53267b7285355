// Package quality implements the post-crawl quality gate.
//
// The gate answers one question: is this run's output plausible enough
// to hand to downstream consumers? A register edition always lists
// hundreds of members, so a run that produced a handful of records
// indicates a broken crawl or a changed page structure, not a small
// register.
//
// Design decision: The gate reports violations as plain strings rather
// than a structured error type because its consumers only ever log
// them and fail the run. Each violation is independently actionable;
// the gate never stops at the first one.
package quality
