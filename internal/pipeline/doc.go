// Package pipeline orchestrates a crawl run as a sequence of steps.
//
// A run is: crawl the register, gate the output, persist the run to
// the history database, render the summary. Each concern is one Step;
// the Pipeline executes them in order against a shared CrawlReport.
//
// Design decision: We model the run as explicit steps rather than one
// function because the command layer composes them differently: the
// history step is skipped when the database is disabled, the summary
// step when no summary path is given, and tests exercise steps in
// isolation.
package pipeline
