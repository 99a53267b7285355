// Package extract implements the heuristic field extraction applied to
// the free-text body of a register entry: interest-type classification,
// monetary amount parsing, and date parsing.
//
// Disclosure text is loosely structured natural language, so every
// extractor here degrades gracefully: a pattern that does not match, or
// matches text that fails to parse, simply leaves the field unset.
// Classification is the one total operation; it always yields exactly
// one of the seven interest types.
//
// Design decision: each heuristic is an ordered, data-driven rule list
// rather than inline branching. Rule priority is load-bearing (a
// category can match several keywords, and the first match wins), so
// the order must be explicit and auditable, and each rule independently
// testable.
package extract
