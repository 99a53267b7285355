// Package model defines the typed records produced by a register crawl.
//
// Two record kinds flow to the output sink: Subject (a person listed in
// the register) and Interest (one declared financial interest belonging
// to a Subject). Both are created and emitted within the scope of a
// single subject-page parse and are never mutated after emission.
//
// The downstream pipeline discriminates records by field shape rather
// than an envelope, so the JSON tags here are part of the external
// contract: a record with "full_name" is a subject, a record with
// "person_name" and "type" is an interest.
package model
