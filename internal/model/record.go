package model

import (
	"bytes"
	"encoding/json"
)

// Record is one element of the output stream: either a *Subject or an
// *Interest.
//
// Design decision: we keep Record a small interface over the two concrete
// types rather than a bag-of-fields struct because every field's
// presence or absence is part of the type. The wire format stays a plain
// heterogeneous JSON array; consumers discriminate by field shape, which
// is what the downstream gate already does.
type Record interface {
	// RecordKind returns "subject" or "interest". Used for counting
	// and logging, not serialized.
	RecordKind() string
}

// RecordKind implements Record.
func (s *Subject) RecordKind() string { return "subject" }

// RecordKind implements Record.
func (i *Interest) RecordKind() string { return "interest" }

// DecodeRecords parses a serialized record stream back into typed
// records. It accepts both the JSON-array form produced by the JSON
// writer and the newline-delimited form produced by the NDJSON writer.
// Objects that carry neither a subject nor an interest shape are
// skipped, matching the tolerance of the downstream gate.
func DecodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '[' {
		return decodeNDJSON(trimmed)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw))
	for _, msg := range raw {
		record, err := decodeRecord(msg)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}

// decodeNDJSON parses one record per non-empty line.
func decodeNDJSON(data []byte) ([]Record, error) {
	var records []Record
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		record, err := decodeRecord(line)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// decodeRecord parses one serialized record, discriminating by field
// shape. Returns nil for objects of unknown shape.
func decodeRecord(msg []byte) (Record, error) {
	// Probe the shape before committing to a type.
	var probe struct {
		FullName   string `json:"full_name"`
		PersonName string `json:"person_name"`
		Type       string `json:"type"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil {
		return nil, err
	}

	switch {
	case probe.FullName != "":
		var s Subject
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case probe.PersonName != "" || probe.Type != "":
		var i Interest
		if err := json.Unmarshal(msg, &i); err != nil {
			return nil, err
		}
		return &i, nil
	default:
		return nil, nil
	}
}
