package quality

import (
	"fmt"

	"github.com/registerwatch/registerscan/internal/model"
)

// Default thresholds. A register edition lists several hundred members,
// each with multiple entries; counts below these indicate a broken
// crawl rather than a small register.
const (
	DefaultMinSubjects  = 10
	DefaultMinInterests = 50
)

// Thresholds are the minimum record counts a run must produce to pass.
type Thresholds struct {
	// MinSubjects is the minimum number of subject records.
	MinSubjects int

	// MinInterests is the minimum number of interest records.
	MinInterests int
}

// DefaultThresholds returns the standard gate thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSubjects:  DefaultMinSubjects,
		MinInterests: DefaultMinInterests,
	}
}

// CheckCounts validates headline record counts against the thresholds.
// Returns one violation message per failed check, or nil when the
// counts pass. Used by the crawl pipeline, which counts records as they
// stream out and never holds them all in memory.
func CheckCounts(subjects, interests int, th Thresholds) []string {
	var violations []string
	if subjects < th.MinSubjects {
		violations = append(violations,
			fmt.Sprintf("subject count %d below minimum %d", subjects, th.MinSubjects))
	}
	if interests < th.MinInterests {
		violations = append(violations,
			fmt.Sprintf("interest count %d below minimum %d", interests, th.MinInterests))
	}
	return violations
}

// CheckRecords validates a decoded record stream: headline counts plus
// per-record required fields. Used by the standalone check command,
// which re-validates an output file after the fact.
//
// Violations carry the record's position in the stream so a failing
// record can be located in a file of thousands.
func CheckRecords(records []model.Record, th Thresholds) []string {
	var violations []string
	subjects, interests := 0, 0

	for i, record := range records {
		switch r := record.(type) {
		case *model.Subject:
			subjects++
			if r.FullName == "" {
				violations = append(violations,
					fmt.Sprintf("record %d: subject missing full_name", i))
			}
			if r.ParliamentID == "" {
				violations = append(violations,
					fmt.Sprintf("record %d: subject missing parliament_id", i))
			}
		case *model.Interest:
			interests++
			if r.PersonName == "" {
				violations = append(violations,
					fmt.Sprintf("record %d: interest missing person_name", i))
			}
			if r.Type == "" {
				violations = append(violations,
					fmt.Sprintf("record %d: interest missing type", i))
			}
		default:
			violations = append(violations,
				fmt.Sprintf("record %d: unknown record kind %q", i, record.RecordKind()))
		}
	}

	return append(violations, CheckCounts(subjects, interests, th)...)
}
