package extract

import (
	"testing"
	"time"
)

// date is a test helper for expected values.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestExtractDates covers both pattern families.
func TestExtractDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		registered *time.Time
		start      *time.Time
	}{
		{
			name:       "registered on",
			text:       "Registered on 3 March 2022",
			registered: ptr(date(2022, time.March, 3)),
		},
		{
			name:       "registered without on",
			text:       "Registered 15 June 2021.",
			registered: ptr(date(2021, time.June, 15)),
		},
		{
			name:  "received on",
			text:  "Hospitality received on 2 September 2022.",
			start: ptr(date(2022, time.September, 2)),
		},
		{
			name:  "received without on",
			text:  "Gift received 28 February 2023.",
			start: ptr(date(2023, time.February, 28)),
		},
		{
			name:  "from",
			text:  "Salary from 1 April 2020 until further notice.",
			start: ptr(date(2020, time.April, 1)),
		},
		{
			name:       "both families in one body",
			text:       "Payment received on 5 May 2022. Registered on 12 May 2022.",
			registered: ptr(date(2022, time.May, 12)),
			start:      ptr(date(2022, time.May, 5)),
		},
		{
			name: "no dates",
			text: "Director of Company X.",
		},
		{
			name: "invalid calendar date discarded",
			text: "Registered on 31 February 2022.",
		},
		{
			name:       "lowercase month normalized",
			text:       "Registered on 3 march 2022",
			registered: ptr(date(2022, time.March, 3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractDates(tt.text)
			checkDate(t, "registered", got.Registered, tt.registered)
			checkDate(t, "start", got.Start, tt.start)
		})
	}
}

// TestExtractDatesFirstMatchWins pins the per-family ordering: the
// earlier pattern in the list takes the date even when a later pattern
// would also match.
func TestExtractDatesFirstMatchWins(t *testing.T) {
	t.Parallel()

	// "received on" (rule 1) should win over "from" (rule 3).
	got := ExtractDates("Payment received on 1 July 2022 arising from 1 January 2020.")
	checkDate(t, "start", got.Start, ptr(date(2022, time.July, 1)))
}

func ptr(t time.Time) *time.Time { return &t }

func checkDate(t *testing.T, field string, got, want *time.Time) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s: expected no date, got %s", field, got.Format("2006-01-02"))
	case want != nil && got == nil:
		t.Errorf("%s: expected %s, got none", field, want.Format("2006-01-02"))
	case want != nil && !got.Equal(*want):
		t.Errorf("%s: expected %s, got %s", field, want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}
