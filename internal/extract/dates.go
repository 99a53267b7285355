package extract

import (
	"regexp"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dates holds the dates recognized in entry text. Either field may be
// nil; a date the text does not state is simply absent.
type Dates struct {
	// Registered is the date the interest was registered.
	Registered *time.Time

	// Start is the date the interest was received or began.
	Start *time.Time
}

// dateLayout is the register's textual date form: day, full month name,
// four-digit year, e.g. "3 March 2022".
const dateLayout = "2 January 2006"

// registeredRules and startRules are the two independent pattern
// families. Within a family the first match wins; the families never
// interact, so a body can yield one date of each kind.
//
// Known heuristic limit: if one body legitimately contains two dates of
// the same family, only the first-listed pattern's match is taken, and
// it may not be the one a human would pick.
var (
	registeredRules = []*regexp.Regexp{
		regexp.MustCompile(`Registered\s+on\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
		regexp.MustCompile(`Registered\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
	}

	startRules = []*regexp.Regexp{
		regexp.MustCompile(`received\s+on\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
		regexp.MustCompile(`received\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
		regexp.MustCompile(`from\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
	}
)

// monthCaser normalizes month-name capitalization ("march", "MARCH")
// before parsing, since the register's typography is inconsistent.
var monthCaser = cases.Title(language.BritishEnglish)

// ExtractDates scans entry text for registered and start dates. A
// pattern match whose captured text is not a valid calendar date is
// silently discarded and the next rule in the family is tried.
func ExtractDates(text string) Dates {
	return Dates{
		Registered: firstDate(registeredRules, text),
		Start:      firstDate(startRules, text),
	}
}

// firstDate returns the first rule match that parses as a real date.
func firstDate(rules []*regexp.Regexp, text string) *time.Time {
	for _, rule := range rules {
		match := rule.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		parsed, err := time.Parse(dateLayout, monthCaser.String(match[1]))
		if err != nil {
			continue
		}
		return &parsed
	}
	return nil
}
