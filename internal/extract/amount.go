package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Money is a parsed one-time monetary value.
type Money struct {
	Amount   float64
	Currency string
}

// defaultCurrency is applied whenever an amount is parsed. The register
// corpus is GBP-only; entries never carry another currency symbol.
const defaultCurrency = "GBP"

// amountRule is one ordered pattern for recognizing a monetary value.
// whole captures the integer part (thousands separators allowed),
// fraction the optional decimal part.
type amountRule struct {
	pattern *regexp.Regexp
}

// amountRules is tried in order and the first successful parse wins.
// The symbol form is preferred over the word-suffixed form because the
// symbol binds tighter to the number ("£1,500 over two years" vs
// "1,500 pounds").
var amountRules = []amountRule{
	// £1,234.56
	{pattern: regexp.MustCompile(`£([\d,]+)(?:\.(\d+))?`)},
	// 1,234 pounds
	{pattern: regexp.MustCompile(`([\d,]+)\s+pounds`)},
}

// Amount extracts a monetary amount from entry text. The second return
// is false when no rule matched or the matched digits failed to parse;
// a malformed number is a miss, not an error.
func Amount(text string) (Money, bool) {
	for _, rule := range amountRules {
		match := rule.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		whole := strings.ReplaceAll(match[1], ",", "")
		value, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			continue
		}

		if len(match) > 2 && match[2] != "" {
			fraction, err := strconv.ParseFloat("0."+match[2], 64)
			if err != nil {
				continue
			}
			value += fraction
		}

		return Money{Amount: value, Currency: defaultCurrency}, true
	}

	return Money{}, false
}
