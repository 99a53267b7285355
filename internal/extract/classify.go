package extract

import (
	"strings"

	"github.com/registerwatch/registerscan/internal/model"
)

// classifyRule maps category-heading keywords to an interest type.
// Any keyword matching (case-insensitive substring) selects the type.
type classifyRule struct {
	keywords []string
	result   model.InterestType
}

// classifyRules is checked in order and the first match wins. The order
// is a documented policy, not incidental: category headings can contain
// several keywords ("Gifts and shareholdings held jointly"), and
// reorderings change the outcome.
//
// The visit→gift mapping mirrors the register's own treatment of
// overseas visits as benefits in kind. It is a policy choice pending
// domain-expert confirmation, preserved here verbatim.
var classifyRules = []classifyRule{
	{keywords: []string{"employment", "earnings"}, result: model.InterestEmployment},
	{keywords: []string{"donation", "funding"}, result: model.InterestDonation},
	{keywords: []string{"gift", "hospitality"}, result: model.InterestGift},
	{keywords: []string{"visit"}, result: model.InterestGift},
	{keywords: []string{"shareholding"}, result: model.InterestShareholding},
	{keywords: []string{"property", "land"}, result: model.InterestProperty},
	{keywords: []string{"directorship"}, result: model.InterestDirectorship},
}

// Classify determines the interest type for an entry from its category
// heading. It is total: an empty or unrecognized category yields
// InterestMiscellaneous, never an error or an absent value.
func Classify(category string) model.InterestType {
	if category == "" {
		return model.InterestMiscellaneous
	}

	lower := strings.ToLower(category)
	for _, rule := range classifyRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.result
			}
		}
	}

	return model.InterestMiscellaneous
}
