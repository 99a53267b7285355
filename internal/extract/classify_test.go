package extract

import (
	"testing"

	"github.com/registerwatch/registerscan/internal/model"
)

// TestClassify checks the closed classification over category headings.
func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		want     model.InterestType
	}{
		{"employment keyword", "1. Employment and earnings", model.InterestEmployment},
		{"earnings keyword", "Earnings from outside work", model.InterestEmployment},
		{"donation keyword", "2. Donations and other support", model.InterestDonation},
		{"funding keyword", "Support and funding received", model.InterestDonation},
		{"gift keyword", "3. Gifts, benefits and hospitality from UK sources", model.InterestGift},
		{"hospitality keyword", "Hospitality received", model.InterestGift},
		{"visit maps to gift", "4. Visits outside the UK", model.InterestGift},
		{"shareholding keyword", "7. Shareholdings", model.InterestShareholding},
		{"property keyword", "6. Land and property portfolio", model.InterestProperty},
		{"land keyword", "Land holdings", model.InterestProperty},
		{"directorship keyword", "8. Directorships", model.InterestDirectorship},
		{"unknown category", "9. Family members employed", model.InterestMiscellaneous},
		{"empty category", "", model.InterestMiscellaneous},
		{"case insensitive", "EMPLOYMENT AND EARNINGS", model.InterestEmployment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.category); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.category, got, tt.want)
			}
		})
	}
}

// TestClassifyPriorityOrder pins the documented rule ordering: when a
// category matches several keywords, the earlier rule wins.
func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		want     model.InterestType
	}{
		// gift (rule 3) outranks shareholding (rule 5)
		{"gift before shareholding", "Gifts and shareholdings", model.InterestGift},
		// employment (rule 1) outranks everything
		{"employment before donation", "Earnings and donations", model.InterestEmployment},
		// property (rule 6) outranks directorship (rule 7)
		{"property before directorship", "Land company directorships", model.InterestProperty},
		// visit (rule 4) yields gift even ahead of shareholding
		{"visit before shareholding", "Visits and shareholdings", model.InterestGift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.category); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.category, got, tt.want)
			}
		})
	}
}

// TestClassifyIsTotal verifies every input yields one of the seven
// enumerated types.
func TestClassifyIsTotal(t *testing.T) {
	t.Parallel()

	valid := make(map[model.InterestType]bool, len(model.InterestTypes))
	for _, it := range model.InterestTypes {
		valid[it] = true
	}

	inputs := []string{"", " ", "????", "1.", "giftsandvisits", "株式", "a very long unrelated heading"}
	for _, input := range inputs {
		if got := Classify(input); !valid[got] {
			t.Errorf("Classify(%q) = %q, not an enumerated type", input, got)
		}
	}
}
