package extract

import "testing"

// TestAmount covers the ordered monetary patterns and their GBP default.
func TestAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"symbol with separators and decimals", "Payment of £1,234.56 for consultancy.", 1234.56, true},
		{"symbol without decimals", "Received £5,000. Registered on 1 January 2023.", 5000.0, true},
		{"symbol small amount", "Fee of £250 per article.", 250.0, true},
		{"word suffix", "Approximately 1,234 pounds per year.", 1234.0, true},
		{"word suffix plain", "Paid 500 pounds in total.", 500.0, true},
		{"no amount", "Director of Company X, unremunerated.", 0, false},
		{"digits without marker", "Between 2020 and 2022.", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			money, ok := Amount(tt.text)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if money.Amount != tt.want {
				t.Errorf("Amount(%q) = %v, want %v", tt.text, money.Amount, tt.want)
			}
			if money.Currency != "GBP" {
				t.Errorf("Amount(%q) currency = %q, want GBP", tt.text, money.Currency)
			}
		})
	}
}

// TestAmountSymbolPreferred verifies the symbol pattern is tried before
// the word-suffixed pattern when both forms appear.
func TestAmountSymbolPreferred(t *testing.T) {
	t.Parallel()

	money, ok := Amount("Fee of £750, previously quoted as 800 pounds.")
	if !ok {
		t.Fatal("expected a match")
	}
	if money.Amount != 750.0 {
		t.Errorf("expected symbol match 750.0, got %v", money.Amount)
	}
}
