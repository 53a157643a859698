package format

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "$0"},
		{"under a thousand", 500, "$500"},
		{"exactly a thousand", 1000, "$1.000"},
		{"typical menu price", 8000, "$8.000"},
		{"five digits", 12500, "$12.500"},
		{"millions", 1234567, "$1.234.567"},
		{"negative", -8000, "-$8.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.amount); got != tt.want {
				t.Errorf("Price(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestPriceNumber(t *testing.T) {
	if got := PriceNumber(8000); got != "8.000" {
		t.Errorf("PriceNumber(8000) = %q, want %q", got, "8.000")
	}
	if got := PriceNumber(999); got != "999" {
		t.Errorf("PriceNumber(999) = %q, want %q", got, "999")
	}
}
