package currency

import (
	"testing"

	"extraque/internal/core"
)

func TestByCode(t *testing.T) {
	if c, ok := ByCode("eur"); !ok || c.Code != "EUR" {
		t.Fatalf("expected EUR, got %+v ok=%v", c, ok)
	}
	if c, ok := ByCode("XXX"); ok || c.Code != "USD" {
		t.Fatalf("unknown code should fall back to base, got %+v ok=%v", c, ok)
	}
}

func TestFormatAppliesRate(t *testing.T) {
	cases := []struct {
		cents int64
		code  string
		want  string
	}{
		{123456, "USD", "$1,234.56"},
		{100000, "EUR", "€940.00"}, // 1000 * 0.94
		{100000, "GBP", "£790.00"}, // 1000 * 0.79
		{100, "JPY", "¥151.50"},    // 1 * 151.5
		{123456789, "USD", "$1,234,567.89"},
		{0, "USD", "$0.00"},
		{50, "USD", "$0.50"},
	}
	for _, tc := range cases {
		cur, _ := ByCode(tc.code)
		if got := Format(core.Money{Cents: tc.cents}, cur); got != tc.want {
			t.Fatalf("%d cents in %s: expected %q, got %q", tc.cents, tc.code, got, tc.want)
		}
	}
}

func TestFormatNegative(t *testing.T) {
	cur := Base()
	if got := Format(core.Money{Cents: -12345}, cur); got != "-$123.45" {
		t.Fatalf("expected -$123.45, got %q", got)
	}
}
