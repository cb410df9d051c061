package phone

import "testing"

func TestNormalizeE164_BrazilianMobile(t *testing.T) {
	got := NormalizeE164("(61) 99999-0001")
	if got != "+5561999990001" {
		t.Fatalf("expected +5561999990001, got %q", got)
	}
}

func TestNormalizeE164_KeepsUnparseableInputTrimmed(t *testing.T) {
	got := NormalizeE164("  not a number  ")
	if got != "not a number" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestIsPlausible_TenDigitRule(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"(61) 99999-0001", true},
		{"61 9999 0001", true},
		{"999-0001", false},
		{"", false},
		{"+55 (61) 9 9999-0001", true},
	}

	for _, tc := range cases {
		if got := IsPlausible(tc.input, 10); got != tc.ok {
			t.Fatalf("IsPlausible(%q) = %v, expected %v", tc.input, got, tc.ok)
		}
	}
}
