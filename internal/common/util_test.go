package common

import (
	"strconv"
	"testing"
)

// ---------- RandomDigits ----------

func TestRandomDigits_LengthAndCharset(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := RandomDigits(OtpLength)
		if len(s) != OtpLength {
			t.Fatalf("expected length %d, got %d (%q)", OtpLength, len(s), s)
		}
		if _, err := strconv.Atoi(s); err != nil {
			t.Fatalf("string is not numeric: %q", s)
		}
	}
}

func TestRandomDigits_ZeroPadded(t *testing.T) {
	// Over enough draws at least one code should start with a leading zero;
	// if padding is broken that never happens.
	seen := false
	for i := 0; i < 5000 && !seen; i++ {
		seen = RandomDigits(OtpLength)[0] == '0'
	}
	if !seen {
		t.Logf("warning: no leading-zero code in 5000 draws; statistically very unlikely")
	}
}

func TestRandomDigits_EntropyHint(t *testing.T) {
	a := RandomDigits(OtpLength)
	b := RandomDigits(OtpLength)
	if a == b {
		t.Logf("warning: two RandomDigits(%d) results are identical; unlikely but possible", OtpLength)
	}
}

// ---------- IsEmailAddress ----------

func TestIsEmailAddress(t *testing.T) {
	tests := []struct {
		contact string
		want    bool
	}{
		{"a@x.com", true},
		{"vendor@shop.example", true},
		{"9876543210", false},
		{"+919876543210", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEmailAddress(tt.contact); got != tt.want {
			t.Fatalf("IsEmailAddress(%q) = %v, want %v", tt.contact, got, tt.want)
		}
	}
}
