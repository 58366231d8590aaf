package models

import (
	"testing"
	"time"
)

func TestOtpCodeExpired(t *testing.T) {
	expiresAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	code := &OtpCode{Contact: "a@x.com", Code: "123456", ExpiresAt: expiresAt}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before expiry", expiresAt.Add(-time.Second), false},
		{"exact expiry instant", expiresAt, true},
		{"one second after expiry", expiresAt.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := code.Expired(tt.now); got != tt.want {
				t.Errorf("Expired(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
