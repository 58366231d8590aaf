package services

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if hash == "s3cret" {
		t.Error("hash must not equal the plaintext password")
	}
}

func TestPasswordMatches(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		stored    string
		candidate string
		want      bool
	}{
		{"bcrypt match", hash, "s3cret", true},
		{"bcrypt mismatch", hash, "wrong", false},
		{"legacy plaintext match", "oldpassword", "oldpassword", true},
		{"legacy plaintext mismatch", "oldpassword", "other", false},
		{"legacy empty stored", "", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PasswordMatches(tt.stored, tt.candidate); got != tt.want {
				t.Errorf("PasswordMatches(%q, %q) = %v, want %v", tt.stored, tt.candidate, got, tt.want)
			}
		})
	}
}
