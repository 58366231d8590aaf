package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/repositories/otpcodes"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOtpLedgerIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	ledger := NewOtpLedger(otpcodes.NewMemoryRepository(), 5*time.Minute, testLogger())

	code, err := ledger.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	ok, err := ledger.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected the issued code to verify")
	}

	// verification does not consume the code
	ok, err = ledger.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected the code to verify again before invalidation")
	}
}

func TestOtpLedgerIssueMultipleContacts(t *testing.T) {
	ctx := context.Background()
	ledger := NewOtpLedger(otpcodes.NewMemoryRepository(), 5*time.Minute, testLogger())

	code, err := ledger.Issue(ctx, "user@example.com", "79001234567", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, contact := range []string{"user@example.com", "79001234567"} {
		ok, err := ledger.Verify(ctx, contact, code)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", contact, err)
		}
		if !ok {
			t.Errorf("expected the shared code to verify for %s", contact)
		}
	}
}

func TestOtpLedgerReissueReplacesCode(t *testing.T) {
	ctx := context.Background()
	ledger := NewOtpLedger(otpcodes.NewMemoryRepository(), 5*time.Minute, testLogger())

	first, err := ledger.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var second string
	for i := 0; i < 50; i++ {
		second, err = ledger.Issue(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second != first {
			break
		}
	}
	if second == first {
		t.Skip("could not generate a distinct code")
	}

	ok, err := ledger.Verify(ctx, "user@example.com", first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected the replaced code to stop verifying")
	}
}

func TestOtpLedgerVerifyFailures(t *testing.T) {
	ctx := context.Background()
	repo := otpcodes.NewMemoryRepository()
	ledger := NewOtpLedger(repo, 5*time.Minute, testLogger())

	code, err := ledger.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		contact string
		code    string
	}{
		{"unknown contact", "nobody@example.com", code},
		{"wrong code", "user@example.com", "000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := ledger.Verify(ctx, tt.contact, tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestOtpLedgerVerifyExpired(t *testing.T) {
	ctx := context.Background()
	repo := otpcodes.NewMemoryRepository()
	ledger := NewOtpLedger(repo, -time.Minute, testLogger())

	code, err := ledger.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := ledger.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected an expired code to be rejected")
	}
}

func TestOtpLedgerInvalidate(t *testing.T) {
	ctx := context.Background()
	ledger := NewOtpLedger(otpcodes.NewMemoryRepository(), 5*time.Minute, testLogger())

	code, err := ledger.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ledger.Invalidate(ctx, "user@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := ledger.Verify(ctx, "user@example.com", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected verification to fail after invalidation")
	}

	// invalidating an absent record is not an error
	if err := ledger.Invalidate(ctx, "user@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
