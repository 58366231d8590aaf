package otpcodes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/server/models"
)

func TestMemoryRepository_ReplaceAndFind(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	code := &models.OtpCode{
		Contact:   "a@x.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := r.Replace(ctx, code); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	got, err := r.FindByContact(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByContact error: %v", err)
	}
	if got.Code != "123456" {
		t.Fatalf("code mismatch: got %q", got.Code)
	}
}

func TestMemoryRepository_FindMissing(t *testing.T) {
	r := NewMemoryRepository()

	_, err := r.FindByContact(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestMemoryRepository_ReplaceOverwritesPerContact(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_ = r.Replace(ctx, &models.OtpCode{Contact: "a@x.com", Code: "111111", ExpiresAt: time.Now().Add(time.Minute)})
	_ = r.Replace(ctx, &models.OtpCode{Contact: "a@x.com", Code: "222222", ExpiresAt: time.Now().Add(time.Minute)})

	got, err := r.FindByContact(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByContact error: %v", err)
	}
	if got.Code != "222222" {
		t.Fatalf("expected the replacement to win, got %q", got.Code)
	}
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_ = r.Replace(ctx, &models.OtpCode{Contact: "a@x.com", Code: "123456", ExpiresAt: time.Now().Add(time.Minute)})

	if err := r.DeleteByContact(ctx, "a@x.com"); err != nil {
		t.Fatalf("DeleteByContact error: %v", err)
	}
	if err := r.DeleteByContact(ctx, "a@x.com"); err != nil {
		t.Fatalf("second DeleteByContact must not error: %v", err)
	}

	if _, err := r.FindByContact(ctx, "a@x.com"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
