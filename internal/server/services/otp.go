package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/models"
	"github.com/trademart/marketplace/internal/server/repositories/otpcodes"
)

// OtpLedger issues and verifies short-lived one-time codes keyed by
// contact address (email or phone).
type OtpLedger struct {
	repo   otpcodes.Repository
	ttl    time.Duration
	logger logging.Logger
}

func NewOtpLedger(repo otpcodes.Repository, ttl time.Duration, logger logging.Logger) *OtpLedger {
	return &OtpLedger{repo: repo, ttl: ttl, logger: logger}
}

// Issue generates a single code and records it under every given
// contact, replacing any code previously stored there. Registration
// passes both the email and the phone so either channel can confirm.
func (l *OtpLedger) Issue(ctx context.Context, contacts ...string) (string, error) {
	code := common.RandomDigits(common.OtpLength)
	now := time.Now()

	for _, contact := range contacts {
		if contact == "" {
			continue
		}
		record := &models.OtpCode{
			Contact:   contact,
			Code:      code,
			ExpiresAt: now.Add(l.ttl),
			CreatedAt: now,
		}
		if err := l.repo.Replace(ctx, record); err != nil {
			return "", fmt.Errorf("storing otp for %s: %w", contact, err)
		}
	}

	return code, nil
}

// Verify reports whether the given code is the current unexpired code
// for the contact. The record is left in place so a separate flow step
// can consume it via Invalidate.
func (l *OtpLedger) Verify(ctx context.Context, contact string, code string) (bool, error) {
	record, err := l.repo.FindByContact(ctx, contact)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up otp: %w", err)
	}

	if record.Code != code {
		return false, nil
	}
	if record.Expired(time.Now()) {
		l.logger.Debug(ctx, "otp expired", "contact", contact)
		return false, nil
	}
	return true, nil
}

// Invalidate removes any code stored for the contact. Missing records
// are not an error.
func (l *OtpLedger) Invalidate(ctx context.Context, contact string) error {
	if err := l.repo.DeleteByContact(ctx, contact); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("deleting otp: %w", err)
	}
	return nil
}
