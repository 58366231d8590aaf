// Package otpcodes declares the repository contract for live one-time
// codes keyed by contact identifier.
package otpcodes

import (
	"context"

	"github.com/trademart/marketplace/internal/server/models"
)

// Repository stores live OTP records. Records are replaced and deleted,
// never updated in place.
type Repository interface {
	// Replace atomically removes any record stored for the code's contact
	// and persists the new one; at most one live record per contact
	// survives even under concurrent issuance.
	Replace(ctx context.Context, code *models.OtpCode) error

	// FindByContact returns the live record for contact.
	// Implementations return common.ErrorNotFound when absent.
	FindByContact(ctx context.Context, contact string) (*models.OtpCode, error)

	// DeleteByContact removes any record(s) for contact. Deleting a
	// non-existent record is not an error.
	DeleteByContact(ctx context.Context, contact string) error
}
