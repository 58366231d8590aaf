// Package identities declares the repository contract shared by the three
// physically separate identity stores (customers, vendors, admins).
package identities

import (
	"context"

	"github.com/trademart/marketplace/internal/server/models"
)

// Store is one identity store. Each store is unique on email and phone
// within itself only; cross-store uniqueness is the orchestrator's job.
type Store interface {
	// Create persists a new identity record and returns it.
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)

	// FindByContact looks a record up by email OR phone equal to contact.
	// Implementations return common.ErrorNotFound when absent.
	FindByContact(ctx context.Context, contact string) (*models.Identity, error)

	// FindByEmail looks a record up by its email address only.
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)

	// ExistsByContact reports whether any record matches contact by either
	// channel. An empty contact matches nothing.
	ExistsByContact(ctx context.Context, contact string) (bool, error)

	// SetVerified flips the verified flag for the record owning email.
	// The boolean result reports whether a record was actually updated.
	SetVerified(ctx context.Context, email string, verified bool) (bool, error)

	// SetPassword replaces the stored credential for the record owning
	// email. The boolean result reports whether a record was updated.
	SetPassword(ctx context.Context, email string, passwordHash string) (bool, error)
}
