package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/logging"
	"github.com/trademart/marketplace/internal/server/models"
	"github.com/trademart/marketplace/internal/server/repositories/identities"
)

// Resolver locates accounts across the three identity stores. Stores are
// always consulted in precedence order (customer, vendor, admin), so when
// the same contact exists in more than one store the earlier one wins.
type Resolver struct {
	stores map[models.Role]identities.Store
	logger logging.Logger
}

func NewResolver(customers, vendors, admins identities.Store, logger logging.Logger) *Resolver {
	return &Resolver{
		stores: map[models.Role]identities.Store{
			models.RoleCustomer: customers,
			models.RoleVendor:   vendors,
			models.RoleAdmin:    admins,
		},
		logger: logger,
	}
}

// StoreFor returns the store owning accounts of the given role.
func (r *Resolver) StoreFor(role models.Role) identities.Store {
	store, ok := r.stores[role]
	if !ok {
		panic(fmt.Sprintf("no identity store for role %q", role))
	}
	return store
}

// Resolve searches the stores in precedence order for a record matching
// contact by either channel. Returns common.ErrorNotFound when no store has
// a match; any store failure aborts the search immediately.
func (r *Resolver) Resolve(ctx context.Context, contact string) (*models.Principal, error) {
	for _, role := range models.RolePrecedence {
		identity, err := r.stores[role].FindByContact(ctx, contact)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, fmt.Errorf("searching %s store: %w", role, err)
		}
		return models.PrincipalFromIdentity(identity), nil
	}
	return nil, common.ErrorNotFound
}

// ResolveByEmail is like Resolve but matches the email channel only.
func (r *Resolver) ResolveByEmail(ctx context.Context, email string) (*models.Principal, error) {
	for _, role := range models.RolePrecedence {
		identity, err := r.stores[role].FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, fmt.Errorf("searching %s store: %w", role, err)
		}
		return models.PrincipalFromIdentity(identity), nil
	}
	return nil, common.ErrorNotFound
}

// Exists reports whether any store has a record matching contact.
func (r *Resolver) Exists(ctx context.Context, contact string) (bool, error) {
	for _, role := range models.RolePrecedence {
		found, err := r.stores[role].ExistsByContact(ctx, contact)
		if err != nil {
			return false, fmt.Errorf("checking %s store: %w", role, err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// SetVerified flips the verified flag on the first store in precedence
// order owning the email. A resolve that found nothing is reported, not
// swallowed.
func (r *Resolver) SetVerified(ctx context.Context, email string, verified bool) error {
	for _, role := range models.RolePrecedence {
		updated, err := r.stores[role].SetVerified(ctx, email, verified)
		if err != nil {
			return fmt.Errorf("updating %s store: %w", role, err)
		}
		if updated {
			return nil
		}
	}
	r.logger.Warn(ctx, "verified flag update matched no record", "email", email)
	return common.ErrorNotFound
}

// SetPassword replaces the credential on the first store in precedence
// order owning the email.
func (r *Resolver) SetPassword(ctx context.Context, email string, passwordHash string) error {
	for _, role := range models.RolePrecedence {
		updated, err := r.stores[role].SetPassword(ctx, email, passwordHash)
		if err != nil {
			return fmt.Errorf("updating %s store: %w", role, err)
		}
		if updated {
			return nil
		}
	}
	r.logger.Warn(ctx, "password update matched no record", "email", email)
	return common.ErrorNotFound
}
