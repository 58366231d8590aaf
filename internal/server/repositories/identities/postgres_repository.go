package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/dbx"
	"github.com/trademart/marketplace/internal/server/models"
)

// tableSpec maps a role onto its table and role-specific profile columns.
type tableSpec struct {
	table     string
	extraCols []string
}

var tableSpecs = map[models.Role]tableSpec{
	models.RoleCustomer: {table: "customers"},
	models.RoleVendor:   {table: "vendors", extraCols: []string{"business_name", "business_address", "gst_number", "pan_number"}},
	models.RoleAdmin:    {table: "admins", extraCols: []string{"department", "designation"}},
}

// PostgresStore implements Store on top of one role's table. The three
// stores share this implementation but never each other's rows.
type PostgresStore struct {
	db   dbx.DBTX
	role models.Role
	spec tableSpec
}

func NewPostgresStore(db dbx.DBTX, role models.Role) *PostgresStore {
	spec, ok := tableSpecs[role]
	if !ok {
		panic(fmt.Sprintf("identities: no table for role %q", role))
	}
	return &PostgresStore{db: db, role: role, spec: spec}
}

func (s *PostgresStore) columns() string {
	cols := []string{"id", "name", "email", "phone", "password", "verified", "created_at"}
	return strings.Join(append(cols, s.spec.extraCols...), ", ")
}

func (s *PostgresStore) extraValues(identity *models.Identity) []any {
	switch s.role {
	case models.RoleVendor:
		return []any{identity.BusinessName, identity.BusinessAddress, identity.GSTNumber, identity.PANNumber}
	case models.RoleAdmin:
		return []any{identity.Department, identity.Designation}
	}
	return nil
}

func (s *PostgresStore) extraDest(identity *models.Identity, phone *sql.NullString, extras []sql.NullString) []any {
	dest := []any{&identity.ID, &identity.Name, &identity.Email, phone, &identity.PasswordHash, &identity.Verified, &identity.CreatedAt}
	for i := range extras {
		dest = append(dest, &extras[i])
	}
	return dest
}

func (s *PostgresStore) applyExtras(identity *models.Identity, extras []sql.NullString) {
	switch s.role {
	case models.RoleVendor:
		identity.BusinessName = extras[0].String
		identity.BusinessAddress = extras[1].String
		identity.GSTNumber = extras[2].String
		identity.PANNumber = extras[3].String
	case models.RoleAdmin:
		identity.Department = extras[0].String
		identity.Designation = extras[1].String
	}
}

func (s *PostgresStore) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	cols := []string{"id", "name", "email", "phone", "password", "verified"}
	cols = append(cols, s.spec.extraCols...)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING created_at`,
		s.spec.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	args := []any{identity.ID, identity.Name, identity.Email, nullable(identity.Phone), identity.PasswordHash, identity.Verified}
	args = append(args, s.extraValues(identity)...)

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&identity.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	identity.Role = s.role
	return identity, nil
}

func (s *PostgresStore) FindByContact(ctx context.Context, contact string) (*models.Identity, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE email = $1 OR phone = $1`,
		s.columns(), s.spec.table)

	return s.findOne(ctx, query, contact)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE email = $1`,
		s.columns(), s.spec.table)

	return s.findOne(ctx, query, email)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg string) (*models.Identity, error) {
	identity := &models.Identity{Role: s.role}

	var phone sql.NullString
	extras := make([]sql.NullString, len(s.spec.extraCols))

	err := s.db.QueryRowContext(ctx, query, arg).Scan(s.extraDest(identity, &phone, extras)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	identity.Phone = phone.String
	s.applyExtras(identity, extras)

	return identity, nil
}

func (s *PostgresStore) ExistsByContact(ctx context.Context, contact string) (bool, error) {
	if contact == "" {
		return false, nil
	}

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1 OR phone = $1)`,
		s.spec.table)

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, contact).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (s *PostgresStore) SetVerified(ctx context.Context, email string, verified bool) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET verified = $2 WHERE email = $1`, s.spec.table)
	return s.updateOne(ctx, query, email, verified)
}

func (s *PostgresStore) SetPassword(ctx context.Context, email string, passwordHash string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET password = $2 WHERE email = $1`, s.spec.table)
	return s.updateOne(ctx, query, email, passwordHash)
}

func (s *PostgresStore) updateOne(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

// nullable turns the empty string into SQL NULL so the unique constraint
// on phone is not tripped by accounts registered without one.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
