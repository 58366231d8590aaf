package otpcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/dbx"
	"github.com/trademart/marketplace/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Replace runs the delete and the insert in one transaction so a crash or
// a concurrent issuance can never leave two live codes for a contact.
func (r *PostgresRepository) Replace(ctx context.Context, code *models.OtpCode) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM otp_codes WHERE contact = $1`, code.Contact); err != nil {
			return err
		}

		query :=
			`INSERT INTO otp_codes (contact, code, expires_at)
			 VALUES ($1, $2, $3)
			 `

		_, err := tx.ExecContext(ctx, query, code.Contact, code.Code, code.ExpiresAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByContact(ctx context.Context, contact string) (*models.OtpCode, error) {
	// Newest first: if a race ever leaves two rows behind, the latest code
	// is the authoritative one.
	query :=
		`SELECT contact, code, expires_at, created_at FROM otp_codes
		 WHERE contact = $1
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	code := &models.OtpCode{}
	err := r.db.QueryRowContext(ctx, query, contact).Scan(&code.Contact, &code.Code, &code.ExpiresAt, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}

func (r *PostgresRepository) DeleteByContact(ctx context.Context, contact string) error {
	query := `DELETE FROM otp_codes WHERE contact = $1`

	if _, err := r.db.ExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
