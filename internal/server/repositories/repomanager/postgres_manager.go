package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/trademart/marketplace/internal/dbx"
	"github.com/trademart/marketplace/internal/server/migrations"
	"github.com/trademart/marketplace/internal/server/models"
	"github.com/trademart/marketplace/internal/server/repositories/identities"
	"github.com/trademart/marketplace/internal/server/repositories/otpcodes"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Customers(db dbx.DBTX) identities.Store {
	return identities.NewPostgresStore(db, models.RoleCustomer)
}

func (m *PostgresRepositoryManager) Vendors(db dbx.DBTX) identities.Store {
	return identities.NewPostgresStore(db, models.RoleVendor)
}

func (m *PostgresRepositoryManager) Admins(db dbx.DBTX) identities.Store {
	return identities.NewPostgresStore(db, models.RoleAdmin)
}

func (m *PostgresRepositoryManager) OtpCodes(db *sql.DB) otpcodes.Repository {
	return otpcodes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
