// Package repomanager bundles repository constructors behind one interface
// so services can be wired against any backend.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/trademart/marketplace/internal/dbx"
	"github.com/trademart/marketplace/internal/server/repositories/identities"
	"github.com/trademart/marketplace/internal/server/repositories/otpcodes"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Customers(db dbx.DBTX) identities.Store
	Vendors(db dbx.DBTX) identities.Store
	Admins(db dbx.DBTX) identities.Store
	// OtpCodes needs the root handle because the postgres implementation
	// opens its own transactions.
	OtpCodes(db *sql.DB) otpcodes.Repository
}
