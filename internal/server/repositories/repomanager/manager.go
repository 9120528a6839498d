package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// run the same repository against a pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
}
