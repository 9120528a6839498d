// Package repomanager wires the PostgreSQL repositories and runs the
// embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/server/migrations"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}

// seam for tests
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies every pending embedded migration.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
