// Package users stores identities in PostgreSQL.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return u, nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, role, created_at FROM users
		 WHERE email = $1`

	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, role, created_at FROM users
		 WHERE id = $1`

	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	u := &models.User{Email: email, PasswordHash: passwordHash, Role: role}
	err := r.db.QueryRowContext(ctx, query, email, passwordHash, string(role)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

// Save writes every mutable column of user.
func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET email = $2, password_hash = $3, role = $4
		 WHERE id = $1`

	n, err := dbx.RowsAffected(r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, string(user.Role)))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, email, password_hash, role, created_at FROM users
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
