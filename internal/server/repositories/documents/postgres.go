// Package documents stores document metadata in PostgreSQL.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/dbx"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
)

const selectColumns = `id, filename, uploader_id, storage_key, status, error_message, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.Document, error) {
	d := &models.Document{}
	var status string
	var msg sql.NullString
	if err := row.Scan(&d.ID, &d.Filename, &d.UploaderID, &d.StorageKey, &status, &msg, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Status = models.DocumentStatus(status)
	if msg.Valid {
		d.ErrorMessage = &msg.String
	}
	return d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (filename, uploader_id, storage_key, status, error_message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	var msg sql.NullString
	if doc.ErrorMessage != nil {
		msg = sql.NullString{String: *doc.ErrorMessage, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		doc.Filename, doc.UploaderID, doc.StorageKey, string(doc.Status), msg).
		Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, id int64) (*models.Document, error) {
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id int64) (*models.Document, error) {
	return r.findOne(ctx, `SELECT `+selectColumns+` FROM documents WHERE id = $1`, id)
}

func (r *PostgresRepository) FindForUpdate(ctx context.Context, id int64) (*models.Document, error) {
	return r.findOne(ctx, `SELECT `+selectColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update applies the non-nil fields of patch. Columns are set in a fixed
// order: filename, status, error_message, then updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.DocumentPatch) (int64, error) {
	sets := make([]string, 0, 4)
	args := []any{id}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Filename != nil {
		add("filename", *patch.Filename)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	switch {
	case patch.ClearErrorMessage:
		sets = append(sets, "error_message = NULL")
	case patch.ErrorMessage != nil:
		add("error_message", *patch.ErrorMessage)
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE documents SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	n, err := dbx.RowsAffected(r.db.ExecContext(ctx, query, args...))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := dbx.RowsAffected(r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
