package documents

import (
	"context"

	"github.com/dmitrijs2005/doctrack/internal/server/models"
)

// Repository is the document store. Update and Delete report the number of
// affected rows and leave the interpretation of zero to the caller.
type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	Find(ctx context.Context, id int64) (*models.Document, error)
	// FindForUpdate locks the row until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id int64) (*models.Document, error)
	FindAll(ctx context.Context) ([]*models.Document, error)
	Update(ctx context.Context, id int64, patch models.DocumentPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
