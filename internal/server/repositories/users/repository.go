package users

import (
	"context"

	"github.com/dmitrijs2005/doctrack/internal/server/models"
)

// Repository is the credential store. Lookups that find nothing return
// common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorConflict.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
