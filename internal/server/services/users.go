package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/logging"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/dmitrijs2005/doctrack/internal/server/repositories/repomanager"
)

// UserService administers identities. Access control happens at the
// transport; these methods assume the caller is allowed.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		logger:      logger.With("module", "users"),
	}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, unavailable("list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return user, nil
}

// UpdateRole replaces the role of identity id. Tokens issued earlier keep
// the old role until they expire.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	if !role.IsValid() {
		return nil, invalid("unknown role %q", role)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}

	previous := user.Role
	user.Role = role

	if _, err := repo.Save(ctx, user); err != nil {
		return nil, storeErr("save user", err)
	}

	s.logger.Info(ctx, "role updated", "user_id", id, "from", previous, "to", role)
	return user, nil
}

// EnsureAdmin makes sure an admin account exists for email. A missing
// account is created with password; an existing one is promoted and keeps
// its password.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err == nil {
		if user.Role == models.RoleAdmin {
			return user, nil
		}
		return s.UpdateRole(ctx, user.ID, models.RoleAdmin)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, unavailable("find user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	user, err = repo.Create(ctx, email, hash, models.RoleAdmin)
	if err != nil {
		return nil, storeErr("create admin", err)
	}

	s.logger.Info(ctx, "admin account created", "user_id", user.ID)
	return user, nil
}
