// Package services contains the server-side business logic: the auth
// engine, identity administration and the document lifecycle.
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

// PasswordHasher is a salted one-way hash with constant-time verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenSigner produces signed, expiring access tokens for a profile.
type TokenSigner interface {
	Sign(p models.Profile) (string, error)
}

// Session is what a successful login or registration returns.
type Session struct {
	AccessToken string
	Profile     models.Profile
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	signer      TokenSigner
	logger      logging.Logger

	// dummyHash is verified against when the email is unknown so both miss
	// paths cost one hash verification.
	dummyHash string
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, signer TokenSigner, logger logging.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash("doctrack-unknown-account")
	if err != nil {
		return nil, fmt.Errorf("dummy password hash: %w", err)
	}

	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		signer:      signer,
		logger:      logger.With("module", "auth"),
		dummyHash:   dummy,
	}, nil
}

// ValidateCredentials returns the identity for email when password matches.
// An unknown email and a wrong password both yield (nil, nil); only a
// credential store failure yields an error.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, nil
		}
		return nil, unavailable("find user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// IssueSession signs a token carrying the user's id, email and role.
func (s *AuthService) IssueSession(user *models.User) (*Session, error) {
	profile := user.Profile()
	token, err := s.signer.Sign(profile)
	if err != nil {
		return nil, unavailable("sign token", err)
	}
	return &Session{AccessToken: token, Profile: profile}, nil
}

// Register creates a viewer identity and logs it in. An email that is
// already taken yields common.ErrorConflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorConflict
	case !errors.Is(err, common.ErrorNotFound):
		return nil, unavailable("find user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, email, hash, models.DefaultRole)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, unavailable("create user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	return s.IssueSession(user)
}

// Login validates credentials and issues a session. Bad credentials yield
// common.ErrorUnauthorized without saying which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn(ctx, "login rejected")
		return nil, common.ErrorUnauthorized
	}
	return s.IssueSession(user)
}

// Profile returns the current public profile of the identity id.
func (s *AuthService) Profile(ctx context.Context, id int64) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	p := user.Profile()
	return &p, nil
}
