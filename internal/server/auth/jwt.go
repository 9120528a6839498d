// Package auth issues and verifies access tokens, hashes passwords and
// evaluates the role policy.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "doctrack"

// Claims is the payload of an access token. The identity id travels in
// the standard "sub" claim; UserID is filled from it on verification.
type Claims struct {
	jwt.RegisteredClaims
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	UserID int64       `json:"-"`
}

// JWTSigner signs HS256 tokens with a key fixed at construction.
type JWTSigner struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewJWTSigner(secret []byte, validity time.Duration) *JWTSigner {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &JWTSigner{secret: key, validity: validity, now: time.Now}
}

// Sign returns a token for p valid for the configured duration.
func (s *JWTSigner) Sign(p models.Profile) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.ID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Email: p.Email,
		Role:  p.Role,
	})

	return token.SignedString(s.secret)
}

// Verify parses token and checks its signature, expiry and payload.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// yields common.ErrInvalidToken.
func (s *JWTSigner) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", common.ErrInvalidToken)
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidToken, claims.Role)
	}
	claims.UserID = id

	return claims, nil
}
