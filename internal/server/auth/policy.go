package auth

import (
	"context"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
)

// AnyRole admits every authenticated caller.
const AnyRole models.Role = ""

// Authorize admits claims whose role equals required exactly. There is no
// hierarchy: an admin does not satisfy an editor requirement.
func Authorize(claims *Claims, required models.Role) error {
	if claims == nil {
		return common.ErrorUnauthorized
	}
	if required == AnyRole || claims.Role == required {
		return nil
	}
	return common.ErrorForbidden
}

type ctxKey struct{}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok && c != nil
}
