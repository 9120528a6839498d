package auth

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/doctrack/internal/common"
	"github.com/dmitrijs2005/doctrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	claims := func(r models.Role) *Claims { return &Claims{UserID: 1, Role: r} }

	tests := []struct {
		name     string
		claims   *Claims
		required models.Role
		want     error
	}{
		{"admin on admin route", claims(models.RoleAdmin), models.RoleAdmin, nil},
		{"viewer on admin route", claims(models.RoleViewer), models.RoleAdmin, common.ErrorForbidden},
		{"editor on admin route", claims(models.RoleEditor), models.RoleAdmin, common.ErrorForbidden},
		{"admin on editor route, no hierarchy", claims(models.RoleAdmin), models.RoleEditor, common.ErrorForbidden},
		{"viewer on any route", claims(models.RoleViewer), AnyRole, nil},
		{"missing claims", nil, AnyRole, common.ErrorUnauthorized},
		{"missing claims on admin route", nil, models.RoleAdmin, common.ErrorUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.claims, tt.required)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	in := &Claims{UserID: 7, Role: models.RoleEditor}
	got, ok := ClaimsFromContext(WithClaims(context.Background(), in))
	require.True(t, ok)
	assert.Same(t, in, got)

	_, ok = ClaimsFromContext(WithClaims(context.Background(), nil))
	assert.False(t, ok)
}
