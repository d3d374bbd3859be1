package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marketrent/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
)

func withClaims(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(JWTClaimsKey, &auth.Claims{UserID: "user-1", Role: role})
		c.Next()
	}
}

func TestRequireOwner(t *testing.T) {
	tests := []struct {
		name     string
		setup    gin.HandlerFunc
		expected int
	}{
		{"owner passes", withClaims(auth.RoleOwner), http.StatusOK},
		{"accountant forbidden", withClaims(auth.RoleAccountant), http.StatusForbidden},
		{"anonymous unauthorized", func(c *gin.Context) { c.Next() }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(tt.setup, RequireOwner())
			router.POST("/spaces", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/spaces", nil))

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRequireRole_AnyOf(t *testing.T) {
	router := gin.New()
	router.Use(withClaims(auth.RoleAccountant), RequireRole(auth.RoleOwner, auth.RoleAccountant))
	router.POST("/payments", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireRoleWithConfig_OnDenied(t *testing.T) {
	var allowed []auth.Role
	cfg := RoleConfig{OnDenied: func(c *gin.Context, roles []auth.Role) {
		allowed = roles
		c.Status(http.StatusNotFound)
	}}

	router := gin.New()
	router.Use(withClaims(auth.RoleAccountant), RequireRoleWithConfig(cfg, auth.RoleOwner))
	router.DELETE("/tenants/1", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tenants/1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []auth.Role{auth.RoleOwner}, allowed)
}
