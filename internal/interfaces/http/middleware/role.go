package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/marketrent/backend/internal/infrastructure/auth"
	"github.com/marketrent/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	Logger *zap.Logger
	// OnDenied is called when the role check fails (optional)
	OnDenied func(c *gin.Context, allowed []auth.Role)
}

// RequireRole allows the request through only for callers holding one of roles
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireOwner restricts a route to market owners
func RequireOwner() gin.HandlerFunc {
	return RequireRole(auth.RoleOwner)
}

// RequireRoleWithConfig is RequireRole with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}

		if !slices.Contains(roles, claims.Role) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Role check failed",
					zap.String("user_id", claims.UserID),
					zap.String("role", string(claims.Role)),
					zap.String("path", c.FullPath()),
					zap.String("method", c.Request.Method),
				)
			}
			if cfg.OnDenied != nil {
				cfg.OnDenied(c, roles)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Your role does not allow this operation", c.GetString(RequestIDKey)))
			return
		}

		c.Next()
	}
}
