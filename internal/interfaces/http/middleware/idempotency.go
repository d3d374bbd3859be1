package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets clients retry a create safely
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength caps the header value
	MaxIdempotencyKeyLength = 128
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a repeated request carrying an Idempotency-Key that
// was already used by the same user within TTL. Requests without the header
// pass through. A key whose request fails (status >= 400) is released so the
// client can retry. If the store is unavailable the request proceeds.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyKeyHeader)
		if header == "" {
			c.Next()
			return
		}
		requestID := c.GetString(RequestIDKey)
		if len(header) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				"Request validation failed", requestID,
				[]dto.ValidationDetail{{Field: IdempotencyKeyHeader, Message: "Must be at most 128 characters"}},
			))
			return
		}

		key := GetJWTUserID(c) + ":" + header
		ctx := c.Request.Context()

		fresh, err := cfg.Store.MarkProcessed(ctx, key, cfg.TTL)
		if err != nil {
			cfg.Logger.Warn("Idempotency store unavailable, processing request without key",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				requestID,
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// The request context may already be cancelled
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			if err := cfg.Store.Release(releaseCtx, key); err != nil {
				cfg.Logger.Warn("Failed to release idempotency key",
					zap.String("request_id", requestID),
					zap.Error(err),
				)
			}
		}
	}
}
