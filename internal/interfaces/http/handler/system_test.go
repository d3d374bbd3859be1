package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler("marketrent-backend", "1.2.3", pingerFunc(func(context.Context) error { return nil }))

	c, w := newTestContext(http.MethodGet, "/health", "")
	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "up", data["database"])
	assert.NotEmpty(t, data["go_version"])
}

func TestSystemHandler_HealthDatabaseDown(t *testing.T) {
	h := NewSystemHandler("marketrent-backend", "1.2.3", pingerFunc(func(context.Context) error { return assert.AnError }))

	c, w := newTestContext(http.MethodGet, "/health", "")
	h.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "down", data["database"])
}

func TestSystemHandler_HealthWithoutDatabase(t *testing.T) {
	h := NewSystemHandler("marketrent-backend", "dev", nil)

	c, w := newTestContext(http.MethodGet, "/health", "")
	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
