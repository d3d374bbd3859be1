package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStubObjectStorage(t *testing.T) {
	assert.Equal(t, "https://storage.example.com", NewStubObjectStorage().BaseURL)
	assert.Equal(t, "http://minio.local", NewStubObjectStorage("http://minio.local").BaseURL)
	assert.Equal(t, "https://storage.example.com", NewStubObjectStorage("").BaseURL)
}

func TestStubObjectStorage_GenerateUploadURL(t *testing.T) {
	s := NewStubObjectStorage("http://files.local/")
	fixed := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	t.Run("url depends only on key and content type", func(t *testing.T) {
		first, expiresAt, err := s.GenerateUploadURL(ctx, "space-photos/2026/10/a.jpg", "image/jpeg", 15*time.Minute)
		require.NoError(t, err)
		second, _, err := s.GenerateUploadURL(ctx, "space-photos/2026/10/a.jpg", "image/jpeg", time.Hour)
		require.NoError(t, err)

		assert.Equal(t, "http://files.local/upload/space-photos/2026/10/a.jpg?content_type=image%2Fjpeg", first)
		assert.Equal(t, first, second)
		assert.Equal(t, fixed.Add(15*time.Minute), expiresAt)
	})

	t.Run("empty storage key", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/jpeg", 15*time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})
}

func TestStubObjectStorage_ObjectURL(t *testing.T) {
	s := NewStubObjectStorage("http://files.local/")
	assert.Equal(t, "http://files.local/contract-documents/x.pdf", s.ObjectURL("contract-documents/x.pdf"))
	assert.Equal(t, "http://files.local/contract-documents/x.pdf", s.ObjectURL("/contract-documents/x.pdf"))
}
