package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	leasingapp "github.com/marketrent/backend/internal/application/leasing"
)

// StubObjectStorage is used when storage is disabled. Upload URLs depend only
// on the key and content type, so clients and tests can predict them.
type StubObjectStorage struct {
	BaseURL string
	now     func() time.Time
}

var _ leasingapp.ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a stub rooted at baseURL, or
// "https://storage.example.com" when baseURL is empty
func NewStubObjectStorage(baseURL ...string) *StubObjectStorage {
	s := &StubObjectStorage{BaseURL: "https://storage.example.com", now: time.Now}
	if len(baseURL) > 0 && baseURL[0] != "" {
		s.BaseURL = baseURL[0]
	}
	return s
}

// GenerateUploadURL returns a fake upload URL for storageKey
func (s *StubObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	q := url.Values{}
	q.Set("content_type", contentType)
	return s.root() + "/upload/" + strings.TrimLeft(storageKey, "/") + "?" + q.Encode(), s.now().Add(expiresIn), nil
}

// ObjectURL returns where storageKey would be served from
func (s *StubObjectStorage) ObjectURL(storageKey string) string {
	return s.root() + "/" + strings.TrimLeft(storageKey, "/")
}

func (s *StubObjectStorage) root() string {
	return strings.TrimRight(s.BaseURL, "/")
}
