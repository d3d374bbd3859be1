package leasing

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage issues presigned upload URLs for an object store
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// ObjectURL returns the URL the object is served from once uploaded
	ObjectURL(storageKey string) string
}

// UploadKind names a class of uploaded file
type UploadKind string

const (
	UploadContractDocument UploadKind = "contract-documents"
	UploadSpacePhoto       UploadKind = "space-photos"
)

var allowedUploadTypes = map[UploadKind]map[string]string{
	UploadContractDocument: {
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	},
	UploadSpacePhoto: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	},
}

// UploadService hands out presigned URLs for contract documents and space photos.
// File content never passes through the service.
type UploadService struct {
	storage   ObjectStorage
	expiresIn time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewUploadService creates a new UploadService
func NewUploadService(storage ObjectStorage, expiresIn time.Duration, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return &UploadService{storage: storage, expiresIn: expiresIn, logger: logger, now: time.Now}
}

// IssueUploadURL validates the file type and returns where to upload it
func (s *UploadService) IssueUploadURL(ctx context.Context, kind UploadKind, req UploadRequest) (*UploadResponse, error) {
	types, ok := allowedUploadTypes[kind]
	if !ok {
		return nil, shared.NewValidationError("kind", "Unknown upload kind")
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := types[contentType]
	if !ok {
		return nil, shared.NewValidationError("content_type", "File type is not allowed")
	}
	if name := strings.TrimSpace(req.FileName); name == "" || path.Base(name) == "." {
		return nil, shared.NewValidationError("file_name", "File name is required")
	}

	key := uploadKey(kind, s.now(), ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.expiresIn)
	if err != nil {
		s.logger.Error("Failed to issue upload URL", zap.String("key", key), zap.Error(err))
		return nil, shared.NewPersistenceError("issue upload url", err)
	}

	return &UploadResponse{
		UploadURL: uploadURL,
		FileURL:   s.storage.ObjectURL(key),
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// uploadKey builds <kind>/<yyyy>/<mm>/<uuid><ext>; the caller's file name is not used
func uploadKey(kind UploadKind, now time.Time, ext string) string {
	return path.Join(string(kind), now.UTC().Format("2006/01"), uuid.New().String()+ext)
}
