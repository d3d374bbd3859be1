package leasing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SpaceService handles space catalog operations
type SpaceService struct {
	spaces    leasing.SpaceRepository
	contracts leasing.ContractRepository
	logger    *zap.Logger
}

// NewSpaceService creates a new SpaceService
func NewSpaceService(spaces leasing.SpaceRepository, contracts leasing.ContractRepository, logger *zap.Logger) *SpaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpaceService{spaces: spaces, contracts: contracts, logger: logger}
}

// Create creates a new vacant space
func (s *SpaceService) Create(ctx context.Context, req CreateSpaceRequest) (*SpaceResponse, error) {
	space, err := leasing.NewSpace(req.Code)
	if err != nil {
		return nil, err
	}
	space.Sector = strings.TrimSpace(req.Sector)
	space.Row = strings.TrimSpace(req.Row)
	space.Place = strings.TrimSpace(req.Place)
	space.Description = strings.TrimSpace(req.Description)
	space.PhotoURLs = req.PhotoURLs

	if err := space.SetArea(req.Area); err != nil {
		return nil, err
	}
	if err := space.SetType(spaceType(req.Type)); err != nil {
		return nil, err
	}
	if err := space.SetBaseRent(req.BaseRent); err != nil {
		return nil, err
	}

	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, storeErr("create space", err)
	}

	s.logger.Info("Space created",
		zap.String("space_id", space.ID.String()),
		zap.String("code", space.Code),
	)
	resp := ToSpaceResponse(space)
	return &resp, nil
}

// GetByID retrieves a space by ID
func (s *SpaceService) GetByID(ctx context.Context, id uuid.UUID) (*SpaceResponse, error) {
	space, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load space", err)
	}
	resp := ToSpaceResponse(space)
	return &resp, nil
}

// List returns a page of spaces
func (s *SpaceService) List(ctx context.Context, q SpaceListQuery) (shared.Paginated[SpaceResponse], error) {
	filter := leasing.SpaceFilter{
		Filter: toFilter(q.Page, q.PageSize, q.OrderBy, q.OrderDir, q.Search),
		Sector: strings.TrimSpace(q.Sector),
	}
	if q.Status != "" {
		status := leasing.SpaceStatus(q.Status)
		filter.Status = &status
	}
	if q.Type != "" {
		t := leasing.SpaceType(q.Type)
		filter.Type = &t
	}

	spaces, err := s.spaces.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SpaceResponse]{}, storeErr("list spaces", err)
	}
	total, err := s.spaces.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[SpaceResponse]{}, storeErr("count spaces", err)
	}

	items := make([]SpaceResponse, len(spaces))
	for i := range spaces {
		items[i] = ToSpaceResponse(&spaces[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update applies a partial update to a space
func (s *SpaceService) Update(ctx context.Context, id uuid.UUID, req UpdateSpaceRequest) (*SpaceResponse, error) {
	space, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load space", err)
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, shared.NewValidationError("code", "Space code is required")
		}
		space.Code = code
	}
	if req.Sector != nil {
		space.Sector = strings.TrimSpace(*req.Sector)
	}
	if req.Row != nil {
		space.Row = strings.TrimSpace(*req.Row)
	}
	if req.Place != nil {
		space.Place = strings.TrimSpace(*req.Place)
	}
	if req.Description != nil {
		space.Description = strings.TrimSpace(*req.Description)
	}
	if req.PhotoURLs != nil {
		space.PhotoURLs = req.PhotoURLs
	}
	if req.Area != nil {
		if err := space.SetArea(req.Area); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		if err := space.SetType(spaceType(req.Type)); err != nil {
			return nil, err
		}
	}
	if req.BaseRent != nil {
		if err := space.SetBaseRent(req.BaseRent); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		status := leasing.SpaceStatus(*req.Status)
		var held bool
		if status == leasing.SpaceStatusVacant || status == leasing.SpaceStatusOccupied {
			if held, err = s.contracts.ExistsActiveForSpace(ctx, id); err != nil {
				return nil, storeErr("check active contract", err)
			}
		}
		if err := space.SetManualStatus(status, held); err != nil {
			return nil, err
		}
	}
	space.Touch()

	if err := s.spaces.Save(ctx, space); err != nil {
		return nil, storeErr("update space", err)
	}
	resp := ToSpaceResponse(space)
	return &resp, nil
}

// Delete deletes a space that no active contract references
func (s *SpaceService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "space", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrSpaceID, id))
	defer span.End()

	if _, err := s.spaces.FindByID(ctx, id); err != nil {
		return fail(span, storeErr("load space", err))
	}
	held, err := s.contracts.ExistsActiveForSpace(ctx, id)
	if err != nil {
		return fail(span, storeErr("check active contract", err))
	}
	if held {
		return fail(span, shared.ErrContractActive)
	}
	if err := s.spaces.Delete(ctx, id); err != nil {
		return fail(span, storeErr("delete space", err))
	}

	s.logger.Info("Space deleted", zap.String("space_id", id.String()))
	return nil
}

// SpaceCountsByStatus reports space counts keyed by status name
func (s *SpaceService) SpaceCountsByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.spaces.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out, nil
}

func spaceType(raw *string) *leasing.SpaceType {
	if raw == nil || *raw == "" {
		return nil
	}
	t := leasing.SpaceType(*raw)
	return &t
}
