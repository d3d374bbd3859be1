package leasing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles tenant directory operations.
// Deletion goes through LifecycleService.DeleteTenant.
type TenantService struct {
	tenants leasing.TenantRepository
	logger  *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(tenants leasing.TenantRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{tenants: tenants, logger: logger}
}

// Create creates a tenant without a contract
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := newTenantFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, storeErr("create tenant", err)
	}

	s.logger.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()))
	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load tenant", err)
	}
	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// List returns a page of tenants; search matches name, phone and company
func (s *TenantService) List(ctx context.Context, q TenantListQuery) (shared.Paginated[TenantResponse], error) {
	filter := leasing.TenantFilter{
		Filter: toFilter(q.Page, q.PageSize, q.OrderBy, q.OrderDir, q.Search),
	}

	tenants, err := s.tenants.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[TenantResponse]{}, storeErr("list tenants", err)
	}
	total, err := s.tenants.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[TenantResponse]{}, storeErr("count tenants", err)
	}

	items := make([]TenantResponse, len(tenants))
	for i := range tenants {
		items[i] = ToTenantResponse(&tenants[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update applies a partial update to a tenant
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load tenant", err)
	}

	if req.FullName != nil || req.Phone != nil {
		name, phone := tenant.FullName, tenant.Phone
		if req.FullName != nil {
			name = *req.FullName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := tenant.Rename(name, phone); err != nil {
			return nil, err
		}
	}
	if req.CompanyName != nil {
		tenant.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.TaxID != nil {
		tenant.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Email != nil {
		tenant.Email = strings.TrimSpace(*req.Email)
	}
	if req.Messenger != nil {
		tenant.Messenger = strings.TrimSpace(*req.Messenger)
	}
	if req.Notes != nil {
		tenant.Notes = strings.TrimSpace(*req.Notes)
	}
	tenant.Touch()

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, storeErr("update tenant", err)
	}
	resp := ToTenantResponse(tenant)
	return &resp, nil
}
