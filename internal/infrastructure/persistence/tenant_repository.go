package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements leasing.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "tenant")
	}
	return model.ToDomain(), nil
}

// FindAll finds tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter leasing.TenantFilter) ([]leasing.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter)
	query = paginate(query, filter.Filter, TenantSortFields, "full_name")
	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	tenants := make([]leasing.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants, nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter leasing.TenantFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter).Count(&count).Error
	return count, err
}

// Create inserts a new tenant
func (r *GormTenantRepository) Create(ctx context.Context, tenant *leasing.Tenant) error {
	return r.db.WithContext(ctx).Create(models.TenantModelFromDomain(tenant)).Error
}

// Save updates an existing tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *leasing.Tenant) error {
	return r.db.WithContext(ctx).Save(models.TenantModelFromDomain(tenant)).Error
}

// Delete removes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id), "tenant")
}

func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter leasing.TenantFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(strings.ToLower(search))
		query = query.Where(
			"(LOWER(full_name) LIKE ? ESCAPE '\\' OR phone LIKE ? ESCAPE '\\' OR LOWER(company_name) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern,
		)
	}
	return query
}

var _ leasing.TenantRepository = (*GormTenantRepository)(nil)
