package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormContractRepository implements leasing.ContractRepository using GORM.
// The uniq_contracts_active_space partial index rejects a second active
// contract on a space; the violation surfaces as shared.ErrSpaceOccupied.
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "contract")
	}
	return model.ToDomain(), nil
}

// FindAll finds contracts matching the filter
func (r *GormContractRepository) FindAll(ctx context.Context, filter leasing.ContractFilter) ([]leasing.Contract, error) {
	var contractModels []models.ContractModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContractModel{}), filter)
	query = paginate(query, filter.Filter, ContractSortFields, "created_at")
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, err
	}
	return toContracts(contractModels), nil
}

// Count counts contracts matching the filter
func (r *GormContractRepository) Count(ctx context.Context, filter leasing.ContractFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContractModel{}), filter).Count(&count).Error
	return count, err
}

// FindByTenant returns every contract referencing the tenant
func (r *GormContractRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.Contract, error) {
	var contractModels []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&contractModels).Error; err != nil {
		return nil, err
	}
	return toContracts(contractModels), nil
}

// FindActiveBySpace returns the active contract on a space
func (r *GormContractRepository) FindActiveBySpace(ctx context.Context, spaceID uuid.UUID) (*leasing.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("space_id = ? AND status = ?", spaceID, leasing.ContractStatusActive).
		First(&model).Error; err != nil {
		return nil, notFound(err, "active contract")
	}
	return model.ToDomain(), nil
}

// ExistsActiveForSpace reports whether an active contract references the space
func (r *GormContractRepository) ExistsActiveForSpace(ctx context.Context, spaceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("space_id = ? AND status = ?", spaceID, leasing.ContractStatusActive).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a contract
func (r *GormContractRepository) Create(ctx context.Context, contract *leasing.Contract) error {
	return translateActiveSpace(r.db.WithContext(ctx).Create(models.ContractModelFromDomain(contract)).Error)
}

// Save updates an existing contract
func (r *GormContractRepository) Save(ctx context.Context, contract *leasing.Contract) error {
	return translateActiveSpace(r.db.WithContext(ctx).Save(models.ContractModelFromDomain(contract)).Error)
}

// Delete removes a contract
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.ContractModel{}, "id = ?", id), "contract")
}

// DeleteByTenant removes every contract referencing the tenant
func (r *GormContractRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ContractModel{}, "tenant_id = ?", tenantID).Error
}

// SumActiveRent totals the monthly rent of active contracts
func (r *GormContractRepository) SumActiveRent(ctx context.Context) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Cnt   int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Select("COALESCE(SUM(monthly_rent), 0) AS total, COUNT(*) AS cnt").
		Where("status = ?", leasing.ContractStatusActive).
		Scan(&row).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total.Round(2), row.Cnt, nil
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter leasing.ContractFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.SpaceID != nil {
		query = query.Where("space_id = ?", *filter.SpaceID)
	}
	return query
}

func translateActiveSpace(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrSpaceOccupied
	}
	return err
}

func toContracts(contractModels []models.ContractModel) []leasing.Contract {
	contracts := make([]leasing.Contract, len(contractModels))
	for i := range contractModels {
		contracts[i] = *contractModels[i].ToDomain()
	}
	return contracts
}

var _ leasing.ContractRepository = (*GormContractRepository)(nil)
