package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSpaceRepository implements leasing.SpaceRepository using GORM
type GormSpaceRepository struct {
	db *gorm.DB
}

// NewGormSpaceRepository creates a new GormSpaceRepository
func NewGormSpaceRepository(db *gorm.DB) *GormSpaceRepository {
	return &GormSpaceRepository{db: db}
}

// FindByID finds a space by its ID
func (r *GormSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Space, error) {
	var model models.SpaceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "space")
	}
	return model.ToDomain(), nil
}

// FindByCode finds a space by its unique code
func (r *GormSpaceRepository) FindByCode(ctx context.Context, code string) (*leasing.Space, error) {
	var model models.SpaceModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, notFound(err, "space")
	}
	return model.ToDomain(), nil
}

// FindAll finds spaces matching the filter
func (r *GormSpaceRepository) FindAll(ctx context.Context, filter leasing.SpaceFilter) ([]leasing.Space, error) {
	var spaceModels []models.SpaceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SpaceModel{}), filter)
	query = paginate(query, filter.Filter, SpaceSortFields, "code")
	if err := query.Find(&spaceModels).Error; err != nil {
		return nil, err
	}
	spaces := make([]leasing.Space, len(spaceModels))
	for i := range spaceModels {
		spaces[i] = *spaceModels[i].ToDomain()
	}
	return spaces, nil
}

// Count counts spaces matching the filter
func (r *GormSpaceRepository) Count(ctx context.Context, filter leasing.SpaceFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SpaceModel{}), filter).Count(&count).Error
	return count, err
}

// CountByStatus counts spaces per status
func (r *GormSpaceRepository) CountByStatus(ctx context.Context) (map[leasing.SpaceStatus]int64, error) {
	var rows []struct {
		Status leasing.SpaceStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.SpaceModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[leasing.SpaceStatus]int64{
		leasing.SpaceStatusVacant:      0,
		leasing.SpaceStatusOccupied:    0,
		leasing.SpaceStatusMaintenance: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// Create inserts a new space
func (r *GormSpaceRepository) Create(ctx context.Context, space *leasing.Space) error {
	err := r.db.WithContext(ctx).Create(models.SpaceModelFromDomain(space)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Space code already exists")
	}
	return err
}

// Save updates an existing space
func (r *GormSpaceRepository) Save(ctx context.Context, space *leasing.Space) error {
	err := r.db.WithContext(ctx).Save(models.SpaceModelFromDomain(space)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Space code already exists")
	}
	return err
}

// Delete removes a space. Contract history referencing it blocks the delete.
func (r *GormSpaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SpaceModel{}, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
		return shared.NewDomainError(shared.CodeInvalidState, "Space is referenced by contracts")
	}
	return deleteResult(result, "space")
}

// UpdateStatus sets the status of the given spaces. Spaces under maintenance
// are left untouched; only an operator moves a space out of maintenance.
func (r *GormSpaceRepository) UpdateStatus(ctx context.Context, ids []uuid.UUID, status leasing.SpaceStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.SpaceModel{}).
		Where("id IN ? AND status <> ?", ids, leasing.SpaceStatusMaintenance).
		Updates(map[string]any{
			"status":     status,
			"updated_at": r.db.NowFunc(),
		}).Error
}

func (r *GormSpaceRepository) applyFilter(query *gorm.DB, filter leasing.SpaceFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if sector := strings.TrimSpace(filter.Sector); sector != "" {
		query = query.Where("sector = ?", sector)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(strings.ToLower(search))
		query = query.Where("(LOWER(code) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	return query
}

var _ leasing.SpaceRepository = (*GormSpaceRepository)(nil)
