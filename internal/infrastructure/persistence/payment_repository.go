package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements leasing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return model.ToDomain(), nil
}

// FindAll finds payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter leasing.PaymentFilter) ([]leasing.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
	query = paginate(query, filter.Filter, PaymentSortFields, "period_start")
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]leasing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter leasing.PaymentFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter).Count(&count).Error
	return count, err
}

// Create inserts a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *leasing.Payment) error {
	return r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error
}

// Save updates an existing payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *leasing.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error
}

// Delete removes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id), "payment")
}

// MarkOverdue sets status overdue on pending and partial payments whose
// period ended before the given day, in a single statement.
func (r *GormPaymentRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("status IN ? AND period_end < ?",
			[]leasing.PaymentStatus{leasing.PaymentStatusPending, leasing.PaymentStatusPartial}, before).
		Updates(map[string]any{
			"status":     leasing.PaymentStatusOverdue,
			"updated_at": r.db.NowFunc(),
		})
	return result.RowsAffected, result.Error
}

// Totals sums payments whose period starts within [from, to)
func (r *GormPaymentRepository) Totals(ctx context.Context, from, to time.Time) (leasing.PaymentTotals, error) {
	var row struct {
		Charged decimal.Decimal
		Paid    decimal.Decimal
		Cnt     int64
	}
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(charged_amount), 0) AS charged, COALESCE(SUM(paid_amount), 0) AS paid, COUNT(*) AS cnt").
		Where("period_start >= ? AND period_start < ?", from, to).
		Scan(&row).Error; err != nil {
		return leasing.PaymentTotals{}, err
	}
	return leasing.PaymentTotals{
		Charged: row.Charged.Round(2),
		Paid:    row.Paid.Round(2),
		Count:   row.Cnt,
	}, nil
}

// CountByStatus counts payments with the given status
func (r *GormPaymentRepository) CountByStatus(ctx context.Context, status leasing.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter leasing.PaymentFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ContractID != nil {
		query = query.Where("contract_id = ?", *filter.ContractID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.SpaceID != nil {
		query = query.Where("space_id = ?", *filter.SpaceID)
	}
	if filter.PeriodFrom != nil {
		query = query.Where("period_end >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		query = query.Where("period_start <= ?", *filter.PeriodTo)
	}
	return query
}

var _ leasing.PaymentRepository = (*GormPaymentRepository)(nil)
