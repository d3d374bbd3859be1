package leasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentService serves payment reads and deletes.
// Recording and settling go through LifecycleService.
type PaymentService struct {
	payments leasing.PaymentRepository
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments leasing.PaymentRepository, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{payments: payments, logger: logger}
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load payment", err)
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns a page of payments
func (s *PaymentService) List(ctx context.Context, q PaymentListQuery) (shared.Paginated[PaymentResponse], error) {
	filter := leasing.PaymentFilter{
		Filter:     toFilter(q.Page, q.PageSize, q.OrderBy, q.OrderDir, ""),
		PeriodFrom: q.PeriodFrom,
		PeriodTo:   q.PeriodTo,
	}
	if q.Status != "" {
		status := leasing.PaymentStatus(q.Status)
		filter.Status = &status
	}
	var err error
	if filter.ContractID, err = parseOptionalID("contract_id", q.ContractID); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	if filter.TenantID, err = parseOptionalID("tenant_id", q.TenantID); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	if filter.SpaceID, err = parseOptionalID("space_id", q.SpaceID); err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	if filter.PeriodFrom != nil && filter.PeriodTo != nil && filter.PeriodTo.Before(*filter.PeriodFrom) {
		return shared.Paginated[PaymentResponse]{}, shared.ErrInvalidPeriod
	}

	payments, err := s.payments.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, storeErr("list payments", err)
	}
	total, err := s.payments.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, storeErr("count payments", err)
	}

	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.payments.Delete(ctx, id); err != nil {
		return storeErr("delete payment", err)
	}
	s.logger.Info("Payment deleted", zap.String("payment_id", id.String()))
	return nil
}
