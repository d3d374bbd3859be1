package leasing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LifecycleService keeps space occupancy, contract status and payment
// settlement consistent across the multi-step lease operations.
//
// Writes are independent repository calls. The only unwound write is the
// tenant inserted by CreateTenantWithContract when its contract cannot be
// stored. Occupancy sync failures are logged and never fail the operation.
type LifecycleService struct {
	spaces    leasing.SpaceRepository
	tenants   leasing.TenantRepository
	contracts leasing.ContractRepository
	payments  leasing.PaymentRepository

	logger  *zap.Logger
	metrics *telemetry.LeaseMetrics
	now     func() time.Time
}

// LifecycleOption configures a LifecycleService
type LifecycleOption func(*LifecycleService)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) LifecycleOption {
	return func(s *LifecycleService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the lease metrics recorder
func WithMetrics(metrics *telemetry.LeaseMetrics) LifecycleOption {
	return func(s *LifecycleService) {
		s.metrics = metrics
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) LifecycleOption {
	return func(s *LifecycleService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	spaces leasing.SpaceRepository,
	tenants leasing.TenantRepository,
	contracts leasing.ContractRepository,
	payments leasing.PaymentRepository,
	opts ...LifecycleOption,
) *LifecycleService {
	s := &LifecycleService{
		spaces:    spaces,
		tenants:   tenants,
		contracts: contracts,
		payments:  payments,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTenantWithContract onboards a tenant together with their first contract.
// If the contract cannot be stored the tenant is deleted again.
func (s *LifecycleService) CreateTenantWithContract(ctx context.Context, req CreateTenantWithContractRequest) (*TenantWithContractResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "create_tenant_with_contract")
	defer span.End()

	tenant, err := newTenantFromRequest(req.Tenant)
	if err != nil {
		return nil, fail(span, err)
	}
	terms := req.Contract.terms()
	if err := terms.Validate(); err != nil {
		return nil, fail(span, err)
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenant.ID,
		telemetry.SpanAttrSpaceID, terms.SpaceID,
	)

	if err := s.ensureSpaceFree(ctx, terms.SpaceID); err != nil {
		return nil, fail(span, err)
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, fail(span, storeErr("create tenant", err))
	}

	contract, err := s.insertContract(ctx, tenant.ID, terms)
	if err != nil {
		s.compensateTenant(ctx, tenant.ID, err)
		return nil, fail(span, err)
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrContractID, contract.ID)

	s.syncOccupancy(ctx, "create_tenant_with_contract", contract.SpaceID,
		leasing.ContractEvent{Kind: leasing.ContractCreated, To: contract.Status})
	s.metrics.RecordContractCreated(ctx, "create_tenant_with_contract")

	s.logger.Info("Tenant onboarded with contract",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("contract_id", contract.ID.String()),
		zap.String("space_id", contract.SpaceID.String()),
	)
	telemetry.SetOK(span)

	return &TenantWithContractResponse{
		Tenant:   ToTenantResponse(tenant),
		Contract: ToContractResponse(contract),
	}, nil
}

// CreateContract creates an active contract for an existing tenant
func (s *LifecycleService) CreateContract(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "create_contract")
	defer span.End()

	if req.TenantID == uuid.Nil {
		return nil, fail(span, shared.NewValidationError("tenant_id", "Tenant is required"))
	}
	terms := req.terms()
	if err := terms.Validate(); err != nil {
		return nil, fail(span, err)
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, req.TenantID,
		telemetry.SpanAttrSpaceID, terms.SpaceID,
	)

	if _, err := s.tenants.FindByID(ctx, req.TenantID); err != nil {
		return nil, fail(span, storeErr("load tenant", err))
	}
	if err := s.ensureSpaceFree(ctx, terms.SpaceID); err != nil {
		return nil, fail(span, err)
	}

	contract, err := s.insertContract(ctx, req.TenantID, terms)
	if err != nil {
		return nil, fail(span, err)
	}

	s.syncOccupancy(ctx, "create_contract", contract.SpaceID,
		leasing.ContractEvent{Kind: leasing.ContractCreated, To: contract.Status})
	s.metrics.RecordContractCreated(ctx, "create_contract")

	s.logger.Info("Contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("tenant_id", contract.TenantID.String()),
		zap.String("space_id", contract.SpaceID.String()),
	)
	telemetry.SetOK(span)

	resp := ToContractResponse(contract)
	return &resp, nil
}

// UpdateContract applies a partial update. A status change moves the space
// the contract held when it was loaded.
func (s *LifecycleService) UpdateContract(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "update_contract",
		telemetry.WithAttribute(telemetry.SpanAttrContractID, id))
	defer span.End()

	contract, err := s.updateContract(ctx, id, req.update())
	if err != nil {
		return nil, fail(span, err)
	}
	telemetry.SetOK(span)

	resp := ToContractResponse(contract)
	return &resp, nil
}

// TerminateContract ends a contract today
func (s *LifecycleService) TerminateContract(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "terminate_contract",
		telemetry.WithAttribute(telemetry.SpanAttrContractID, id))
	defer span.End()

	status := leasing.ContractStatusTerminated
	today := shared.DateOf(s.now())
	contract, err := s.updateContract(ctx, id, leasing.ContractUpdate{
		Status:  &status,
		EndDate: &today,
	})
	if err != nil {
		return nil, fail(span, err)
	}
	telemetry.SetOK(span)

	resp := ToContractResponse(contract)
	return &resp, nil
}

func (s *LifecycleService) updateContract(ctx context.Context, id uuid.UUID, update leasing.ContractUpdate) (*leasing.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load contract", err)
	}
	previous := contract.Status
	spaceID := contract.SpaceID

	// a contract that has not started yet ends on its start date
	if update.EndDate != nil && update.Status != nil && *update.Status == leasing.ContractStatusTerminated &&
		update.StartDate == nil && update.EndDate.Before(contract.StartDate) {
		end := contract.StartDate
		update.EndDate = &end
	}

	if err := contract.Apply(update); err != nil {
		return nil, err
	}

	if contract.Status == leasing.ContractStatusActive && previous != leasing.ContractStatusActive {
		if err := s.ensureSpaceFree(ctx, spaceID); err != nil {
			return nil, err
		}
	}

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, storeErr("update contract", err)
	}

	if contract.Status != previous {
		s.syncOccupancy(ctx, "update_contract", spaceID, leasing.ContractEvent{
			Kind: leasing.ContractStatusChanged,
			From: previous,
			To:   contract.Status,
		})
		if contract.Status == leasing.ContractStatusTerminated {
			s.metrics.RecordContractTerminated(ctx)
		}
		s.logger.Info("Contract status changed",
			zap.String("contract_id", contract.ID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(contract.Status)),
		)
	}
	return contract, nil
}

// DeleteContract deletes a contract that is no longer active and frees its space
func (s *LifecycleService) DeleteContract(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "delete_contract",
		telemetry.WithAttribute(telemetry.SpanAttrContractID, id))
	defer span.End()

	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return fail(span, storeErr("load contract", err))
	}
	if contract.IsActive() {
		return fail(span, shared.ErrContractActive)
	}
	spaceID := contract.SpaceID

	if err := s.contracts.Delete(ctx, id); err != nil {
		return fail(span, storeErr("delete contract", err))
	}

	// another contract may hold the space since this one ended
	held, err := s.contracts.ExistsActiveForSpace(ctx, spaceID)
	switch {
	case err != nil:
		s.logger.Warn("Skipping space sync after contract delete",
			zap.String("space_id", spaceID.String()),
			zap.Error(err),
		)
		s.metrics.RecordOccupancySyncFailure(ctx, "delete_contract")
	case !held:
		s.syncOccupancy(ctx, "delete_contract", spaceID, leasing.ContractEvent{Kind: leasing.ContractDeleted})
	}

	s.logger.Info("Contract deleted", zap.String("contract_id", id.String()))
	telemetry.SetOK(span)
	return nil
}

// DeleteTenant vacates the spaces of the tenant's active contracts, deletes
// every contract of the tenant and then the tenant. Each step is idempotent,
// so a failed call can be retried.
func (s *LifecycleService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "delete_tenant",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, id))
	defer span.End()

	if _, err := s.tenants.FindByID(ctx, id); err != nil {
		return fail(span, storeErr("load tenant", err))
	}

	contracts, err := s.contracts.FindByTenant(ctx, id)
	if err != nil {
		return fail(span, storeErr("load tenant contracts", err))
	}

	var occupied []uuid.UUID
	for _, c := range contracts {
		if c.IsActive() {
			occupied = append(occupied, c.SpaceID)
		}
	}
	if len(occupied) > 0 {
		if err := s.spaces.UpdateStatus(ctx, occupied, leasing.SpaceStatusVacant); err != nil {
			return fail(span, storeErr("vacate tenant spaces", err))
		}
	}

	if len(contracts) > 0 {
		if err := s.contracts.DeleteByTenant(ctx, id); err != nil {
			return fail(span, storeErr("delete tenant contracts", err))
		}
	}

	if err := s.tenants.Delete(ctx, id); err != nil {
		return fail(span, storeErr("delete tenant", err))
	}

	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", id.String()),
		zap.Int("contracts_deleted", len(contracts)),
		zap.Int("spaces_vacated", len(occupied)),
	)
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(contracts))
	telemetry.SetOK(span)
	return nil
}

// RecordPayment records money received for the active contract on a space.
// The charged amount and status are derived, never taken from the caller.
func (s *LifecycleService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "record_payment",
		telemetry.WithAttribute(telemetry.SpanAttrSpaceID, req.SpaceID))
	defer span.End()

	contract, err := s.contracts.FindActiveBySpace(ctx, req.SpaceID)
	if err != nil {
		if shared.ErrorCode(err) == shared.CodeNotFound {
			return nil, fail(span, shared.ErrNoActiveContract)
		}
		return nil, fail(span, storeErr("load active contract", err))
	}

	input := leasing.PaymentInput{
		PaidAmount:  req.PaidAmount,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Notes:       strings.TrimSpace(req.Notes),
		PaidAt:      req.PaidAt,
		SettledBy:   req.SettledBy,
	}
	if req.Method != nil {
		m := leasing.PaymentMethod(*req.Method)
		input.Method = &m
	}

	payment, err := leasing.NewPayment(contract, input, s.now())
	if err != nil {
		return nil, fail(span, err)
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fail(span, storeErr("create payment", err))
	}

	s.metrics.RecordPayment(ctx, string(payment.Status), payment.PaidAmount)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, payment.ID,
		telemetry.SpanAttrContractID, contract.ID,
		telemetry.SpanAttrAmount, payment.ChargedAmount,
		telemetry.SpanAttrStatus, string(payment.Status),
	)
	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("contract_id", contract.ID.String()),
		zap.String("charged", payment.ChargedAmount.String()),
		zap.String("paid", payment.PaidAmount.String()),
		zap.String("status", string(payment.Status)),
	)
	telemetry.SetOK(span)

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// ApplyPayment adds a settlement to an existing payment.
// Without an amount the remaining balance is settled.
func (s *LifecycleService) ApplyPayment(ctx context.Context, id uuid.UUID, req ApplyPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "apply_payment",
		telemetry.WithAttribute(telemetry.SpanAttrPaymentID, id))
	defer span.End()

	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, fail(span, storeErr("load payment", err))
	}

	before := payment.PaidAmount
	if err := payment.Apply(req.Amount, req.SettledBy, s.now()); err != nil {
		return nil, fail(span, err)
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, fail(span, storeErr("update payment", err))
	}

	delta := payment.PaidAmount.Sub(before)
	s.metrics.RecordPayment(ctx, string(payment.Status), delta)
	s.logger.Info("Payment settled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", delta.String()),
		zap.String("status", string(payment.Status)),
	)
	telemetry.SetOK(span)

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// ensureSpaceFree fails with ErrSpaceOccupied when the space already has an
// active contract. The unique index on active contracts is the final guard.
func (s *LifecycleService) ensureSpaceFree(ctx context.Context, spaceID uuid.UUID) error {
	held, err := s.contracts.ExistsActiveForSpace(ctx, spaceID)
	if err != nil {
		return storeErr("check active contract", err)
	}
	if held {
		return shared.ErrSpaceOccupied
	}
	return nil
}

// insertContract derives the rate per area and stores a new active contract
func (s *LifecycleService) insertContract(ctx context.Context, tenantID uuid.UUID, terms leasing.ContractTerms) (*leasing.Contract, error) {
	contract, err := leasing.NewActiveContract(tenantID, terms, s.ratePerArea(ctx, terms.SpaceID, terms.MonthlyRent))
	if err != nil {
		return nil, err
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, storeErr("create contract", err)
	}
	return contract, nil
}

// ratePerArea returns zero when the space cannot be read or has no area
func (s *LifecycleService) ratePerArea(ctx context.Context, spaceID uuid.UUID, monthlyRent decimal.Decimal) decimal.Decimal {
	space, err := s.spaces.FindByID(ctx, spaceID)
	if err != nil {
		s.logger.Debug("Space area unavailable, rate per area set to zero",
			zap.String("space_id", spaceID.String()),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return leasing.RatePerArea(monthlyRent, space.AreaOrZero())
}

// compensateTenant deletes a tenant whose contract insert failed
func (s *LifecycleService) compensateTenant(ctx context.Context, tenantID uuid.UUID, cause error) {
	s.metrics.RecordCompensation(ctx, "contract_insert")
	if err := s.tenants.Delete(ctx, tenantID); err != nil {
		s.logger.Error("Compensation failed, tenant left without contract",
			zap.String("tenant_id", tenantID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	s.logger.Warn("Contract insert failed, tenant removed",
		zap.String("tenant_id", tenantID.String()),
		zap.Error(cause),
	)
}

// syncOccupancy moves the space to the status implied by the contract event.
// A failed write is logged and counted but not returned.
func (s *LifecycleService) syncOccupancy(ctx context.Context, op string, spaceID uuid.UUID, ev leasing.ContractEvent) {
	target, ok := leasing.OccupancyTarget(ev)
	if !ok {
		return
	}
	if err := s.spaces.UpdateStatus(ctx, []uuid.UUID{spaceID}, target); err != nil {
		s.metrics.RecordOccupancySyncFailure(ctx, op)
		s.logger.Warn("Space status sync failed",
			zap.String("operation", op),
			zap.String("space_id", spaceID.String()),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		telemetry.AddEvent(trace.SpanFromContext(ctx), "occupancy_sync_failed",
			telemetry.SpanAttrSpaceID, spaceID)
	}
}

// newTenantFromRequest builds a tenant, validating the required fields
func newTenantFromRequest(req CreateTenantRequest) (*leasing.Tenant, error) {
	tenant, err := leasing.NewTenant(req.FullName, req.Phone)
	if err != nil {
		return nil, err
	}
	tenant.CompanyName = strings.TrimSpace(req.CompanyName)
	tenant.TaxID = strings.TrimSpace(req.TaxID)
	tenant.Email = strings.TrimSpace(req.Email)
	tenant.Messenger = strings.TrimSpace(req.Messenger)
	tenant.Notes = strings.TrimSpace(req.Notes)
	return tenant, nil
}
