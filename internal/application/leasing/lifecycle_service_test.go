package leasing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

type lifecycleFixture struct {
	svc       *LifecycleService
	spaces    *MockSpaceRepository
	tenants   *MockTenantRepository
	contracts *MockContractRepository
	payments  *MockPaymentRepository
}

func newLifecycleFixture(opts ...LifecycleOption) *lifecycleFixture {
	f := &lifecycleFixture{
		spaces:    new(MockSpaceRepository),
		tenants:   new(MockTenantRepository),
		contracts: new(MockContractRepository),
		payments:  new(MockPaymentRepository),
	}
	opts = append([]LifecycleOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	f.svc = NewLifecycleService(f.spaces, f.tenants, f.contracts, f.payments, opts...)
	return f
}

func (f *lifecycleFixture) assertExpectations(t *testing.T) {
	f.spaces.AssertExpectations(t)
	f.tenants.AssertExpectations(t)
	f.contracts.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func newSpaceWithArea(t *testing.T, code string, area int64) *leasing.Space {
	t.Helper()
	space, err := leasing.NewSpace(code)
	require.NoError(t, err)
	if area > 0 {
		a := decimal.NewFromInt(area)
		require.NoError(t, space.SetArea(&a))
	}
	return space
}

func contractInput(spaceID uuid.UUID) ContractInput {
	return ContractInput{
		SpaceID:     spaceID,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: decimal.NewFromInt(45000),
		DocumentURL: "https://files.example.com/contract-documents/2026/01/a.pdf",
	}
}

func onboardRequest(spaceID uuid.UUID) CreateTenantWithContractRequest {
	return CreateTenantWithContractRequest{
		Tenant:   CreateTenantRequest{FullName: "Aigerim Sadykova", Phone: "+7 701 000 0000"},
		Contract: contractInput(spaceID),
	}
}

func activeContract(t *testing.T, spaceID uuid.UUID) *leasing.Contract {
	t.Helper()
	c, err := leasing.NewActiveContract(uuid.New(), contractInput(spaceID).terms(), decimal.Zero)
	require.NoError(t, err)
	return c
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, shared.ErrorCode(err), "unexpected error: %v", err)
}

func TestLifecycleService_CreateTenantWithContract_Success(t *testing.T) {
	f := newLifecycleFixture()
	ctx := context.Background()
	space := newSpaceWithArea(t, "A-01", 30)

	f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
	f.tenants.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Tenant")).Return(nil)
	f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
	f.contracts.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Contract")).Return(nil)
	f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{space.ID}, leasing.SpaceStatusOccupied).Return(nil)

	result, err := f.svc.CreateTenantWithContract(ctx, onboardRequest(space.ID))

	require.NoError(t, err)
	assert.Equal(t, "Aigerim Sadykova", result.Tenant.FullName)
	assert.Equal(t, result.Tenant.ID, result.Contract.TenantID)
	assert.Equal(t, "active", result.Contract.Status)
	require.NotNil(t, result.Contract.RatePerArea)
	assert.True(t, decimal.NewFromInt(1500).Equal(*result.Contract.RatePerArea))
	f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestLifecycleService_CreateTenantWithContract_ValidationBeforeWrites(t *testing.T) {
	f := newLifecycleFixture()
	req := onboardRequest(uuid.New())
	req.Contract.DocumentURL = ""

	_, err := f.svc.CreateTenantWithContract(context.Background(), req)

	requireCode(t, err, shared.CodeValidation)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "document_url", domainErr.Field)
	f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.contracts.AssertNotCalled(t, "ExistsActiveForSpace", mock.Anything, mock.Anything)
}

func TestLifecycleService_CreateTenantWithContract_MissingTenantName(t *testing.T) {
	f := newLifecycleFixture()
	req := onboardRequest(uuid.New())
	req.Tenant.FullName = "  "

	_, err := f.svc.CreateTenantWithContract(context.Background(), req)

	requireCode(t, err, shared.CodeValidation)
	f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLifecycleService_CreateTenantWithContract_SpaceOccupied(t *testing.T) {
	f := newLifecycleFixture()
	spaceID := uuid.New()
	f.contracts.On("ExistsActiveForSpace", mock.Anything, spaceID).Return(true, nil)

	_, err := f.svc.CreateTenantWithContract(context.Background(), onboardRequest(spaceID))

	assert.ErrorIs(t, err, shared.ErrSpaceOccupied)
	f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestLifecycleService_CreateTenantWithContract_CompensatesFailedContractInsert(t *testing.T) {
	tests := []struct {
		name     string
		insert   error
		wantCode string
	}{
		{name: "store failure", insert: errors.New("connection reset"), wantCode: shared.CodePersistence},
		{name: "lost the active-space race", insert: shared.ErrSpaceOccupied, wantCode: shared.CodeSpaceOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := sdkmetric.NewManualReader()
			mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			defer func() { _ = mp.Shutdown(context.Background()) }()
			metrics, err := telemetry.NewLeaseMetrics(telemetry.LeaseMetricsConfig{Meter: mp.Meter("test")})
			require.NoError(t, err)

			f := newLifecycleFixture(WithMetrics(metrics))
			space := newSpaceWithArea(t, "B-07", 0)

			var created *leasing.Tenant
			f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
			f.tenants.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Tenant")).
				Run(func(args mock.Arguments) { created = args.Get(1).(*leasing.Tenant) }).
				Return(nil)
			f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
			f.contracts.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Contract")).Return(tt.insert)
			f.tenants.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

			_, err = f.svc.CreateTenantWithContract(context.Background(), onboardRequest(space.ID))

			requireCode(t, err, tt.wantCode)
			require.NotNil(t, created)
			f.tenants.AssertCalled(t, "Delete", mock.Anything, created.ID)
			f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			f.assertExpectations(t)

			var rm metricdata.ResourceMetrics
			require.NoError(t, reader.Collect(context.Background(), &rm))
			var compensations int64
			for _, sm := range rm.ScopeMetrics {
				for _, m := range sm.Metrics {
					if m.Name != "market_compensation_total" {
						continue
					}
					for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
						compensations += dp.Value
					}
				}
			}
			assert.Equal(t, int64(1), compensations)
		})
	}
}

func TestLifecycleService_CreateTenantWithContract_FailedCompensationIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newLifecycleFixture(WithLogger(zap.New(core)))
	spaceID := uuid.New()

	f.contracts.On("ExistsActiveForSpace", mock.Anything, spaceID).Return(false, nil)
	f.tenants.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("FindByID", mock.Anything, spaceID).Return(nil, shared.NewNotFoundError("space"))
	f.contracts.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	f.tenants.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete failed"))

	_, err := f.svc.CreateTenantWithContract(context.Background(), onboardRequest(spaceID))

	requireCode(t, err, shared.CodePersistence)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Contains(t, logs.FilterLevelExact(zapcore.ErrorLevel).All()[0].Message, "Compensation failed")
}

func TestLifecycleService_CreateTenantWithContract_SyncFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newLifecycleFixture(WithLogger(zap.New(core)))
	space := newSpaceWithArea(t, "C-03", 12)

	f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
	f.tenants.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
	f.contracts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{space.ID}, leasing.SpaceStatusOccupied).
		Return(errors.New("deadlock detected"))

	result, err := f.svc.CreateTenantWithContract(context.Background(), onboardRequest(space.ID))

	require.NoError(t, err)
	assert.Equal(t, "active", result.Contract.Status)
	assert.Equal(t, 1, logs.FilterMessage("Space status sync failed").Len())
	f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLifecycleService_CreateTenantWithContract_UnknownAreaGivesZeroRate(t *testing.T) {
	f := newLifecycleFixture()
	space := newSpaceWithArea(t, "D-11", 0)

	f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
	f.tenants.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
	f.contracts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("UpdateStatus", mock.Anything, mock.Anything, leasing.SpaceStatusOccupied).Return(nil)

	result, err := f.svc.CreateTenantWithContract(context.Background(), onboardRequest(space.ID))

	require.NoError(t, err)
	require.NotNil(t, result.Contract.RatePerArea)
	assert.True(t, result.Contract.RatePerArea.IsZero())
}

func TestLifecycleService_CreateContract(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newLifecycleFixture()
		tenant, err := leasing.NewTenant("Bekzat Omarov", "+7 702 111 2233")
		require.NoError(t, err)
		space := newSpaceWithArea(t, "E-02", 15)

		f.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
		f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
		f.contracts.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{space.ID}, leasing.SpaceStatusOccupied).Return(nil)

		result, err := f.svc.CreateContract(context.Background(), CreateContractRequest{
			TenantID:      tenant.ID,
			ContractInput: contractInput(space.ID),
		})

		require.NoError(t, err)
		assert.Equal(t, tenant.ID, result.TenantID)
		assert.True(t, decimal.NewFromInt(3000).Equal(*result.RatePerArea))
		f.assertExpectations(t)
	})

	t.Run("tenant not found", func(t *testing.T) {
		f := newLifecycleFixture()
		tenantID := uuid.New()
		f.tenants.On("FindByID", mock.Anything, tenantID).Return(nil, shared.NewNotFoundError("tenant"))

		_, err := f.svc.CreateContract(context.Background(), CreateContractRequest{
			TenantID:      tenantID,
			ContractInput: contractInput(uuid.New()),
		})

		requireCode(t, err, shared.CodeNotFound)
		f.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("tenant required", func(t *testing.T) {
		f := newLifecycleFixture()
		_, err := f.svc.CreateContract(context.Background(), CreateContractRequest{ContractInput: contractInput(uuid.New())})
		requireCode(t, err, shared.CodeValidation)
	})
}

func TestLifecycleService_UpdateContract(t *testing.T) {
	t.Run("terminating vacates the space", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Save", mock.Anything, contract).Return(nil)
		f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{contract.SpaceID}, leasing.SpaceStatusVacant).Return(nil)

		status := "terminated"
		result, err := f.svc.UpdateContract(context.Background(), contract.ID, UpdateContractRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, "terminated", result.Status)
		f.assertExpectations(t)
	})

	t.Run("reactivating checks the space", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		contract.Status = leasing.ContractStatusExpired
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("ExistsActiveForSpace", mock.Anything, contract.SpaceID).Return(true, nil)

		status := "active"
		_, err := f.svc.UpdateContract(context.Background(), contract.ID, UpdateContractRequest{Status: &status})

		assert.ErrorIs(t, err, shared.ErrSpaceOccupied)
		f.contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rent change leaves the space alone", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Save", mock.Anything, contract).Return(nil)

		rent := decimal.NewFromInt(50000)
		result, err := f.svc.UpdateContract(context.Background(), contract.ID, UpdateContractRequest{MonthlyRent: &rent})

		require.NoError(t, err)
		assert.True(t, rent.Equal(result.MonthlyRent))
		f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newLifecycleFixture()
		id := uuid.New()
		f.contracts.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("contract"))

		_, err := f.svc.UpdateContract(context.Background(), id, UpdateContractRequest{})
		requireCode(t, err, shared.CodeNotFound)
	})
}

func TestLifecycleService_TerminateContract(t *testing.T) {
	t.Run("ends today", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Save", mock.Anything, contract).Return(nil)
		f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{contract.SpaceID}, leasing.SpaceStatusVacant).Return(nil)

		result, err := f.svc.TerminateContract(context.Background(), contract.ID)

		require.NoError(t, err)
		assert.Equal(t, "terminated", result.Status)
		require.NotNil(t, result.EndDate)
		assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), *result.EndDate)
	})

	t.Run("ending an expired contract leaves a newer tenant's space occupied", func(t *testing.T) {
		f := newLifecycleFixture()
		old := activeContract(t, uuid.New())
		old.Status = leasing.ContractStatusExpired
		f.contracts.On("FindByID", mock.Anything, old.ID).Return(old, nil)
		f.contracts.On("Save", mock.Anything, old).Return(nil)

		result, err := f.svc.TerminateContract(context.Background(), old.ID)

		require.NoError(t, err)
		assert.Equal(t, "terminated", result.Status)
		f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("future contract ends on its start date", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		contract.StartDate = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Save", mock.Anything, contract).Return(nil)
		f.spaces.On("UpdateStatus", mock.Anything, mock.Anything, leasing.SpaceStatusVacant).Return(nil)

		result, err := f.svc.TerminateContract(context.Background(), contract.ID)

		require.NoError(t, err)
		assert.Equal(t, contract.StartDate, *result.EndDate)
	})
}

func TestLifecycleService_DeleteContract(t *testing.T) {
	t.Run("active contract is refused", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

		err := f.svc.DeleteContract(context.Background(), contract.ID)

		assert.ErrorIs(t, err, shared.ErrContractActive)
		f.contracts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ended contract frees its space", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		contract.Status = leasing.ContractStatusExpired
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Delete", mock.Anything, contract.ID).Return(nil)
		f.contracts.On("ExistsActiveForSpace", mock.Anything, contract.SpaceID).Return(false, nil)
		f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{contract.SpaceID}, leasing.SpaceStatusVacant).Return(nil)

		require.NoError(t, f.svc.DeleteContract(context.Background(), contract.ID))
		f.assertExpectations(t)
	})

	t.Run("space held by a newer contract stays occupied", func(t *testing.T) {
		f := newLifecycleFixture()
		contract := activeContract(t, uuid.New())
		contract.Status = leasing.ContractStatusTerminated
		f.contracts.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		f.contracts.On("Delete", mock.Anything, contract.ID).Return(nil)
		f.contracts.On("ExistsActiveForSpace", mock.Anything, contract.SpaceID).Return(true, nil)

		require.NoError(t, f.svc.DeleteContract(context.Background(), contract.ID))
		f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLifecycleService_DeleteTenant(t *testing.T) {
	t.Run("two active contracts vacate both spaces", func(t *testing.T) {
		f := newLifecycleFixture()
		tenant, err := leasing.NewTenant("Dana Karimova", "+7 705 555 0101")
		require.NoError(t, err)
		first := activeContract(t, uuid.New())
		second := activeContract(t, uuid.New())
		ended := activeContract(t, uuid.New())
		ended.Status = leasing.ContractStatusExpired

		f.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.contracts.On("FindByTenant", mock.Anything, tenant.ID).
			Return([]leasing.Contract{*first, *ended, *second}, nil)
		f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{first.SpaceID, second.SpaceID}, leasing.SpaceStatusVacant).
			Return(nil)
		f.contracts.On("DeleteByTenant", mock.Anything, tenant.ID).Return(nil)
		f.tenants.On("Delete", mock.Anything, tenant.ID).Return(nil)

		require.NoError(t, f.svc.DeleteTenant(context.Background(), tenant.ID))
		f.assertExpectations(t)
	})

	t.Run("tenant without contracts", func(t *testing.T) {
		f := newLifecycleFixture()
		tenant, err := leasing.NewTenant("Erlan Abenov", "+7 700 123 4567")
		require.NoError(t, err)
		f.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.contracts.On("FindByTenant", mock.Anything, tenant.ID).Return([]leasing.Contract{}, nil)
		f.tenants.On("Delete", mock.Anything, tenant.ID).Return(nil)

		require.NoError(t, f.svc.DeleteTenant(context.Background(), tenant.ID))
		f.contracts.AssertNotCalled(t, "DeleteByTenant", mock.Anything, mock.Anything)
		f.spaces.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed step stops the sequence", func(t *testing.T) {
		f := newLifecycleFixture()
		tenant, err := leasing.NewTenant("Erlan Abenov", "+7 700 123 4567")
		require.NoError(t, err)
		contract := activeContract(t, uuid.New())
		f.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.contracts.On("FindByTenant", mock.Anything, tenant.ID).Return([]leasing.Contract{*contract}, nil)
		f.spaces.On("UpdateStatus", mock.Anything, mock.Anything, leasing.SpaceStatusVacant).
			Return(errors.New("timeout"))

		err = f.svc.DeleteTenant(context.Background(), tenant.ID)

		requireCode(t, err, shared.CodePersistence)
		f.contracts.AssertNotCalled(t, "DeleteByTenant", mock.Anything, mock.Anything)
		f.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		f := newLifecycleFixture()
		id := uuid.New()
		f.tenants.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("tenant"))

		requireCode(t, f.svc.DeleteTenant(context.Background(), id), shared.CodeNotFound)
	})
}

func TestLifecycleService_RecordPayment_MonthlyRentScenario(t *testing.T) {
	tests := []struct {
		paid       int64
		wantStatus string
		wantPaidAt bool
	}{
		{paid: 45000, wantStatus: "paid", wantPaidAt: true},
		{paid: 20000, wantStatus: "partial"},
		{paid: 0, wantStatus: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus, func(t *testing.T) {
			f := newLifecycleFixture()
			contract := activeContract(t, uuid.New())
			f.contracts.On("FindActiveBySpace", mock.Anything, contract.SpaceID).Return(contract, nil)
			f.payments.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Payment")).Return(nil)

			result, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
				SpaceID:     contract.SpaceID,
				PaidAmount:  decimal.NewFromInt(tt.paid),
				PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			})

			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(45000).Equal(result.ChargedAmount))
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, contract.ID, result.ContractID)
			assert.Equal(t, contract.TenantID, result.TenantID)
			assert.Equal(t, tt.wantPaidAt, result.PaidAt != nil)
			f.assertExpectations(t)
		})
	}
}

func TestLifecycleService_RecordPayment_NoActiveContract(t *testing.T) {
	f := newLifecycleFixture()
	spaceID := uuid.New()
	f.contracts.On("FindActiveBySpace", mock.Anything, spaceID).Return(nil, shared.NewNotFoundError("contract"))

	_, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		SpaceID:     spaceID,
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, shared.ErrNoActiveContract)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLifecycleService_RecordPayment_InvalidPeriod(t *testing.T) {
	f := newLifecycleFixture()
	contract := activeContract(t, uuid.New())
	f.contracts.On("FindActiveBySpace", mock.Anything, contract.SpaceID).Return(contract, nil)

	_, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		SpaceID:     contract.SpaceID,
		PeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	requireCode(t, err, shared.CodeInvalidPeriod)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLifecycleService_RecordPayment_StoreFailure(t *testing.T) {
	f := newLifecycleFixture()
	spaceID := uuid.New()
	f.contracts.On("FindActiveBySpace", mock.Anything, spaceID).Return(nil, errors.New("connection refused"))

	_, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{SpaceID: spaceID})

	requireCode(t, err, shared.CodePersistence)
}

func TestLifecycleService_ApplyPayment(t *testing.T) {
	newPartial := func(t *testing.T) *leasing.Payment {
		t.Helper()
		p, err := leasing.NewPayment(activeContract(t, uuid.New()), leasing.PaymentInput{
			PaidAmount:  decimal.NewFromInt(20000),
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		}, fixedNow)
		require.NoError(t, err)
		require.Equal(t, leasing.PaymentStatusPartial, p.Status)
		return p
	}

	t.Run("without amount settles the balance", func(t *testing.T) {
		f := newLifecycleFixture()
		payment := newPartial(t)
		settledBy := uuid.New()
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.payments.On("Save", mock.Anything, payment).Return(nil)

		result, err := f.svc.ApplyPayment(context.Background(), payment.ID, ApplyPaymentRequest{SettledBy: &settledBy})

		require.NoError(t, err)
		assert.Equal(t, "paid", result.Status)
		assert.True(t, decimal.NewFromInt(45000).Equal(result.PaidAmount))
		assert.True(t, result.Remaining.IsZero())
		require.NotNil(t, result.PaidAt)
		assert.Equal(t, fixedNow, *result.PaidAt)
		assert.Equal(t, &settledBy, result.SettledBy)
	})

	t.Run("partial amount stays partial", func(t *testing.T) {
		f := newLifecycleFixture()
		payment := newPartial(t)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.payments.On("Save", mock.Anything, payment).Return(nil)

		amount := decimal.NewFromInt(5000)
		result, err := f.svc.ApplyPayment(context.Background(), payment.ID, ApplyPaymentRequest{Amount: &amount})

		require.NoError(t, err)
		assert.Equal(t, "partial", result.Status)
		assert.True(t, decimal.NewFromInt(20000).Equal(result.Remaining))
		assert.Nil(t, result.PaidAt)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		f := newLifecycleFixture()
		payment := newPartial(t)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

		amount := decimal.Zero
		_, err := f.svc.ApplyPayment(context.Background(), payment.ID, ApplyPaymentRequest{Amount: &amount})

		requireCode(t, err, shared.CodeValidation)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

// A space goes vacant, occupied, vacant across onboarding and termination.
func TestLifecycleService_OccupancyRoundTrip(t *testing.T) {
	f := newLifecycleFixture()
	ctx := context.Background()
	space := newSpaceWithArea(t, "F-09", 20)
	require.Equal(t, leasing.SpaceStatusVacant, space.Status)

	var stored *leasing.Contract
	f.contracts.On("ExistsActiveForSpace", mock.Anything, space.ID).Return(false, nil)
	f.tenants.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.spaces.On("FindByID", mock.Anything, space.ID).Return(space, nil)
	f.contracts.On("Create", mock.Anything, mock.AnythingOfType("*leasing.Contract")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*leasing.Contract) }).
		Return(nil)
	f.spaces.On("UpdateStatus", mock.Anything, []uuid.UUID{space.ID}, mock.AnythingOfType("leasing.SpaceStatus")).
		Run(func(args mock.Arguments) { space.Status = args.Get(2).(leasing.SpaceStatus) }).
		Return(nil)

	result, err := f.svc.CreateTenantWithContract(ctx, onboardRequest(space.ID))
	require.NoError(t, err)
	assert.Equal(t, leasing.SpaceStatusOccupied, space.Status)

	f.contracts.On("FindByID", mock.Anything, result.Contract.ID).Return(stored, nil)
	f.contracts.On("Save", mock.Anything, stored).Return(nil)

	_, err = f.svc.TerminateContract(ctx, result.Contract.ID)
	require.NoError(t, err)
	assert.Equal(t, leasing.SpaceStatusVacant, space.Status)
	f.assertExpectations(t)
}
