package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/marketrent/backend/internal/application/finance"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
)

// testActor is the authenticated caller injected by newTestRouter
var testActor = uuid.MustParse("6f1c2f0e-7a55-4c1b-9d43-0b9e3f1a2c11")

func newTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "test-request")
		c.Set(middleware.UserIDKey, testActor.String())
		c.Set(middleware.RoleKey, "owner")
		c.Next()
	})
	return router
}

func performRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type MockSpaceService struct {
	mock.Mock
}

func (m *MockSpaceService) Create(ctx context.Context, req leasingapp.CreateSpaceRequest) (*leasingapp.SpaceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.SpaceResponse), args.Error(1)
}

func (m *MockSpaceService) GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.SpaceResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.SpaceResponse), args.Error(1)
}

func (m *MockSpaceService) List(ctx context.Context, q leasingapp.SpaceListQuery) (shared.Paginated[leasingapp.SpaceResponse], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[leasingapp.SpaceResponse]), args.Error(1)
}

func (m *MockSpaceService) Update(ctx context.Context, id uuid.UUID, req leasingapp.UpdateSpaceRequest) (*leasingapp.SpaceResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.SpaceResponse), args.Error(1)
}

func (m *MockSpaceService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, req leasingapp.CreateTenantRequest) (*leasingapp.TenantResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.TenantResponse), args.Error(1)
}

func (m *MockTenantService) GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.TenantResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.TenantResponse), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context, q leasingapp.TenantListQuery) (shared.Paginated[leasingapp.TenantResponse], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[leasingapp.TenantResponse]), args.Error(1)
}

func (m *MockTenantService) Update(ctx context.Context, id uuid.UUID, req leasingapp.UpdateTenantRequest) (*leasingapp.TenantResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.TenantResponse), args.Error(1)
}

// MockLifecycle implements every lifecycle-facing handler interface
type MockLifecycle struct {
	mock.Mock
}

func (m *MockLifecycle) CreateTenantWithContract(ctx context.Context, req leasingapp.CreateTenantWithContractRequest) (*leasingapp.TenantWithContractResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.TenantWithContractResponse), args.Error(1)
}

func (m *MockLifecycle) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLifecycle) CreateContract(ctx context.Context, req leasingapp.CreateContractRequest) (*leasingapp.ContractResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.ContractResponse), args.Error(1)
}

func (m *MockLifecycle) UpdateContract(ctx context.Context, id uuid.UUID, req leasingapp.UpdateContractRequest) (*leasingapp.ContractResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.ContractResponse), args.Error(1)
}

func (m *MockLifecycle) TerminateContract(ctx context.Context, id uuid.UUID) (*leasingapp.ContractResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.ContractResponse), args.Error(1)
}

func (m *MockLifecycle) DeleteContract(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLifecycle) RecordPayment(ctx context.Context, req leasingapp.RecordPaymentRequest) (*leasingapp.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.PaymentResponse), args.Error(1)
}

func (m *MockLifecycle) ApplyPayment(ctx context.Context, id uuid.UUID, req leasingapp.ApplyPaymentRequest) (*leasingapp.PaymentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.PaymentResponse), args.Error(1)
}

type MockContractReader struct {
	mock.Mock
}

func (m *MockContractReader) GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.ContractResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.ContractResponse), args.Error(1)
}

func (m *MockContractReader) List(ctx context.Context, q leasingapp.ContractListQuery) (shared.Paginated[leasingapp.ContractResponse], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[leasingapp.ContractResponse]), args.Error(1)
}

type MockPaymentReader struct {
	mock.Mock
}

func (m *MockPaymentReader) GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.PaymentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.PaymentResponse), args.Error(1)
}

func (m *MockPaymentReader) List(ctx context.Context, q leasingapp.PaymentListQuery) (shared.Paginated[leasingapp.PaymentResponse], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[leasingapp.PaymentResponse]), args.Error(1)
}

func (m *MockPaymentReader) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, req financeapp.ExpenseRequest) (*financeapp.ExpenseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*financeapp.ExpenseResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) List(ctx context.Context, q financeapp.ExpenseListQuery) (shared.Paginated[financeapp.ExpenseResponse], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[financeapp.ExpenseResponse]), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, id uuid.UUID, req financeapp.ExpenseRequest) (*financeapp.ExpenseResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.ExpenseResponse), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpenseService) Summary(ctx context.Context, q financeapp.ExpenseSummaryQuery, now time.Time) (*financeapp.ExpenseSummaryResponse, error) {
	args := m.Called(ctx, q, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.ExpenseSummaryResponse), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, q leasingapp.DashboardQuery) (*leasingapp.DashboardSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.DashboardSummary), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) IssueUploadURL(ctx context.Context, kind leasingapp.UploadKind, req leasingapp.UploadRequest) (*leasingapp.UploadResponse, error) {
	args := m.Called(ctx, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasingapp.UploadResponse), args.Error(1)
}
