package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPaymentRouter(reader *MockPaymentReader, recorder *MockLifecycle) *gin.Engine {
	h := NewPaymentHandler(reader, recorder)
	router := newTestRouter()
	router.POST("/payments", h.Record)
	router.GET("/payments", h.List)
	router.GET("/payments/:id", h.GetByID)
	router.DELETE("/payments/:id", h.Delete)
	router.POST("/payments/:id/apply", h.Apply)
	return router
}

func TestPaymentHandler_Record(t *testing.T) {
	recorder := new(MockLifecycle)
	router := setupPaymentRouter(new(MockPaymentReader), recorder)
	spaceID := uuid.New()

	recorder.On("RecordPayment", mock.Anything, mock.MatchedBy(func(req leasingapp.RecordPaymentRequest) bool {
		return req.SpaceID == spaceID &&
			req.PaidAmount.Equal(decimal.NewFromInt(4000)) &&
			req.SettledBy != nil && *req.SettledBy == testActor
	})).Return(&leasingapp.PaymentResponse{
		ID:            uuid.New(),
		SpaceID:       spaceID,
		ChargedAmount: decimal.NewFromInt(10000),
		PaidAmount:    decimal.NewFromInt(4000),
		Remaining:     decimal.NewFromInt(6000),
		Status:        "partial",
	}, nil)

	body := `{"space_id":"` + spaceID.String() + `","paid_amount":4000,` +
		`"period_start":"2026-10-01T00:00:00Z","period_end":"2026-10-31T00:00:00Z","method":"cash"}`
	w := performRequest(router, http.MethodPost, "/payments", body)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeAs[APIResponse[leasingapp.PaymentResponse]](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "partial", resp.Data.Status)
	assert.True(t, resp.Data.Remaining.Equal(decimal.NewFromInt(6000)))
	recorder.AssertExpectations(t)
}

func TestPaymentHandler_RecordNoActiveContract(t *testing.T) {
	recorder := new(MockLifecycle)
	router := setupPaymentRouter(new(MockPaymentReader), recorder)
	recorder.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, shared.ErrNoActiveContract)

	body := `{"space_id":"` + uuid.NewString() + `","paid_amount":100,` +
		`"period_start":"2026-10-01T00:00:00Z","period_end":"2026-10-31T00:00:00Z"}`
	w := performRequest(router, http.MethodPost, "/payments", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeNoActiveContract, decodeResponse(t, w).Error.Code)
}

func TestPaymentHandler_RecordValidation(t *testing.T) {
	recorder := new(MockLifecycle)
	router := setupPaymentRouter(new(MockPaymentReader), recorder)

	w := performRequest(router, http.MethodPost, "/payments", `{"paid_amount":100,"method":"cheque"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	recorder.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
}

func TestPaymentHandler_Apply(t *testing.T) {
	t.Run("explicit amount", func(t *testing.T) {
		recorder := new(MockLifecycle)
		router := setupPaymentRouter(new(MockPaymentReader), recorder)
		id := uuid.New()
		recorder.On("ApplyPayment", mock.Anything, id, mock.MatchedBy(func(req leasingapp.ApplyPaymentRequest) bool {
			return req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(500)) && req.SettledBy != nil
		})).Return(&leasingapp.PaymentResponse{ID: id, Status: "partial"}, nil)

		w := performRequest(router, http.MethodPost, "/payments/"+id.String()+"/apply", `{"amount":"500"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		recorder.AssertExpectations(t)
	})

	t.Run("empty body settles the balance", func(t *testing.T) {
		recorder := new(MockLifecycle)
		router := setupPaymentRouter(new(MockPaymentReader), recorder)
		id := uuid.New()
		recorder.On("ApplyPayment", mock.Anything, id, mock.MatchedBy(func(req leasingapp.ApplyPaymentRequest) bool {
			return req.Amount == nil
		})).Return(&leasingapp.PaymentResponse{ID: id, Status: "paid"}, nil)

		w := performRequest(router, http.MethodPost, "/payments/"+id.String()+"/apply", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "paid", decodeResponse(t, w).Data.(map[string]any)["status"])
	})

	t.Run("chunked empty body settles the balance", func(t *testing.T) {
		recorder := new(MockLifecycle)
		router := setupPaymentRouter(new(MockPaymentReader), recorder)
		id := uuid.New()
		recorder.On("ApplyPayment", mock.Anything, id, mock.MatchedBy(func(req leasingapp.ApplyPaymentRequest) bool {
			return req.Amount == nil
		})).Return(&leasingapp.PaymentResponse{ID: id, Status: "paid"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/payments/"+id.String()+"/apply", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		recorder.AssertExpectations(t)
	})

	t.Run("truncated body is rejected", func(t *testing.T) {
		recorder := new(MockLifecycle)
		router := setupPaymentRouter(new(MockPaymentReader), recorder)

		w := performRequest(router, http.MethodPost, "/payments/"+uuid.NewString()+"/apply", `{"amount":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		recorder.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_ListAndDelete(t *testing.T) {
	reader := new(MockPaymentReader)
	router := setupPaymentRouter(reader, new(MockLifecycle))
	id := uuid.New()

	reader.On("List", mock.Anything, mock.MatchedBy(func(q leasingapp.PaymentListQuery) bool {
		return q.Status == "overdue" && q.PeriodFrom != nil && q.PeriodFrom.Day() == 1
	})).Return(shared.NewPaginated([]leasingapp.PaymentResponse{{ID: id, Status: "overdue"}}, 1, 1, 20), nil)
	reader.On("Delete", mock.Anything, id).Return(nil)

	w := performRequest(router, http.MethodGet, "/payments?status=overdue&period_from=2026-09-01", "")
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeAs[ListResponse[leasingapp.PaymentResponse]](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, id, list.Data[0].ID)
	require.NotNil(t, list.Meta)
	assert.Equal(t, int64(1), list.Meta.Total)

	w = performRequest(router, http.MethodGet, "/payments?period_from=September", "")
	assert.False(t, decodeAs[ErrorResponse](t, w).Success)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, decodeResponse(t, w).Error.Code)

	w = performRequest(router, http.MethodDelete, "/payments/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
