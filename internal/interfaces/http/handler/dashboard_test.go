package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Summary(t *testing.T) {
	svc := new(MockDashboardService)
	router := newTestRouter()
	router.GET("/dashboard/summary", NewDashboardHandler(svc).Summary)

	svc.On("Summary", mock.Anything, mock.MatchedBy(func(q leasingapp.DashboardQuery) bool {
		return q.Month != nil && q.Month.Year() == 2026 && q.Month.Month() == time.September
	})).Return(&leasingapp.DashboardSummary{
		Spaces:           map[string]int64{"vacant": 3, "occupied": 7},
		TotalSpaces:      10,
		OccupancyPercent: decimal.NewFromInt(70),
	}, nil)

	w := performRequest(router, http.MethodGet, "/dashboard/summary?month=2026-09", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "70", data["occupancy_percent"])
	assert.EqualValues(t, 10, data["total_spaces"])
	svc.AssertExpectations(t)
}

func TestDashboardHandler_SummaryStoreFailure(t *testing.T) {
	svc := new(MockDashboardService)
	router := newTestRouter()
	router.GET("/dashboard/summary", NewDashboardHandler(svc).Summary)
	svc.On("Summary", mock.Anything, leasingapp.DashboardQuery{}).
		Return(nil, shared.NewPersistenceError("count spaces", assert.AnError))

	w := performRequest(router, http.MethodGet, "/dashboard/summary", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrCodePersistence, decodeResponse(t, w).Error.Code)
}

func TestUploadHandler(t *testing.T) {
	svc := new(MockUploadService)
	h := NewUploadHandler(svc)
	router := newTestRouter()
	router.POST("/uploads/contract-documents", h.ContractDocument)
	router.POST("/uploads/space-photos", h.SpacePhoto)

	key := "space-photos/2026/10/" + uuid.NewString() + ".jpg"
	svc.On("IssueUploadURL", mock.Anything, leasingapp.UploadSpacePhoto,
		leasingapp.UploadRequest{FileName: "front.jpg", ContentType: "image/jpeg"}).
		Return(&leasingapp.UploadResponse{UploadURL: "https://s3.example/" + key + "?sig=1", Key: key}, nil)
	svc.On("IssueUploadURL", mock.Anything, leasingapp.UploadContractDocument, mock.Anything).
		Return(nil, shared.NewValidationError("content_type", "Unsupported file type"))

	w := performRequest(router, http.MethodPost, "/uploads/space-photos", `{"file_name":"front.jpg","content_type":"image/jpeg"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, key, decodeResponse(t, w).Data.(map[string]any)["key"])

	w = performRequest(router, http.MethodPost, "/uploads/contract-documents", `{"file_name":"lease.exe","content_type":"application/x-msdownload"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "content_type", decodeResponse(t, w).Error.Field)

	w = performRequest(router, http.MethodPost, "/uploads/space-photos", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "IssueUploadURL", 2)
}
