package handler

import (
	"net/http"
	"testing"
	"time"

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

func setupSpaceRouter(svc *MockSpaceService) *gin.Engine {
	h := NewSpaceHandler(svc)
	router := newTestRouter()
	router.POST("/spaces", h.Create)
	router.GET("/spaces", h.List)
	router.GET("/spaces/:id", h.GetByID)
	router.PUT("/spaces/:id", h.Update)
	router.DELETE("/spaces/:id", h.Delete)
	return router
}

func sampleSpace(code, status string) *leasingapp.SpaceResponse {
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &leasingapp.SpaceResponse{
		ID:        uuid.New(),
		Code:      code,
		Status:    status,
		PhotoURLs: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSpaceHandler_Create(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	space := sampleSpace("A-01", "vacant")

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req leasingapp.CreateSpaceRequest) bool {
		return req.Code == "A-01" && req.BaseRent != nil && req.BaseRent.Equal(decimal.NewFromInt(1200))
	})).Return(space, nil)

	w := performRequest(router, http.MethodPost, "/spaces", `{"code":"A-01","sector":"A","base_rent":"1200"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "A-01", resp.Data.(map[string]any)["code"])
	svc.AssertExpectations(t)
}

func TestSpaceHandler_CreateValidation(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)

	w := performRequest(router, http.MethodPost, "/spaces", `{"sector":"A","type":"tent"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	fields := make([]string, 0, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"code", "type"}, fields)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSpaceHandler_CreateDuplicateCode(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(nil, shared.NewDomainError(shared.CodeAlreadyExists, "Space code already exists"))

	w := performRequest(router, http.MethodPost, "/spaces", `{"code":"A-01"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, decodeResponse(t, w).Error.Code)
}

func TestSpaceHandler_GetByID(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	space := sampleSpace("B-07", "occupied")
	svc.On("GetByID", mock.Anything, space.ID).Return(space, nil)

	w := performRequest(router, http.MethodGet, "/spaces/"+space.ID.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "occupied", decodeResponse(t, w).Data.(map[string]any)["status"])
}

func TestSpaceHandler_GetByIDErrors(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	missing := uuid.New()
	svc.On("GetByID", mock.Anything, missing).Return(nil, shared.NewNotFoundError("Space"))

	w := performRequest(router, http.MethodGet, "/spaces/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodGet, "/spaces/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
}

func TestSpaceHandler_List(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	items := []leasingapp.SpaceResponse{*sampleSpace("A-01", "vacant"), *sampleSpace("A-02", "vacant")}

	svc.On("List", mock.Anything, leasingapp.SpaceListQuery{Page: 2, PageSize: 2, Status: "vacant"}).
		Return(shared.NewPaginated(items, 6, 2, 2), nil)

	w := performRequest(router, http.MethodGet, "/spaces?status=vacant&page=2&page_size=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(6), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestSpaceHandler_ListInvalidStatus(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)

	w := performRequest(router, http.MethodGet, "/spaces?status=rented", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
}

func TestSpaceHandler_Update(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	space := sampleSpace("A-01", "maintenance")

	svc.On("Update", mock.Anything, space.ID, mock.MatchedBy(func(req leasingapp.UpdateSpaceRequest) bool {
		return req.Status != nil && *req.Status == "maintenance" && req.Code == nil
	})).Return(space, nil)

	w := performRequest(router, http.MethodPut, "/spaces/"+space.ID.String(), `{"status":"maintenance"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSpaceHandler_Delete(t *testing.T) {
	svc := new(MockSpaceService)
	router := setupSpaceRouter(svc)
	free, held := uuid.New(), uuid.New()
	svc.On("Delete", mock.Anything, free).Return(nil)
	svc.On("Delete", mock.Anything, held).Return(shared.ErrContractActive)

	w := performRequest(router, http.MethodDelete, "/spaces/"+free.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, http.MethodDelete, "/spaces/"+held.String(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeContractActive, decodeResponse(t, w).Error.Code)
}
