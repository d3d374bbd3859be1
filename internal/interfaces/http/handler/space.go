package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
)

// SpaceService is the application surface the space endpoints use
type SpaceService interface {
	Create(ctx context.Context, req leasingapp.CreateSpaceRequest) (*leasingapp.SpaceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.SpaceResponse, error)
	List(ctx context.Context, q leasingapp.SpaceListQuery) (shared.Paginated[leasingapp.SpaceResponse], error)
	Update(ctx context.Context, id uuid.UUID, req leasingapp.UpdateSpaceRequest) (*leasingapp.SpaceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpaceHandler handles rentable space endpoints
type SpaceHandler struct {
	BaseHandler
	spaceService SpaceService
}

// NewSpaceHandler creates a new SpaceHandler
func NewSpaceHandler(spaceService SpaceService) *SpaceHandler {
	return &SpaceHandler{spaceService: spaceService}
}

// Create godoc
// @ID           createSpace
// @Summary      Create a space
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.CreateSpaceRequest true "Space"
// @Success      201 {object} APIResponse[leasingapp.SpaceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /spaces [post]
func (h *SpaceHandler) Create(c *gin.Context) {
	var req leasingapp.CreateSpaceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	space, err := h.spaceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, space)
}

// GetByID godoc
// @ID           getSpace
// @Summary      Get a space
// @Tags         spaces
// @Produce      json
// @Param        id path string true "Space ID"
// @Success      200 {object} APIResponse[leasingapp.SpaceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /spaces/{id} [get]
func (h *SpaceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	space, err := h.spaceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, space)
}

// List godoc
// @ID           listSpaces
// @Summary      List spaces
// @Tags         spaces
// @Produce      json
// @Param        status query string false "vacant, occupied or maintenance"
// @Param        type   query string false "Space type"
// @Param        sector query string false "Sector"
// @Param        search query string false "Search by code"
// @Success      200 {object} ListResponse[leasingapp.SpaceResponse]
// @Security     BearerAuth
// @Router       /spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	var q leasingapp.SpaceListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.spaceService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update godoc
// @ID           updateSpace
// @Summary      Update a space
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Space ID"
// @Param        request body leasingapp.UpdateSpaceRequest true "Fields to change"
// @Success      200 {object} APIResponse[leasingapp.SpaceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /spaces/{id} [put]
func (h *SpaceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req leasingapp.UpdateSpaceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	space, err := h.spaceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, space)
}

// Delete godoc
// @ID           deleteSpace
// @Summary      Delete a space
// @Description  Refused while an active contract holds the space
// @Tags         spaces
// @Param        id path string true "Space ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /spaces/{id} [delete]
func (h *SpaceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.spaceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
