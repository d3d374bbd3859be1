package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
)

// TenantService is the application surface the tenant endpoints use
type TenantService interface {
	Create(ctx context.Context, req leasingapp.CreateTenantRequest) (*leasingapp.TenantResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.TenantResponse, error)
	List(ctx context.Context, q leasingapp.TenantListQuery) (shared.Paginated[leasingapp.TenantResponse], error)
	Update(ctx context.Context, id uuid.UUID, req leasingapp.UpdateTenantRequest) (*leasingapp.TenantResponse, error)
}

// TenantLifecycle covers the tenant operations that also touch contracts and spaces
type TenantLifecycle interface {
	CreateTenantWithContract(ctx context.Context, req leasingapp.CreateTenantWithContractRequest) (*leasingapp.TenantWithContractResponse, error)
	DeleteTenant(ctx context.Context, id uuid.UUID) error
}

// TenantHandler handles tenant endpoints
type TenantHandler struct {
	BaseHandler
	tenantService TenantService
	lifecycle     TenantLifecycle
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService TenantService, lifecycle TenantLifecycle) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, lifecycle: lifecycle}
}

// Create godoc
// @ID           createTenant
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.CreateTenantRequest true "Tenant"
// @Success      201 {object} APIResponse[leasingapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req leasingapp.CreateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tenant)
}

// CreateWithContract godoc
// @ID           createTenantWithContract
// @Summary      Onboard a tenant with their first contract
// @Description  Creates the tenant and an active contract and marks the space occupied.
// @Description  The tenant is removed again if the contract cannot be created.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.CreateTenantWithContractRequest true "Tenant and contract"
// @Success      201 {object} APIResponse[leasingapp.TenantWithContractResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/with-contract [post]
func (h *TenantHandler) CreateWithContract(c *gin.Context) {
	var req leasingapp.CreateTenantWithContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.lifecycle.CreateTenantWithContract(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getTenant
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} APIResponse[leasingapp.TenantResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// List godoc
// @ID           listTenants
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        search query string false "Search by name, phone or company"
// @Success      200 {object} ListResponse[leasingapp.TenantResponse]
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	var q leasingapp.TenantListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.tenantService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update godoc
// @ID           updateTenant
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Tenant ID"
// @Param        request body leasingapp.UpdateTenantRequest true "Fields to change"
// @Success      200 {object} APIResponse[leasingapp.TenantResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req leasingapp.UpdateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Delete godoc
// @ID           deleteTenant
// @Summary      Delete a tenant
// @Description  Removes the tenant with their contracts and payments and frees their spaces
// @Tags         tenants
// @Param        id path string true "Tenant ID"
// @Success      204
// @Security     BearerAuth
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteTenant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
