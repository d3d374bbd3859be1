package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
)

// ContractReader serves contract reads
type ContractReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.ContractResponse, error)
	List(ctx context.Context, q leasingapp.ContractListQuery) (shared.Paginated[leasingapp.ContractResponse], error)
}

// ContractLifecycle covers contract writes, each of which keeps the space status in step
type ContractLifecycle interface {
	CreateContract(ctx context.Context, req leasingapp.CreateContractRequest) (*leasingapp.ContractResponse, error)
	UpdateContract(ctx context.Context, id uuid.UUID, req leasingapp.UpdateContractRequest) (*leasingapp.ContractResponse, error)
	TerminateContract(ctx context.Context, id uuid.UUID) (*leasingapp.ContractResponse, error)
	DeleteContract(ctx context.Context, id uuid.UUID) error
}

// ContractHandler handles lease contract endpoints
type ContractHandler struct {
	BaseHandler
	contracts ContractReader
	lifecycle ContractLifecycle
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contracts ContractReader, lifecycle ContractLifecycle) *ContractHandler {
	return &ContractHandler{contracts: contracts, lifecycle: lifecycle}
}

// Create godoc
// @ID           createContract
// @Summary      Create a contract for an existing tenant
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        request body leasingapp.CreateContractRequest true "Contract"
// @Success      201 {object} APIResponse[leasingapp.ContractResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req leasingapp.CreateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.lifecycle.CreateContract(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contract)
}

// GetByID godoc
// @ID           getContract
// @Summary      Get a contract
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID"
// @Success      200 {object} APIResponse[leasingapp.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [get]
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contracts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// List godoc
// @ID           listContracts
// @Summary      List contracts
// @Tags         contracts
// @Produce      json
// @Param        status    query string false "active, expired or terminated"
// @Param        tenant_id query string false "Tenant ID"
// @Param        space_id  query string false "Space ID"
// @Success      200 {object} ListResponse[leasingapp.ContractResponse]
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	var q leasingapp.ContractListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.contracts.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update godoc
// @ID           updateContract
// @Summary      Update a contract
// @Description  A status change re-syncs the space status
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Contract ID"
// @Param        request body leasingapp.UpdateContractRequest true "Fields to change"
// @Success      200 {object} APIResponse[leasingapp.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req leasingapp.UpdateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.lifecycle.UpdateContract(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Terminate godoc
// @ID           terminateContract
// @Summary      Terminate a contract early
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID"
// @Success      200 {object} APIResponse[leasingapp.ContractResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/terminate [post]
func (h *ContractHandler) Terminate(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	contract, err := h.lifecycle.TerminateContract(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Delete godoc
// @ID           deleteContract
// @Summary      Delete a contract
// @Tags         contracts
// @Param        id path string true "Contract ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteContract(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
