package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
)

// PaymentReader serves payment reads and deletes
type PaymentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*leasingapp.PaymentResponse, error)
	List(ctx context.Context, q leasingapp.PaymentListQuery) (shared.Paginated[leasingapp.PaymentResponse], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRecorder records money received against a contract
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, req leasingapp.RecordPaymentRequest) (*leasingapp.PaymentResponse, error)
	ApplyPayment(ctx context.Context, id uuid.UUID, req leasingapp.ApplyPaymentRequest) (*leasingapp.PaymentResponse, error)
}

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	BaseHandler
	payments PaymentReader
	recorder PaymentRecorder
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments PaymentReader, recorder PaymentRecorder) *PaymentHandler {
	return &PaymentHandler{payments: payments, recorder: recorder}
}

// Record godoc
// @ID           recordPayment
// @Summary      Record a rent payment
// @Description  The charge is taken from the space's active contract.
// @Description  Send an Idempotency-Key header to make retries safe.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string                             false "Client retry key"
// @Param        request         body   leasingapp.RecordPaymentRequest true  "Payment"
// @Success      201 {object} APIResponse[leasingapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req leasingapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.SettledBy = currentUserID(c)

	payment, err := h.recorder.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// Apply godoc
// @ID           applyPayment
// @Summary      Add money to an existing payment
// @Description  Without an amount the remaining balance is settled
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                          true  "Payment ID"
// @Param        request body leasingapp.ApplyPaymentRequest false "Amount"
// @Success      200 {object} APIResponse[leasingapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/apply [post]
func (h *PaymentHandler) Apply(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req leasingapp.ApplyPaymentRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	req.SettledBy = currentUserID(c)

	payment, err := h.recorder.ApplyPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// GetByID godoc
// @ID           getPayment
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} APIResponse[leasingapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        status      query string false "pending, partial, paid or overdue"
// @Param        contract_id query string false "Contract ID"
// @Param        period_from query string false "Period start on or after (YYYY-MM-DD)"
// @Param        period_to   query string false "Period end on or before (YYYY-MM-DD)"
// @Success      200 {object} ListResponse[leasingapp.PaymentResponse]
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var q leasingapp.PaymentListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.payments.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Delete godoc
// @ID           deletePayment
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path string true "Payment ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
