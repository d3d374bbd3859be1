package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/marketrent/backend/internal/application/finance"
	"github.com/marketrent/backend/internal/domain/shared"
)

// ExpenseService is the application surface the expense endpoints use
type ExpenseService interface {
	Create(ctx context.Context, req financeapp.ExpenseRequest) (*financeapp.ExpenseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.ExpenseResponse, error)
	List(ctx context.Context, q financeapp.ExpenseListQuery) (shared.Paginated[financeapp.ExpenseResponse], error)
	Update(ctx context.Context, id uuid.UUID, req financeapp.ExpenseRequest) (*financeapp.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, q financeapp.ExpenseSummaryQuery, now time.Time) (*financeapp.ExpenseSummaryResponse, error)
}

// ExpenseHandler handles market expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService ExpenseService
	now            func() time.Time
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, now: time.Now}
}

// Create godoc
// @ID           createExpense
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.ExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.ExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = currentUserID(c)

	expense, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetByID godoc
// @ID           getExpense
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// List godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        category query string false "Expense category"
// @Param        from     query string false "From date (YYYY-MM-DD)"
// @Param        to       query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} ListResponse[financeapp.ExpenseResponse]
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var q financeapp.ExpenseListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.expenseService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Expense ID"
// @Param        request body financeapp.ExpenseRequest true "Expense"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req financeapp.ExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id path string true "Expense ID"
// @Success      204
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary godoc
// @ID           summarizeExpenses
// @Summary      Expense totals per category
// @Description  Both dates are inclusive and default to the current month
// @Tags         expenses
// @Produce      json
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to   query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[financeapp.ExpenseSummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	var q financeapp.ExpenseSummaryQuery
	if !h.bindQuery(c, &q) {
		return
	}

	summary, err := h.expenseService.Summary(c.Request.Context(), q, h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
