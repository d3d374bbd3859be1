package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	leasingapp "github.com/marketrent/backend/internal/application/leasing"
)

// DashboardService builds the owner dashboard
type DashboardService interface {
	Summary(ctx context.Context, q leasingapp.DashboardQuery) (*leasingapp.DashboardSummary, error)
}

// DashboardHandler serves the market summary
type DashboardHandler struct {
	BaseHandler
	dashboard DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @ID           getDashboardSummary
// @Summary      Market summary
// @Description  Occupancy, rent roll and the chosen month's collections and expenses
// @Tags         dashboard
// @Produce      json
// @Param        month query string false "Month (YYYY-MM), defaults to the current month"
// @Success      200 {object} APIResponse[leasingapp.DashboardSummary]
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	var q leasingapp.DashboardQuery
	if !h.bindQuery(c, &q) {
		return
	}

	summary, err := h.dashboard.Summary(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
