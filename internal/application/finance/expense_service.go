package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/finance"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService provides market expense operations
type ExpenseService struct {
	expenses finance.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{expenses: expenses, logger: logger}
}

// ExpenseRequest creates or replaces an expense
type ExpenseRequest struct {
	Category    string          `json:"category" binding:"required,oneof=utilities maintenance salary taxes security cleaning other"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=500"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// ExpenseListQuery holds list parameters for expenses
type ExpenseListQuery struct {
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string     `form:"search"`
	Category string     `form:"category" binding:"omitempty,oneof=utilities maintenance salary taxes security cleaning other"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// ExpenseSummaryQuery selects the date range of a category summary.
// To is inclusive; both default to the current month.
type ExpenseSummaryQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// ExpenseResponse is the API view of an expense
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseSummaryResponse totals expenses per category over a range
type ExpenseSummaryResponse struct {
	From       time.Time               `json:"from"`
	To         time.Time               `json:"to"`
	Categories []finance.CategoryTotal `json:"categories"`
	Total      decimal.Decimal         `json:"total"`
}

// ToExpenseResponse converts a domain expense to its response
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(finance.ExpenseCategory(req.Category), req.Amount, req.Description, req.ExpenseDate, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, storeErr("create expense", err)
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", string(expense.Category)),
		zap.String("amount", expense.Amount.String()),
	)
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load expense", err)
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List returns a page of expenses
func (s *ExpenseService) List(ctx context.Context, q ExpenseListQuery) (shared.Paginated[ExpenseResponse], error) {
	base := shared.DefaultFilter()
	base.OrderBy = "expense_date"
	if q.Page > 0 {
		base.Page = q.Page
	}
	if q.PageSize > 0 {
		base.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		base.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		base.OrderDir = q.OrderDir
	}
	base.Search = q.Search

	filter := finance.ExpenseFilter{Filter: base.Normalize(), From: q.From, To: q.To}
	if q.Category != "" {
		c := finance.ExpenseCategory(q.Category)
		filter.Category = &c
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return shared.Paginated[ExpenseResponse]{}, shared.ErrInvalidPeriod
	}

	expenses, err := s.expenses.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, storeErr("list expenses", err)
	}
	total, err := s.expenses.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, storeErr("count expenses", err)
	}

	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = ToExpenseResponse(&expenses[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update replaces the editable fields of an expense
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load expense", err)
	}
	if err := expense.Update(finance.ExpenseCategory(req.Category), req.Amount, req.Description, req.ExpenseDate); err != nil {
		return nil, err
	}
	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, storeErr("update expense", err)
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return storeErr("delete expense", err)
	}
	s.logger.Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

// Summary totals expenses per category within [From, To]
func (s *ExpenseService) Summary(ctx context.Context, q ExpenseSummaryQuery, now time.Time) (*ExpenseSummaryResponse, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	if q.From != nil {
		from = shared.DateOf(*q.From)
	}
	if q.To != nil {
		to = shared.DateOf(*q.To)
	}
	if to.Before(from) {
		return nil, shared.ErrInvalidPeriod
	}

	totals, err := s.expenses.SumByCategory(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, storeErr("sum expenses", err)
	}

	resp := &ExpenseSummaryResponse{From: from, To: to, Categories: totals, Total: decimal.Zero}
	if resp.Categories == nil {
		resp.Categories = []finance.CategoryTotal{}
	}
	for _, c := range totals {
		resp.Total = resp.Total.Add(c.Total)
	}
	return resp, nil
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if shared.ErrorCode(err) != "" {
		return err
	}
	return shared.NewPersistenceError(op, err)
}
