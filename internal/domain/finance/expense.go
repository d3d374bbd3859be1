package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of a market operating expense
type ExpenseCategory string

const (
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategorySecurity    ExpenseCategory = "security"
	ExpenseCategoryCleaning    ExpenseCategory = "cleaning"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryUtilities, ExpenseCategoryMaintenance, ExpenseCategorySalary,
		ExpenseCategoryTaxes, ExpenseCategorySecurity, ExpenseCategoryCleaning,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense is money the market spent; it plays no part in lease reconciliation
type Expense struct {
	shared.BaseEntity
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedBy   *uuid.UUID      `json:"created_by"`
}

// NewExpense creates a new expense
func NewExpense(category ExpenseCategory, amount decimal.Decimal, description string, expenseDate time.Time, createdBy *uuid.UUID) (*Expense, error) {
	e := &Expense{
		BaseEntity: shared.NewBaseEntity(),
		CreatedBy:  createdBy,
	}
	if err := e.Update(category, amount, description, expenseDate); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable fields
func (e *Expense) Update(category ExpenseCategory, amount decimal.Decimal, description string, expenseDate time.Time) error {
	if !category.IsValid() {
		return shared.NewValidationError("category", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return shared.NewValidationError("amount", "Amount must be positive")
	}
	description = strings.TrimSpace(description)
	if len(description) > 500 {
		return shared.NewValidationError("description", "Description cannot exceed 500 characters")
	}
	if expenseDate.IsZero() {
		return shared.NewValidationError("expense_date", "Expense date is required")
	}
	e.Category = category
	e.Amount = amount
	e.Description = description
	e.ExpenseDate = shared.DateOf(expenseDate)
	e.Touch()
	return nil
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	Category *ExpenseCategory
	From     *time.Time
	To       *time.Time
}

// CategoryTotal is the sum of expenses in one category
type CategoryTotal struct {
	Category ExpenseCategory `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Create(ctx context.Context, expense *Expense) error
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByCategory totals expenses dated within [from, to)
	SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
