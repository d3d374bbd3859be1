package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense entity.
type ExpenseModel struct {
	BaseModel
	Category    finance.ExpenseCategory `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Description string                  `gorm:"type:varchar(500)"`
	ExpenseDate time.Time               `gorm:"type:date;not null;index"`
	CreatedBy   *uuid.UUID              `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		Category:    m.Category,
		Amount:      m.Amount,
		Description: m.Description,
		ExpenseDate: m.ExpenseDate,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Category = e.Category
	m.Amount = e.Amount
	m.Description = e.Description
	m.ExpenseDate = e.ExpenseDate
	m.CreatedBy = e.CreatedBy
}

// ExpenseModelFromDomain creates a new persistence model from domain.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
