package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod represents how money was collected
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// Payment is money charged and collected against a contract for one billing period
type Payment struct {
	shared.BaseEntity
	ContractID    uuid.UUID       `json:"contract_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	SpaceID       uuid.UUID       `json:"space_id"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        PaymentStatus   `json:"status"`
	Method        *PaymentMethod  `json:"method"`
	Notes         string          `json:"notes"`
	PaidAt        *time.Time      `json:"paid_at"`
	SettledBy     *uuid.UUID      `json:"settled_by"`
}

// PaymentInput holds what an operator supplies when recording a payment
type PaymentInput struct {
	PaidAmount  decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
	Method      *PaymentMethod
	Notes       string
	PaidAt      *time.Time
	SettledBy   *uuid.UUID
}

// NewPayment records a payment against an active contract.
// Charged amount and status are derived here and nowhere else.
func NewPayment(contract *Contract, in PaymentInput, now time.Time) (*Payment, error) {
	if contract == nil || !contract.IsActive() {
		return nil, shared.ErrNoActiveContract
	}
	if in.PeriodStart.IsZero() {
		return nil, shared.NewValidationError("period_start", "Period start is required")
	}
	if in.PeriodEnd.IsZero() {
		return nil, shared.NewValidationError("period_end", "Period end is required")
	}
	if in.PaidAmount.IsNegative() {
		return nil, shared.NewValidationError("paid_amount", "Paid amount cannot be negative")
	}
	if in.Method != nil && !in.Method.IsValid() {
		return nil, shared.NewValidationError("method", "Payment method is not valid")
	}

	charged, err := ChargedAmount(contract.MonthlyRent, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	status := ResolveSettlement(charged, in.PaidAmount, PaymentStatusPending)

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		ContractID:    contract.ID,
		TenantID:      contract.TenantID,
		SpaceID:       contract.SpaceID,
		PeriodStart:   shared.DateOf(in.PeriodStart),
		PeriodEnd:     shared.DateOf(in.PeriodEnd),
		ChargedAmount: charged,
		PaidAmount:    in.PaidAmount,
		Status:        status,
		Method:        in.Method,
		Notes:         in.Notes,
		PaidAt:        SettlementTime(status, in.PaidAt, now),
		SettledBy:     in.SettledBy,
	}, nil
}

// Remaining returns the unpaid part of the charge, never below zero
func (p *Payment) Remaining() decimal.Decimal {
	rest := p.ChargedAmount.Sub(p.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// Apply adds a settlement to the payment.
// A nil amount settles the remaining balance in full.
func (p *Payment) Apply(amount *decimal.Decimal, settledBy *uuid.UUID, now time.Time) error {
	delta := p.Remaining()
	if amount != nil {
		if !amount.IsPositive() {
			return shared.NewValidationError("amount", "Amount must be positive")
		}
		delta = *amount
	}

	p.PaidAmount = p.PaidAmount.Add(delta)
	p.Status = ResolveSettlement(p.ChargedAmount, p.PaidAmount, p.Status)
	if p.Status == PaymentStatusPaid {
		t := now
		p.PaidAt = &t
	} else {
		p.PaidAt = nil
	}
	if settledBy != nil {
		p.SettledBy = settledBy
	}
	p.Touch()
	return nil
}

// IsOverdueOn reports whether an unsettled payment's period has ended before day
func (p *Payment) IsOverdueOn(day time.Time) bool {
	if p.Status != PaymentStatusPending && p.Status != PaymentStatusPartial {
		return false
	}
	return p.PeriodEnd.Before(shared.DateOf(day))
}
