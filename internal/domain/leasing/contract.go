package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle status of a lease contract
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
)

// IsValid checks if the status is a valid ContractStatus
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusActive, ContractStatusExpired, ContractStatusTerminated:
		return true
	}
	return false
}

// String returns the string representation of ContractStatus
func (s ContractStatus) String() string {
	return string(s)
}

// Contract binds one tenant to one space for a period with a monthly rent
type Contract struct {
	shared.BaseEntity
	TenantID      uuid.UUID        `json:"tenant_id"`
	SpaceID       uuid.UUID        `json:"space_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	MonthlyRent   decimal.Decimal  `json:"monthly_rent"`
	RatePerArea   *decimal.Decimal `json:"rate_per_area"`
	Deposit       *decimal.Decimal `json:"deposit"`
	PaymentDueDay *int             `json:"payment_due_day"`
	Status        ContractStatus   `json:"status"`
	DocumentURL   string           `json:"document_url"`
}

// ContractTerms are the caller-supplied fields of a new contract
type ContractTerms struct {
	SpaceID       uuid.UUID
	StartDate     time.Time
	EndDate       *time.Time
	MonthlyRent   decimal.Decimal
	Deposit       *decimal.Decimal
	PaymentDueDay *int
	DocumentURL   string
}

// Validate checks the required contract fields.
// The returned error names the first missing or malformed field.
func (t ContractTerms) Validate() error {
	if t.SpaceID == uuid.Nil {
		return shared.NewValidationError("space_id", "Space is required")
	}
	if t.StartDate.IsZero() {
		return shared.NewValidationError("start_date", "Start date is required")
	}
	if !t.MonthlyRent.IsPositive() {
		return shared.NewValidationError("monthly_rent", "Monthly rent must be positive")
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return shared.NewValidationError("end_date", "End date cannot be before start date")
	}
	if t.Deposit != nil && t.Deposit.IsNegative() {
		return shared.NewValidationError("deposit", "Deposit cannot be negative")
	}
	if t.PaymentDueDay != nil && (*t.PaymentDueDay < 1 || *t.PaymentDueDay > 31) {
		return shared.NewValidationError("payment_due_day", "Payment due day must be between 1 and 31")
	}
	if t.DocumentURL == "" {
		return shared.NewValidationError("document_url", "Contract document is required")
	}
	return nil
}

// NewActiveContract creates an active contract for tenantID on the given terms
func NewActiveContract(tenantID uuid.UUID, terms ContractTerms, ratePerArea decimal.Decimal) (*Contract, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "Tenant is required")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	rate := ratePerArea
	return &Contract{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		SpaceID:       terms.SpaceID,
		StartDate:     shared.DateOf(terms.StartDate),
		EndDate:       terms.EndDate,
		MonthlyRent:   terms.MonthlyRent,
		RatePerArea:   &rate,
		Deposit:       terms.Deposit,
		PaymentDueDay: terms.PaymentDueDay,
		Status:        ContractStatusActive,
		DocumentURL:   terms.DocumentURL,
	}, nil
}

// IsActive reports whether the contract currently holds its space
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// ContractUpdate carries a partial update; nil fields are left unchanged
type ContractUpdate struct {
	StartDate     *time.Time
	EndDate       *time.Time
	MonthlyRent   *decimal.Decimal
	Deposit       *decimal.Decimal
	PaymentDueDay *int
	Status        *ContractStatus
	DocumentURL   *string
}

// Apply writes the update onto the contract after validating it
func (c *Contract) Apply(u ContractUpdate) error {
	if u.Status != nil && !u.Status.IsValid() {
		return shared.NewValidationError("status", "Contract status is not valid")
	}
	if u.MonthlyRent != nil && !u.MonthlyRent.IsPositive() {
		return shared.NewValidationError("monthly_rent", "Monthly rent must be positive")
	}
	if u.Deposit != nil && u.Deposit.IsNegative() {
		return shared.NewValidationError("deposit", "Deposit cannot be negative")
	}
	if u.PaymentDueDay != nil && (*u.PaymentDueDay < 1 || *u.PaymentDueDay > 31) {
		return shared.NewValidationError("payment_due_day", "Payment due day must be between 1 and 31")
	}
	if u.DocumentURL != nil && *u.DocumentURL == "" {
		return shared.NewValidationError("document_url", "Contract document cannot be removed")
	}

	start := c.StartDate
	if u.StartDate != nil {
		start = shared.DateOf(*u.StartDate)
	}
	end := c.EndDate
	if u.EndDate != nil {
		d := shared.DateOf(*u.EndDate)
		end = &d
	}
	if end != nil && end.Before(start) {
		return shared.NewValidationError("end_date", "End date cannot be before start date")
	}

	c.StartDate = start
	c.EndDate = end
	if u.MonthlyRent != nil {
		c.MonthlyRent = *u.MonthlyRent
	}
	if u.Deposit != nil {
		c.Deposit = u.Deposit
	}
	if u.PaymentDueDay != nil {
		c.PaymentDueDay = u.PaymentDueDay
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.DocumentURL != nil {
		c.DocumentURL = *u.DocumentURL
	}
	c.Touch()
	return nil
}
