package leasing

import (
	"strings"

	"github.com/marketrent/backend/internal/domain/shared"
)

// Tenant is a person or company renting spaces
type Tenant struct {
	shared.BaseEntity
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	Email       string `json:"email"`
	Messenger   string `json:"messenger"`
	Notes       string `json:"notes"`
}

// NewTenant creates a tenant after checking the required fields
func NewTenant(fullName, phone string) (*Tenant, error) {
	t := &Tenant{BaseEntity: shared.NewBaseEntity()}
	if err := t.Rename(fullName, phone); err != nil {
		return nil, err
	}
	return t, nil
}

// Rename replaces the required identity fields
func (t *Tenant) Rename(fullName, phone string) error {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" {
		return shared.NewValidationError("full_name", "Tenant full name is required")
	}
	if len(fullName) > 200 {
		return shared.NewValidationError("full_name", "Tenant full name cannot exceed 200 characters")
	}
	if phone == "" {
		return shared.NewValidationError("phone", "Tenant phone is required")
	}
	if len(phone) > 50 {
		return shared.NewValidationError("phone", "Tenant phone cannot exceed 50 characters")
	}
	t.FullName = fullName
	t.Phone = phone
	t.Touch()
	return nil
}
