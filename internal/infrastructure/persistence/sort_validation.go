package persistence

import (
	"strings"

	"github.com/marketrent/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// paginate applies whitelisted ordering plus limit/offset from a shared.Filter
func paginate(query *gorm.DB, f shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	f = f.Normalize()
	field := ValidateSortField(f.OrderBy, allowed, defaultField)
	return query.
		Order(field + " " + ValidateSortOrder(f.OrderDir)).
		Limit(f.PageSize).
		Offset(f.Offset())
}

// SpaceSortFields contains allowed sort fields for spaces
var SpaceSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"sector":     true,
	"area":       true,
	"base_rent":  true,
	"status":     true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"full_name":    true,
	"company_name": true,
	"phone":        true,
}

// ContractSortFields contains allowed sort fields for contracts
var ContractSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"start_date":   true,
	"end_date":     true,
	"monthly_rent": true,
	"status":       true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"period_start":   true,
	"period_end":     true,
	"charged_amount": true,
	"paid_amount":    true,
	"status":         true,
	"paid_at":        true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"expense_date": true,
	"category":     true,
	"amount":       true,
}
