package leasing

import (
	"time"

	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingMonth is the fixed month length used to count billed months.
// Periods are not measured in calendar months.
const BillingMonth = 30 * 24 * time.Hour

// RatePerArea returns monthlyRent / area rounded to 2 places, or zero when area is not positive
func RatePerArea(monthlyRent, area decimal.Decimal) decimal.Decimal {
	if !area.IsPositive() {
		return decimal.Zero
	}
	return monthlyRent.Div(area).Round(2)
}

// BilledMonths returns max(1, ceil((end - start) / 30 days))
func BilledMonths(periodStart, periodEnd time.Time) (int64, error) {
	if periodEnd.Before(periodStart) {
		return 0, shared.ErrInvalidPeriod
	}
	span := periodEnd.Sub(periodStart)
	months := int64(span / BillingMonth)
	if span%BillingMonth != 0 {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months, nil
}

// ChargedAmount returns the rent owed for the period: monthlyRent times the billed months
func ChargedAmount(monthlyRent decimal.Decimal, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	months, err := BilledMonths(periodStart, periodEnd)
	if err != nil {
		return decimal.Zero, err
	}
	return monthlyRent.Mul(decimal.NewFromInt(months)), nil
}
