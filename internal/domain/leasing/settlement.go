package leasing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolveSettlement derives a payment status from the charged and paid amounts.
//
// Paid and partial are the only states it assigns from amounts. Overdue is set by
// the overdue sweep and survives here until the amounts reach partial or paid.
func ResolveSettlement(charged, paid decimal.Decimal, current PaymentStatus) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(charged):
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	case current == PaymentStatusOverdue:
		return PaymentStatusOverdue
	default:
		return PaymentStatusPending
	}
}

// SettlementTime picks the settlement timestamp for a freshly resolved status.
// A caller-supplied time wins; otherwise a paid payment is stamped with now.
func SettlementTime(status PaymentStatus, supplied *time.Time, now time.Time) *time.Time {
	if supplied != nil {
		t := *supplied
		return &t
	}
	if status == PaymentStatusPaid {
		t := now
		return &t
	}
	return nil
}
