package leasing

import (
	"context"
	"time"

	"github.com/marketrent/backend/internal/domain/finance"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DashboardService builds the owner's headline figures
type DashboardService struct {
	spaces    leasing.SpaceRepository
	contracts leasing.ContractRepository
	payments  leasing.PaymentRepository
	expenses  finance.ExpenseRepository
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	spaces leasing.SpaceRepository,
	contracts leasing.ContractRepository,
	payments leasing.PaymentRepository,
	expenses finance.ExpenseRepository,
) *DashboardService {
	return &DashboardService{
		spaces:    spaces,
		contracts: contracts,
		payments:  payments,
		expenses:  expenses,
		now:       time.Now,
	}
}

// Summary returns occupancy for today and money figures for the requested
// month, defaulting to the current month
func (s *DashboardService) Summary(ctx context.Context, q DashboardQuery) (*DashboardSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "summary")
	defer span.End()

	ref := s.now()
	if q.Month != nil {
		ref = *q.Month
	}
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	counts, err := s.spaces.CountByStatus(ctx)
	if err != nil {
		return nil, fail(span, storeErr("count spaces", err))
	}
	rentRoll, active, err := s.contracts.SumActiveRent(ctx)
	if err != nil {
		return nil, fail(span, storeErr("sum active rent", err))
	}
	totals, err := s.payments.Totals(ctx, from, to)
	if err != nil {
		return nil, fail(span, storeErr("sum payments", err))
	}
	overdue, err := s.payments.CountByStatus(ctx, leasing.PaymentStatusOverdue)
	if err != nil {
		return nil, fail(span, storeErr("count overdue payments", err))
	}
	byCategory, err := s.expenses.SumByCategory(ctx, from, to)
	if err != nil {
		return nil, fail(span, storeErr("sum expenses", err))
	}

	summary := &DashboardSummary{
		PeriodStart:      from,
		PeriodEnd:        to.AddDate(0, 0, -1),
		Spaces:           make(map[string]int64, len(counts)),
		ActiveContracts:  active,
		MonthlyRentRoll:  rentRoll,
		Charged:          totals.Charged,
		Collected:        totals.Paid,
		OverduePayments:  overdue,
		Expenses:         decimal.Zero,
		OccupancyPercent: decimal.Zero,
	}
	for status, n := range counts {
		summary.Spaces[string(status)] = n
		summary.TotalSpaces += n
	}
	for _, c := range byCategory {
		summary.Expenses = summary.Expenses.Add(c.Total)
	}

	summary.Outstanding = totals.Charged.Sub(totals.Paid)
	if summary.Outstanding.IsNegative() {
		summary.Outstanding = decimal.Zero
	}
	summary.NetIncome = totals.Paid.Sub(summary.Expenses)
	if summary.TotalSpaces > 0 {
		occupied := decimal.NewFromInt(counts[leasing.SpaceStatusOccupied])
		summary.OccupancyPercent = occupied.Mul(hundred).
			Div(decimal.NewFromInt(summary.TotalSpaces)).Round(1)
	}

	telemetry.SetOK(span)
	return summary, nil
}
