package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SpaceFilter defines filtering options for space queries
type SpaceFilter struct {
	shared.Filter
	Status *SpaceStatus
	Type   *SpaceType
	Sector string
}

// SpaceRepository defines the interface for space persistence
type SpaceRepository interface {
	// FindByID finds a space by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Space, error)

	// FindByCode finds a space by its unique code
	FindByCode(ctx context.Context, code string) (*Space, error)

	// FindAll finds spaces matching the filter
	FindAll(ctx context.Context, filter SpaceFilter) ([]Space, error)

	// Count counts spaces matching the filter
	Count(ctx context.Context, filter SpaceFilter) (int64, error)

	// CountByStatus counts spaces per status
	CountByStatus(ctx context.Context) (map[SpaceStatus]int64, error)

	// Create inserts a new space; a duplicate code yields ErrAlreadyExists
	Create(ctx context.Context, space *Space) error

	// Save updates an existing space
	Save(ctx context.Context, space *Space) error

	// Delete removes a space
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus sets the status of the given spaces, skipping any under maintenance
	UpdateStatus(ctx context.Context, ids []uuid.UUID, status SpaceStatus) error
}

// TenantFilter defines filtering options for tenant queries
type TenantFilter struct {
	shared.Filter
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context, filter TenantFilter) ([]Tenant, error)
	Count(ctx context.Context, filter TenantFilter) (int64, error)
	Create(ctx context.Context, tenant *Tenant) error
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContractFilter defines filtering options for contract queries
type ContractFilter struct {
	shared.Filter
	Status   *ContractStatus
	TenantID *uuid.UUID
	SpaceID  *uuid.UUID
}

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	// FindByID finds a contract by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindAll finds contracts matching the filter
	FindAll(ctx context.Context, filter ContractFilter) ([]Contract, error)

	// Count counts contracts matching the filter
	Count(ctx context.Context, filter ContractFilter) (int64, error)

	// FindByTenant returns every contract referencing the tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Contract, error)

	// FindActiveBySpace returns the active contract on a space, or a not-found error
	FindActiveBySpace(ctx context.Context, spaceID uuid.UUID) (*Contract, error)

	// ExistsActiveForSpace reports whether an active contract references the space
	ExistsActiveForSpace(ctx context.Context, spaceID uuid.UUID) (bool, error)

	// Create inserts a contract. A second active contract on the same space
	// is rejected by the store and yields ErrSpaceOccupied.
	Create(ctx context.Context, contract *Contract) error

	// Save updates an existing contract, with the same active-space guarantee as Create
	Save(ctx context.Context, contract *Contract) error

	// Delete removes a contract
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByTenant removes every contract referencing the tenant
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error

	// SumActiveRent totals the monthly rent of active contracts
	SumActiveRent(ctx context.Context) (decimal.Decimal, int64, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	Status     *PaymentStatus
	ContractID *uuid.UUID
	TenantID   *uuid.UUID
	SpaceID    *uuid.UUID
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

// PaymentTotals aggregates charged and paid amounts
type PaymentTotals struct {
	Charged decimal.Decimal
	Paid    decimal.Decimal
	Count   int64
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
	Create(ctx context.Context, payment *Payment) error
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkOverdue sets status overdue on pending and partial payments whose
	// period ended before the given day. It returns the number of rows changed.
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)

	// Totals sums payments whose period starts within [from, to)
	Totals(ctx context.Context, from, to time.Time) (PaymentTotals, error)

	// CountByStatus counts payments with the given status
	CountByStatus(ctx context.Context, status PaymentStatus) (int64, error)
}
