package leasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
)

// ContractService serves contract reads. Writes go through LifecycleService.
type ContractService struct {
	contracts leasing.ContractRepository
}

// NewContractService creates a new ContractService
func NewContractService(contracts leasing.ContractRepository) *ContractService {
	return &ContractService{contracts: contracts}
}

// GetByID retrieves a contract by ID
func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("load contract", err)
	}
	resp := ToContractResponse(contract)
	return &resp, nil
}

// List returns a page of contracts
func (s *ContractService) List(ctx context.Context, q ContractListQuery) (shared.Paginated[ContractResponse], error) {
	filter := leasing.ContractFilter{
		Filter: toFilter(q.Page, q.PageSize, q.OrderBy, q.OrderDir, ""),
	}
	if q.Status != "" {
		status := leasing.ContractStatus(q.Status)
		filter.Status = &status
	}
	var err error
	if filter.TenantID, err = parseOptionalID("tenant_id", q.TenantID); err != nil {
		return shared.Paginated[ContractResponse]{}, err
	}
	if filter.SpaceID, err = parseOptionalID("space_id", q.SpaceID); err != nil {
		return shared.Paginated[ContractResponse]{}, err
	}

	contracts, err := s.contracts.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ContractResponse]{}, storeErr("list contracts", err)
	}
	total, err := s.contracts.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ContractResponse]{}, storeErr("count contracts", err)
	}

	items := make([]ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = ToContractResponse(&contracts[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
