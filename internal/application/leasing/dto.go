package leasing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Space DTOs
// =============================================================================

// CreateSpaceRequest represents a request to create a space
type CreateSpaceRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Sector      string           `json:"sector" binding:"max=50"`
	Row         string           `json:"row" binding:"max=50"`
	Place       string           `json:"place" binding:"max=50"`
	Area        *decimal.Decimal `json:"area"`
	Type        *string          `json:"type" binding:"omitempty,oneof=kiosk pavilion open-space container"`
	BaseRent    *decimal.Decimal `json:"base_rent"`
	PhotoURLs   []string         `json:"photo_urls" binding:"omitempty,dive,url"`
	Description string           `json:"description" binding:"max=2000"`
}

// UpdateSpaceRequest represents a partial space update; nil fields are kept
type UpdateSpaceRequest struct {
	Code        *string          `json:"code" binding:"omitempty,min=1,max=50"`
	Sector      *string          `json:"sector" binding:"omitempty,max=50"`
	Row         *string          `json:"row" binding:"omitempty,max=50"`
	Place       *string          `json:"place" binding:"omitempty,max=50"`
	Area        *decimal.Decimal `json:"area"`
	Type        *string          `json:"type" binding:"omitempty,oneof=kiosk pavilion open-space container"`
	BaseRent    *decimal.Decimal `json:"base_rent"`
	Status      *string          `json:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
	PhotoURLs   []string         `json:"photo_urls" binding:"omitempty,dive,url"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
}

// SpaceListQuery holds list parameters for spaces
type SpaceListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
	Type     string `form:"type" binding:"omitempty,oneof=kiosk pavilion open-space container"`
	Sector   string `form:"sector"`
}

// SpaceResponse is the API view of a space
type SpaceResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Sector      string           `json:"sector,omitempty"`
	Row         string           `json:"row,omitempty"`
	Place       string           `json:"place,omitempty"`
	Area        *decimal.Decimal `json:"area,omitempty"`
	Type        *string          `json:"type,omitempty"`
	BaseRent    *decimal.Decimal `json:"base_rent,omitempty"`
	Status      string           `json:"status"`
	PhotoURLs   []string         `json:"photo_urls"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToSpaceResponse converts a domain space to its response
func ToSpaceResponse(s *leasing.Space) SpaceResponse {
	resp := SpaceResponse{
		ID:          s.ID,
		Code:        s.Code,
		Sector:      s.Sector,
		Row:         s.Row,
		Place:       s.Place,
		Area:        s.Area,
		BaseRent:    s.BaseRent,
		Status:      string(s.Status),
		PhotoURLs:   s.PhotoURLs,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Type != nil {
		t := string(*s.Type)
		resp.Type = &t
	}
	if resp.PhotoURLs == nil {
		resp.PhotoURLs = []string{}
	}
	return resp
}

// =============================================================================
// Tenant DTOs
// =============================================================================

// CreateTenantRequest represents a request to create a tenant
type CreateTenantRequest struct {
	FullName    string `json:"full_name" binding:"required,max=200"`
	Phone       string `json:"phone" binding:"required,max=50"`
	CompanyName string `json:"company_name" binding:"max=200"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Messenger   string `json:"messenger" binding:"max=100"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// UpdateTenantRequest represents a partial tenant update
type UpdateTenantRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,min=1,max=50"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
	TaxID       *string `json:"tax_id" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,max=200"`
	Messenger   *string `json:"messenger" binding:"omitempty,max=100"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

// TenantListQuery holds list parameters for tenants
type TenantListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// TenantResponse is the API view of a tenant
type TenantResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name,omitempty"`
	TaxID       string    `json:"tax_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	Messenger   string    `json:"messenger,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTenantResponse converts a domain tenant to its response
func ToTenantResponse(t *leasing.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		FullName:    t.FullName,
		Phone:       t.Phone,
		CompanyName: t.CompanyName,
		TaxID:       t.TaxID,
		Email:       t.Email,
		Messenger:   t.Messenger,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// =============================================================================
// Contract DTOs
// =============================================================================

// ContractInput carries the contract part of a create request.
// Required fields are checked by the service so the error names the field.
type ContractInput struct {
	SpaceID       uuid.UUID        `json:"space_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	MonthlyRent   decimal.Decimal  `json:"monthly_rent"`
	Deposit       *decimal.Decimal `json:"deposit"`
	PaymentDueDay *int             `json:"payment_due_day"`
	DocumentURL   string           `json:"document_url"`
}

func (in ContractInput) terms() leasing.ContractTerms {
	return leasing.ContractTerms{
		SpaceID:       in.SpaceID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		MonthlyRent:   in.MonthlyRent,
		Deposit:       in.Deposit,
		PaymentDueDay: in.PaymentDueDay,
		DocumentURL:   in.DocumentURL,
	}
}

// CreateContractRequest creates a contract for an existing tenant
type CreateContractRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
	ContractInput
}

// CreateTenantWithContractRequest onboards a tenant and their first contract
type CreateTenantWithContractRequest struct {
	Tenant   CreateTenantRequest `json:"tenant"`
	Contract ContractInput       `json:"contract"`
}

// TenantWithContractResponse is the result of onboarding
type TenantWithContractResponse struct {
	Tenant   TenantResponse   `json:"tenant"`
	Contract ContractResponse `json:"contract"`
}

// UpdateContractRequest is a partial contract update
type UpdateContractRequest struct {
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	MonthlyRent   *decimal.Decimal `json:"monthly_rent"`
	Deposit       *decimal.Decimal `json:"deposit"`
	PaymentDueDay *int             `json:"payment_due_day" binding:"omitempty,min=1,max=31"`
	Status        *string          `json:"status" binding:"omitempty,oneof=active expired terminated"`
	DocumentURL   *string          `json:"document_url"`
}

func (r UpdateContractRequest) update() leasing.ContractUpdate {
	u := leasing.ContractUpdate{
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		MonthlyRent:   r.MonthlyRent,
		Deposit:       r.Deposit,
		PaymentDueDay: r.PaymentDueDay,
		DocumentURL:   r.DocumentURL,
	}
	if r.Status != nil {
		s := leasing.ContractStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// ContractListQuery holds list parameters for contracts
type ContractListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status   string `form:"status" binding:"omitempty,oneof=active expired terminated"`
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	SpaceID  string `form:"space_id" binding:"omitempty,uuid"`
}

// ContractResponse is the API view of a contract
type ContractResponse struct {
	ID            uuid.UUID        `json:"id"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	SpaceID       uuid.UUID        `json:"space_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	MonthlyRent   decimal.Decimal  `json:"monthly_rent"`
	RatePerArea   *decimal.Decimal `json:"rate_per_area,omitempty"`
	Deposit       *decimal.Decimal `json:"deposit,omitempty"`
	PaymentDueDay *int             `json:"payment_due_day,omitempty"`
	Status        string           `json:"status"`
	DocumentURL   string           `json:"document_url,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToContractResponse converts a domain contract to its response
func ToContractResponse(c *leasing.Contract) ContractResponse {
	return ContractResponse{
		ID:            c.ID,
		TenantID:      c.TenantID,
		SpaceID:       c.SpaceID,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		MonthlyRent:   c.MonthlyRent,
		RatePerArea:   c.RatePerArea,
		Deposit:       c.Deposit,
		PaymentDueDay: c.PaymentDueDay,
		Status:        string(c.Status),
		DocumentURL:   c.DocumentURL,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest records money received for a space's active contract
type RecordPaymentRequest struct {
	SpaceID     uuid.UUID       `json:"space_id" binding:"required"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PeriodStart time.Time       `json:"period_start" binding:"required"`
	PeriodEnd   time.Time       `json:"period_end" binding:"required"`
	Method      *string         `json:"method" binding:"omitempty,oneof=cash card transfer"`
	Notes       string          `json:"notes" binding:"max=2000"`
	PaidAt      *time.Time      `json:"paid_at"`
	SettledBy   *uuid.UUID      `json:"-"`
}

// ApplyPaymentRequest adds a settlement; a missing amount settles the balance
type ApplyPaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	SettledBy *uuid.UUID       `json:"-"`
}

// PaymentListQuery holds list parameters for payments
type PaymentListQuery struct {
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	ContractID string     `form:"contract_id" binding:"omitempty,uuid"`
	TenantID   string     `form:"tenant_id" binding:"omitempty,uuid"`
	SpaceID    string     `form:"space_id" binding:"omitempty,uuid"`
	PeriodFrom *time.Time `form:"period_from" time_format:"2006-01-02"`
	PeriodTo   *time.Time `form:"period_to" time_format:"2006-01-02"`
}

// PaymentResponse is the API view of a payment
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	ContractID    uuid.UUID       `json:"contract_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	SpaceID       uuid.UUID       `json:"space_id"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        string          `json:"status"`
	Method        *string         `json:"method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	SettledBy     *uuid.UUID      `json:"settled_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a domain payment to its response
func ToPaymentResponse(p *leasing.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		ContractID:    p.ContractID,
		TenantID:      p.TenantID,
		SpaceID:       p.SpaceID,
		PeriodStart:   p.PeriodStart,
		PeriodEnd:     p.PeriodEnd,
		ChargedAmount: p.ChargedAmount,
		PaidAmount:    p.PaidAmount,
		Remaining:     p.Remaining(),
		Status:        string(p.Status),
		Notes:         p.Notes,
		PaidAt:        p.PaidAt,
		SettledBy:     p.SettledBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Method != nil {
		m := string(*p.Method)
		resp.Method = &m
	}
	return resp
}

// =============================================================================
// Dashboard DTOs
// =============================================================================

// DashboardQuery selects the month the money figures cover
type DashboardQuery struct {
	Month *time.Time `form:"month" time_format:"2006-01"`
}

// DashboardSummary is the headline view for the market owner
type DashboardSummary struct {
	PeriodStart      time.Time        `json:"period_start"`
	PeriodEnd        time.Time        `json:"period_end"`
	Spaces           map[string]int64 `json:"spaces"`
	TotalSpaces      int64            `json:"total_spaces"`
	ActiveContracts  int64            `json:"active_contracts"`
	MonthlyRentRoll  decimal.Decimal  `json:"monthly_rent_roll"`
	Charged          decimal.Decimal  `json:"charged"`
	Collected        decimal.Decimal  `json:"collected"`
	Outstanding      decimal.Decimal  `json:"outstanding"`
	OverduePayments  int64            `json:"overdue_payments"`
	Expenses         decimal.Decimal  `json:"expenses"`
	NetIncome        decimal.Decimal  `json:"net_income"`
	OccupancyPercent decimal.Decimal  `json:"occupancy_percent"`
}

// =============================================================================
// Upload DTOs
// =============================================================================

// UploadRequest asks for a presigned URL for one file
type UploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// UploadResponse carries where to PUT the file and where it will be served from
type UploadResponse struct {
	UploadURL string    `json:"upload_url"`
	FileURL   string    `json:"file_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// =============================================================================
// Query helpers
// =============================================================================

func toFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir != "" {
		f.OrderDir = orderDir
	}
	f.Search = strings.TrimSpace(search)
	return f.Normalize()
}

// parseOptionalID parses an optional uuid query value
func parseOptionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewValidationError(field, "Invalid ID format")
	}
	return &id, nil
}
