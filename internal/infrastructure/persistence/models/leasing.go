package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SpaceModel is the persistence model for the Space entity.
type SpaceModel struct {
	BaseModel
	Code        string                      `gorm:"type:varchar(50);not null;uniqueIndex:uniq_spaces_code"`
	Sector      string                      `gorm:"type:varchar(50)"`
	Row         string                      `gorm:"column:row_label;type:varchar(50)"`
	Place       string                      `gorm:"type:varchar(50)"`
	Area        *decimal.Decimal            `gorm:"type:decimal(12,2)"`
	Type        *leasing.SpaceType          `gorm:"type:varchar(20);index"`
	BaseRent    *decimal.Decimal            `gorm:"type:decimal(18,2)"`
	Status      leasing.SpaceStatus         `gorm:"type:varchar(20);not null;default:'vacant';index"`
	PhotoURLs   datatypes.JSONSlice[string] `gorm:"column:photo_urls"`
	Description string                      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SpaceModel) TableName() string {
	return "spaces"
}

// ToDomain converts the persistence model to a domain Space entity.
func (m *SpaceModel) ToDomain() *leasing.Space {
	photos := make([]string, len(m.PhotoURLs))
	copy(photos, m.PhotoURLs)
	return &leasing.Space{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Sector:      m.Sector,
		Row:         m.Row,
		Place:       m.Place,
		Area:        m.Area,
		Type:        m.Type,
		BaseRent:    m.BaseRent,
		Status:      m.Status,
		PhotoURLs:   photos,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Space entity.
func (m *SpaceModel) FromDomain(s *leasing.Space) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Code = s.Code
	m.Sector = s.Sector
	m.Row = s.Row
	m.Place = s.Place
	m.Area = s.Area
	m.Type = s.Type
	m.BaseRent = s.BaseRent
	m.Status = s.Status
	m.PhotoURLs = datatypes.NewJSONSlice(s.PhotoURLs)
	m.Description = s.Description
}

// SpaceModelFromDomain creates a new persistence model from domain.
func SpaceModelFromDomain(s *leasing.Space) *SpaceModel {
	m := &SpaceModel{}
	m.FromDomain(s)
	return m
}

// TenantModel is the persistence model for the Tenant entity.
type TenantModel struct {
	BaseModel
	FullName    string `gorm:"type:varchar(200);not null;index"`
	Phone       string `gorm:"type:varchar(50);not null;index"`
	CompanyName string `gorm:"type:varchar(200)"`
	TaxID       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Messenger   string `gorm:"type:varchar(100)"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *leasing.Tenant {
	return &leasing.Tenant{
		BaseEntity:  m.BaseModel.ToDomain(),
		FullName:    m.FullName,
		Phone:       m.Phone,
		CompanyName: m.CompanyName,
		TaxID:       m.TaxID,
		Email:       m.Email,
		Messenger:   m.Messenger,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *leasing.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.FullName = t.FullName
	m.Phone = t.Phone
	m.CompanyName = t.CompanyName
	m.TaxID = t.TaxID
	m.Email = t.Email
	m.Messenger = t.Messenger
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from domain.
func TenantModelFromDomain(t *leasing.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// ContractModel is the persistence model for the Contract entity.
// The partial unique index allows at most one active contract per space.
type ContractModel struct {
	BaseModel
	TenantID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	SpaceID       uuid.UUID              `gorm:"type:uuid;not null;index;uniqueIndex:uniq_contracts_active_space,where:status = 'active'"`
	StartDate     time.Time              `gorm:"type:date;not null"`
	EndDate       *time.Time             `gorm:"type:date"`
	MonthlyRent   decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	RatePerArea   *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	Deposit       *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	PaymentDueDay *int                   `gorm:"type:smallint"`
	Status        leasing.ContractStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	DocumentURL   string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract entity.
func (m *ContractModel) ToDomain() *leasing.Contract {
	return &leasing.Contract{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		SpaceID:       m.SpaceID,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		MonthlyRent:   m.MonthlyRent,
		RatePerArea:   m.RatePerArea,
		Deposit:       m.Deposit,
		PaymentDueDay: m.PaymentDueDay,
		Status:        m.Status,
		DocumentURL:   m.DocumentURL,
	}
}

// FromDomain populates the persistence model from a domain Contract entity.
func (m *ContractModel) FromDomain(c *leasing.Contract) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.TenantID = c.TenantID
	m.SpaceID = c.SpaceID
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.MonthlyRent = c.MonthlyRent
	m.RatePerArea = c.RatePerArea
	m.Deposit = c.Deposit
	m.PaymentDueDay = c.PaymentDueDay
	m.Status = c.Status
	m.DocumentURL = c.DocumentURL
}

// ContractModelFromDomain creates a new persistence model from domain.
func ContractModelFromDomain(c *leasing.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	BaseModel
	ContractID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	SpaceID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	PeriodStart   time.Time              `gorm:"type:date;not null"`
	PeriodEnd     time.Time              `gorm:"type:date;not null;index"`
	ChargedAmount decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Status        leasing.PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Method        *leasing.PaymentMethod `gorm:"type:varchar(20)"`
	Notes         string                 `gorm:"type:text"`
	PaidAt        *time.Time
	SettledBy     *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *leasing.Payment {
	return &leasing.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		ContractID:    m.ContractID,
		TenantID:      m.TenantID,
		SpaceID:       m.SpaceID,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		ChargedAmount: m.ChargedAmount,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		Method:        m.Method,
		Notes:         m.Notes,
		PaidAt:        m.PaidAt,
		SettledBy:     m.SettledBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *leasing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ContractID = p.ContractID
	m.TenantID = p.TenantID
	m.SpaceID = p.SpaceID
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.ChargedAmount = p.ChargedAmount
	m.PaidAmount = p.PaidAmount
	m.Status = p.Status
	m.Method = p.Method
	m.Notes = p.Notes
	m.PaidAt = p.PaidAt
	m.SettledBy = p.SettledBy
}

// PaymentModelFromDomain creates a new persistence model from domain.
func PaymentModelFromDomain(p *leasing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
