package leasing

import (
	"strings"

	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SpaceType represents the kind of trading unit
type SpaceType string

const (
	SpaceTypeKiosk     SpaceType = "kiosk"
	SpaceTypePavilion  SpaceType = "pavilion"
	SpaceTypeOpenSpace SpaceType = "open-space"
	SpaceTypeContainer SpaceType = "container"
)

// IsValid checks if the type is a valid SpaceType
func (t SpaceType) IsValid() bool {
	switch t {
	case SpaceTypeKiosk, SpaceTypePavilion, SpaceTypeOpenSpace, SpaceTypeContainer:
		return true
	}
	return false
}

// String returns the string representation of SpaceType
func (t SpaceType) String() string {
	return string(t)
}

// SpaceStatus represents the occupancy status of a space
type SpaceStatus string

const (
	SpaceStatusVacant      SpaceStatus = "vacant"
	SpaceStatusOccupied    SpaceStatus = "occupied"
	SpaceStatusMaintenance SpaceStatus = "maintenance"
)

// IsValid checks if the status is a valid SpaceStatus
func (s SpaceStatus) IsValid() bool {
	switch s {
	case SpaceStatusVacant, SpaceStatusOccupied, SpaceStatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of SpaceStatus
func (s SpaceStatus) String() string {
	return string(s)
}

// Space is a physical trading unit that can be leased
type Space struct {
	shared.BaseEntity
	Code        string           `json:"code"`
	Sector      string           `json:"sector"`
	Row         string           `json:"row"`
	Place       string           `json:"place"`
	Area        *decimal.Decimal `json:"area"`
	Type        *SpaceType       `json:"type"`
	BaseRent    *decimal.Decimal `json:"base_rent"`
	Status      SpaceStatus      `json:"status"`
	PhotoURLs   []string         `json:"photo_urls"`
	Description string           `json:"description"`
}

// NewSpace creates a new vacant space
func NewSpace(code string) (*Space, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("code", "Space code is required")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("code", "Space code cannot exceed 50 characters")
	}
	return &Space{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Status:     SpaceStatusVacant,
	}, nil
}

// SetArea sets the area in square meters; nil clears it
func (s *Space) SetArea(area *decimal.Decimal) error {
	if area != nil && !area.IsPositive() {
		return shared.NewValidationError("area", "Area must be positive")
	}
	s.Area = area
	s.Touch()
	return nil
}

// SetType sets the space type; nil clears it
func (s *Space) SetType(t *SpaceType) error {
	if t != nil && !t.IsValid() {
		return shared.NewValidationError("type", "Space type is not valid")
	}
	s.Type = t
	s.Touch()
	return nil
}

// SetBaseRent sets the declared base rent; nil clears it
func (s *Space) SetBaseRent(rent *decimal.Decimal) error {
	if rent != nil && rent.IsNegative() {
		return shared.NewValidationError("base_rent", "Base rent cannot be negative")
	}
	s.BaseRent = rent
	s.Touch()
	return nil
}

// SetManualStatus applies an operator edit of the status. held reports whether
// an active contract references the space: vacant and occupied must agree with
// it, while maintenance may be set either way.
func (s *Space) SetManualStatus(status SpaceStatus, held bool) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Space status is not valid")
	}
	switch {
	case status == SpaceStatusOccupied && !held:
		return shared.NewDomainError(shared.CodeInvalidState, "Occupied status is set by an active contract")
	case status == SpaceStatusVacant && held:
		return shared.NewDomainError(shared.CodeInvalidState, "Space is held by an active contract")
	}
	s.Status = status
	s.Touch()
	return nil
}

// AreaOrZero returns the area, or zero when unknown
func (s *Space) AreaOrZero() decimal.Decimal {
	if s == nil || s.Area == nil {
		return decimal.Zero
	}
	return *s.Area
}
