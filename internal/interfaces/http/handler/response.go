package handler

import "github.com/marketrent/backend/internal/interfaces/http/dto"

// APIResponse is the typed form of dto.Response used in route annotations
// and by clients decoding a single resource
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ListResponse is the typed form of a paginated dto.Response
type ListResponse[T any] struct {
	Success bool      `json:"success"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse documents the body of every 4xx and 5xx reply
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
