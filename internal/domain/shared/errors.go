package shared

import (
	"errors"
	"fmt"
)

// Error codes shared across bounded contexts
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidPeriod    = "INVALID_PERIOD"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeSpaceOccupied    = "SPACE_OCCUPIED"
	CodeNoActiveContract = "NO_ACTIVE_CONTRACT"
	CodeContractActive   = "CONTRACT_ACTIVE"
	CodeInvalidState     = "INVALID_STATE"
	CodePersistence      = "PERSISTENCE_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the offending input for validation errors
	Field string `json:"field,omitempty"`

	cause error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// This lets callers use errors.Is(err, shared.ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a missing or malformed required input
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError reports that the referenced entity does not exist
func NewNotFoundError(entity string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", entity))
}

// NewPersistenceError wraps a data-store failure
func NewPersistenceError(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: "failed to " + op,
		cause:   err,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput     = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInvalidPeriod    = NewDomainError(CodeInvalidPeriod, "Period end is before period start")
	ErrSpaceOccupied    = NewDomainError(CodeSpaceOccupied, "Space already has an active contract")
	ErrNoActiveContract = NewDomainError(CodeNoActiveContract, "Space has no active contract")
	ErrContractActive   = NewDomainError(CodeContractActive, "Active contracts cannot be deleted")
	ErrUnauthorized     = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden        = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// ErrorCode extracts the domain error code from err, or "" when err is not a DomainError
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsPersistenceError reports whether err is a wrapped data-store failure
func IsPersistenceError(err error) bool {
	return ErrorCode(err) == CodePersistence
}
