package leasing

import (
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/marketrent/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// storeErr passes domain errors through unchanged and wraps anything else
// coming back from a repository as a persistence error.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if shared.ErrorCode(err) != "" {
		return err
	}
	return shared.NewPersistenceError(op, err)
}

// fail records err on span and returns it
func fail(span trace.Span, err error) error {
	telemetry.RecordError(span, err)
	return err
}
