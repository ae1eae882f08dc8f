// Package apperr holds the error types shared by the analysis and export
// services.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContainer reports template bytes that are not a readable zip
	// container, or a container that exceeds the reader limits.
	ErrInvalidContainer = errors.New("invalid document container")

	// ErrGeneration reports a failure to serialize or persist a generated
	// document. It is the only failure that reaches generation callers.
	ErrGeneration = errors.New("document generation failed")
)

// ServiceError carries the service and operation an error came from.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error formats as [Service.Operation] message.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap supports errors.Is / errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError attaches service context to err. A nil err returns nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}

// WrapOperationError wraps err as "failed to {operation}: err".
func WrapOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// Kind wraps err so that errors.Is(result, kind) holds while the original
// message stays readable.
func Kind(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}
