package app

import (
	"errors"
	"fmt"
)

// Common errors returned by editor operations.
var (
	// ErrQuit signals a clean shutdown request.
	ErrQuit = errors.New("quit requested")

	// ErrInitialization indicates a component failed to initialize.
	ErrInitialization = errors.New("initialization failed")

	// ErrInvalidOperation indicates an operation was requested in a
	// state that cannot honor it.
	ErrInvalidOperation = errors.New("invalid operation")
)

// OperationError wraps an error with operation context.
type OperationError struct {
	// Op is the operation that failed (e.g. "drag.start", "history.undo").
	Op string
	// Target is what the operation was acting on (shape id, mode name).
	Target string
	// Context holds additional key-value context.
	Context map[string]any
	// Err is the underlying error.
	Err error
}

// NewOperationError creates a new operation error.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// WithContext adds a context key-value pair.
func (e *OperationError) WithContext(key string, value any) *OperationError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
