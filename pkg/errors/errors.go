// Package errors holds the storefront's typed errors. Each type maps onto
// one of a few sentinel kinds so that callers branch with errors.Is
// instead of inspecting messages.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Kinds.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports input that was rejected before any call was made.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return "validation failed for field " + e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// APIError is a failed call to the product API. StatusCode is zero when
// no response arrived.
type APIError struct {
	Operation  string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func NewAPIError(operation, endpoint string, statusCode int, message string) *APIError {
	return &APIError{Operation: operation, Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// WrapAPI records a transport failure. It returns nil for a nil err.
func WrapAPI(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Operation: operation, Endpoint: endpoint, Message: err.Error(), Err: err}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("product API %s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("product API %s failed (status %d): %s", e.Operation, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is classifies by status: 404 is not found, 400 and 422 are invalid
// input, none or 5xx means the backend is unavailable.
func (e *APIError) Is(target error) bool {
	var kind error
	switch s := e.StatusCode; {
	case s == http.StatusNotFound:
		kind = ErrNotFound
	case s == http.StatusBadRequest, s == http.StatusUnprocessableEntity:
		kind = ErrInvalidInput
	case s == 0, s >= 500:
		kind = ErrBackendUnavailable
	}
	return kind != nil && target == kind
}

// ConfigError reports a bad setting found while loading configuration.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error in " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports an undecodable payload, form or template.
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

// WrapParse returns nil for a nil err.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return e.Format + " parse error: " + e.Message
	}
	return e.Format + " parse error in " + e.Source + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInvalidInput }

// IOError reports a failed file or stream operation.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// WrapIO returns nil for a nil err.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError adds the operation and record to an underlying failure.
// Its kind is that of the wrapped error.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

// WrapResource returns nil for a nil err.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool           { return errors.Is(err, ErrNotFound) }
func IsValidationError(err error) bool    { return errors.Is(err, ErrInvalidInput) }
func IsBackendUnavailable(err error) bool { return errors.Is(err, ErrBackendUnavailable) }
