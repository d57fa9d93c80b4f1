package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateOrder      = errors.New("duplicate order")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoProductsSelected  = errors.New("no products selected for return")
	ErrNoOrdersSelected    = errors.New("no orders selected")
	ErrReturnInProgress    = errors.New("a return request is already in progress")
	ErrConfirmationMissing = errors.New("operation requires confirmation")
	ErrNoTrackingID        = errors.New("order has no return tracking id")
	ErrProductIndex        = errors.New("product index out of range")
	ErrCarrierRejected     = errors.New("carrier rejected the request")
	ErrCarrierUnavailable  = errors.New("carrier unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrStorageUnavailable  = errors.New("object storage is not configured")
	ErrUpstreamReadOnly    = errors.New("upstream orders cannot be deleted")
)

// ValidationError carries per-field messages from form validation.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// DuplicateOrdersError names the order numbers that collided during an import
// or create.
type DuplicateOrdersError struct {
	OrderIDs []string
}

func (e *DuplicateOrdersError) Error() string {
	return "duplicate orderId(s): " + strings.Join(e.OrderIDs, ", ")
}

func (e *DuplicateOrdersError) Unwrap() error { return ErrDuplicateOrder }
