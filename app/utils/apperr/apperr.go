// Package apperr defines the error kinds shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindInsufficientInventory
	KindDuplicateReview
	KindDuplicateSKU
	KindPermissionDenied
	KindUnauthenticated
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_error"
	case KindInsufficientInventory:
		return "insufficient_inventory"
	case KindDuplicateReview:
		return "duplicate_review"
	case KindDuplicateSKU:
		return "duplicate_sku"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTransient:
		return "transient_failure"
	default:
		return "internal_error"
	}
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrValidation            = &Error{Kind: KindValidation}
	ErrInsufficientInventory = &Error{Kind: KindInsufficientInventory}
	ErrDuplicateReview       = &Error{Kind: KindDuplicateReview}
	ErrDuplicateSKU          = &Error{Kind: KindDuplicateSKU}
	ErrPermissionDenied      = &Error{Kind: KindPermissionDenied}
	ErrUnauthenticated       = &Error{Kind: KindUnauthenticated}
	ErrTransient             = &Error{Kind: KindTransient}
)

type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input field, if any.
	Field string
	// ProductID names the offending product for inventory and lookup failures.
	ProductID uint
	// Fields holds per-field validation messages.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Retryable reports whether the caller may safely retry the operation.
func Retryable(err error) bool {
	return KindOf(err) == KindTransient
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ProductNotFound(productID uint) *Error {
	return &Error{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("Product %d not found or unavailable", productID),
		Field:     "product_id",
		ProductID: productID,
	}
}

func Validation(field, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	e := &Error{Kind: KindValidation, Message: msg, Field: field}
	if field != "" {
		e.Fields = map[string]string{field: msg}
	}
	return e
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func InsufficientInventory(productID uint, title string, available, requested int) *Error {
	return &Error{
		Kind:      KindInsufficientInventory,
		Message:   fmt.Sprintf("Insufficient inventory for %s. Available: %d, Requested: %d", title, available, requested),
		Field:     "quantity",
		ProductID: productID,
	}
}

func DuplicateReview() *Error {
	return &Error{Kind: KindDuplicateReview, Message: "You have already reviewed this product"}
}

func DuplicateSKU(sku string) *Error {
	return &Error{Kind: KindDuplicateSKU, Message: fmt.Sprintf("SKU %s already exists", sku), Field: "sku"}
}

func PermissionDenied(format string, args ...any) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Transient(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Message: msg, Err: err}
}
