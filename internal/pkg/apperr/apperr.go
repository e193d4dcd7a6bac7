package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindTransactionFailure
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindTransactionFailure:
		return "transaction_failure"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a classified failure. MessageID selects the localized message;
// Data fills its template.
type Error struct {
	Kind      Kind
	MessageID string
	Message   string
	Data      map[string]interface{}
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{
		Kind:      KindValidation,
		MessageID: "ValidationFailed",
		Message:   msg,
		Data:      map[string]interface{}{"Detail": msg},
	}
}

func NotFound(entity string, id interface{}) *Error {
	return &Error{
		Kind:      KindNotFound,
		MessageID: "NotFound",
		Message:   fmt.Sprintf("%s %v not found", entity, id),
		Data:      map[string]interface{}{"Entity": entity, "ID": id},
	}
}

func Conflict(entity, name string) *Error {
	return &Error{
		Kind:      KindConflict,
		MessageID: "AlreadyExists",
		Message:   fmt.Sprintf("%s %q already exists", entity, name),
		Data:      map[string]interface{}{"Entity": entity, "Name": name},
	}
}

// Conflictf reports a state conflict that is not a duplicate name.
func Conflictf(messageID, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, MessageID: messageID, Message: fmt.Sprintf(format, args...)}
}

func TransactionFailure(err error) *Error {
	return &Error{Kind: KindTransactionFailure, MessageID: "TransactionFailed", Message: "transaction failed", Err: err}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, MessageID: "Unauthorized", Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, MessageID: "Forbidden", Message: msg}
}

// InsufficientStockError is raised when a stock movement would drive a
// material below zero. Remaining is the quantity that would be left
// (negative), Available the stock before the movement.
type InsufficientStockError struct {
	MaterialID   int64
	MaterialName string
	Direction    string
	Available    int64
	Remaining    int64
}

// Action names the movement that was refused.
func (e *InsufficientStockError) Action() string {
	switch e.Direction {
	case "export":
		return "export"
	case "adjust":
		return "adjustment"
	case "import":
		return "import"
	default:
		return "change"
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %s would leave %d",
		e.MaterialName, e.Available, e.Action(), e.Remaining)
}

// KindOf classifies err, defaulting to KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var stock *InsufficientStockError
	if errors.As(err, &stock) {
		return KindInsufficientStock
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
