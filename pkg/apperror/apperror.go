// Package apperror defines the error kinds the board reports to clients and
// their HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindAuth
	KindPermission
	KindConflict
	KindNotFound
	KindSelfDelete
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuth:
		return "AuthError"
	case KindPermission:
		return "PermissionError"
	case KindConflict:
		return "ConflictError"
	case KindNotFound:
		return "NotFoundError"
	case KindSelfDelete:
		return "SelfDeleteError"
	default:
		return "StoreError"
	}
}

// StoreMessage is the only text a client ever sees for a persistence failure.
const StoreMessage = "internal storage error"

type Error struct {
	Kind    Kind
	Message string
	// Err is the underlying cause. It is logged, never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func Permission(msg string) error { return &Error{Kind: KindPermission, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func SelfDelete(msg string) error { return &Error{Kind: KindSelfDelete, Message: msg} }

// Store wraps a persistence failure. A nil cause yields nil.
func Store(cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: KindStore, Message: StoreMessage, Err: cause}
}

// KindOf reports the kind of err. Errors that did not come from this package
// are treated as store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage is the text that may be sent to a client for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStore {
		return e.Message
	}
	return StoreMessage
}

func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindSelfDelete:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
