// Package apperr classifies failures so controllers can map them to HTTP
// statuses without string-matching error messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindAlreadySubmitted
	KindValidationFailed
	KindPersistenceFailure
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// Is lets errors.Is match two apperr errors by kind, so callers can compare
// against the bare sentinels below.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.kind == other.kind
}

func newKind(kind Kind, msg string) *Error { return &Error{kind: kind, msg: msg} }

// Sentinels for errors.Is checks.
var (
	ErrUnauthenticated    = newKind(KindUnauthenticated, "unauthenticated")
	ErrForbidden          = newKind(KindForbidden, "forbidden")
	ErrNotFound           = newKind(KindNotFound, "not found")
	ErrAlreadySubmitted   = newKind(KindAlreadySubmitted, "already submitted")
	ErrValidationFailed   = newKind(KindValidationFailed, "validation failed")
	ErrPersistenceFailure = newKind(KindPersistenceFailure, "persistence failure")
)

func Unauthenticated(msg string) error { return newKind(KindUnauthenticated, msg) }
func Forbidden(msg string) error       { return newKind(KindForbidden, msg) }
func NotFound(msg string) error        { return newKind(KindNotFound, msg) }
func AlreadySubmitted(msg string) error {
	return newKind(KindAlreadySubmitted, msg)
}
func ValidationFailed(msg string) error { return newKind(KindValidationFailed, msg) }

// Persistence wraps a store error so the original cause stays reachable
// through errors.Unwrap.
func Persistence(msg string, err error) error {
	return &Error{kind: KindPersistenceFailure, msg: msg, err: err}
}

// HTTPStatus maps an error to the status code it should surface as.
// Unclassified errors are treated as internal failures.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadySubmitted:
		return http.StatusConflict
	case KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
