package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so the transport layer can map them
// onto HTTP statuses without inspecting messages.
type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrDuplicate
	ErrNotFound
	ErrForbidden
	ErrInvalidState
	ErrAuthentication
)

type Error struct {
	Kind    ErrorKind
	Message string
	// Fields carries per-field messages for validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: "Validation failed", Fields: fields}
}

func NewDuplicateError(format string, args ...any) *Error {
	return &Error{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...any) *Error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewAuthenticationError(format string, args ...any) *Error {
	return &Error{Kind: ErrAuthentication, Message: fmt.Sprintf(format, args...)}
}

func kindIs(err error, kind ErrorKind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

func IsValidation(err error) bool     { return kindIs(err, ErrValidation) }
func IsDuplicate(err error) bool      { return kindIs(err, ErrDuplicate) }
func IsNotFound(err error) bool       { return kindIs(err, ErrNotFound) }
func IsForbidden(err error) bool      { return kindIs(err, ErrForbidden) }
func IsInvalidState(err error) bool   { return kindIs(err, ErrInvalidState) }
func IsAuthentication(err error) bool { return kindIs(err, ErrAuthentication) }
