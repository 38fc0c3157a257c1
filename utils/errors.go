package utils

import (
	"errors"
	"fmt"
)

// Failure conditions raised by component-level code. Controllers are the only
// place these are converted into HTTP responses.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// ValidationError marks bad or missing user input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError carries the identifier that was asked for, so the response
// can echo it back.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Key)
}

// RangeNotSatisfiableError is raised for byte ranges outside the object.
// TotalSize is reported in the Content-Range header of the 416 response.
type RangeNotSatisfiableError struct {
	TotalSize int64
}

func (e *RangeNotSatisfiableError) Error() string {
	return fmt.Sprintf("requested range not satisfiable (size %d)", e.TotalSize)
}

// UpstreamError is a non-success response from a remote fetch. Body is kept
// for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}
