package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP layer and for step policies in the
// reconciliation pipeline.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindConflict
	KindNotFound
	KindUpstream
	KindInternal
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError    { return New(KindValidation, message) }
func Authorization(message string) *AppError { return New(KindAuthorization, message) }
func Conflict(message string) *AppError      { return New(KindConflict, message) }
func NotFound(message string) *AppError      { return New(KindNotFound, message) }

func Upstream(message string, err error) *AppError {
	return Wrap(KindUpstream, message, err)
}

// KindOf returns the classification of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
