package apperrors

import "errors"

// Kind classifies the expected business outcomes every operation can
// return. Anything outside these five is an infrastructure failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// KindOf extracts the business kind from err, or KindUnknown when err
// is an unexpected store/infrastructure failure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
