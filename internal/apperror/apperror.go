// Package apperror defines the error taxonomy shared by every layer of the
// engine. A failed operation surfaces exactly one of these kinds to the
// caller; nothing is retried internally and a rejected call leaves no
// partial mutation behind.
package apperror

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	// KindValidation covers malformed or out-of-range input.
	KindValidation Kind = iota + 1
	// KindAuthorization covers a caller lacking the required capability
	// or not owning the entity it tries to mutate.
	KindAuthorization
	// KindState covers a precondition on mutable state being violated:
	// sold out, event started/ended, paused, listing inactive.
	KindState
	// KindPayment covers payment amount mismatches and insufficient funds.
	KindPayment
	// KindNotFound covers unknown or burned entities.
	KindNotFound
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Msg: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }
func State(msg string) *Error         { return &Error{Kind: KindState, Msg: msg} }
func Payment(msg string) *Error       { return &Error{Kind: KindPayment, Msg: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// IsKind reports whether err or any error it wraps belongs to the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// AsError unwraps err to a taxonomy error, or nil when err is not one.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	return nil
}
