// Package errors defines the SDK's error taxonomy: a single wrapped error
// type carrying a Kind that callers can branch on with errors.Is/errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies one of the error categories from the lifecycle design.
type Kind string

const (
	KindValidation       Kind = "ValidationError"
	KindState            Kind = "StateError"
	KindConfiguration    Kind = "ConfigurationError"
	KindCrypto           Kind = "CryptoError"
	KindResourceNotFound Kind = "ResourceNotFound"
	KindInsufficientFund Kind = "InsufficientFunds"
	KindNetwork          Kind = "NetworkError"
	KindConflict         Kind = "ConflictError"
)

// Error is the concrete error type returned by every public SDK operation.
type Error struct {
	Kind       Kind
	Message    string
	Cause      error
	Retryable  bool
	Data       interface{}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As can traverse it.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	var other *Error
	if stderrors.As(target, &other) {
		return e.Kind == other.Kind
	}

	return false
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	var cause error

	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			cause = err
			args = args[:len(args)-1]
		}
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// NewValidationError reports malformed inputs, schema failures, bad semver,
// missing required fields, bad MIME types, duplicate ids, checksum failures.
func NewValidationError(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// NewStateError reports an illegal lifecycle transition.
func NewStateError(format string, args ...interface{}) *Error {
	return newf(KindState, format, args...)
}

// NewConfigurationError reports a missing or invalid adapter/config value.
func NewConfigurationError(format string, args ...interface{}) *Error {
	return newf(KindConfiguration, format, args...)
}

// NewCryptoError reports a multikey mismatch, key-length mismatch or a
// signature verification failure.
func NewCryptoError(format string, args ...interface{}) *Error {
	return newf(KindCrypto, format, args...)
}

// NewResourceNotFoundError reports an unknown resource, asset binding,
// inscription or satoshi.
func NewResourceNotFoundError(format string, args ...interface{}) *Error {
	return newf(KindResourceNotFound, format, args...)
}

// NewInsufficientFundsError reports a UTXO selection that could not cover
// payment plus fee.
func NewInsufficientFundsError(format string, args ...interface{}) *Error {
	return newf(KindInsufficientFund, format, args...)
}

// NewNetworkError reports an adapter I/O failure. retryable indicates
// whether the caller's retry policy should reattempt the operation.
func NewNetworkError(retryable bool, format string, args ...interface{}) *Error {
	e := newf(KindNetwork, format, args...)
	e.Retryable = retryable
	return e
}

// NewConflictError reports an already-set binding or a colliding resource
// version import.
func NewConflictError(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Is is a thin re-export of the standard library so callers need only
// import this package when branching on SDK error kinds.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is a thin re-export of the standard library, see Is.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
