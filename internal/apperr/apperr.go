package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure so callers can decide how to surface it.
type Kind string

const (
	KindUnknownTicker    Kind = "UNKNOWN_TICKER"
	KindInsufficientData Kind = "INSUFFICIENT_DATA"
	KindEmptyInput       Kind = "EMPTY_INPUT"
	KindNetwork          Kind = "NETWORK"
	KindRateLimited      Kind = "RATE_LIMITED"
	KindConfig           Kind = "CONFIG"
	KindCanceled         Kind = "CANCELED"
	KindInternal         Kind = "INTERNAL"
)

// Error is a categorized application error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func UnknownTicker(ticker string) *Error {
	return New(KindUnknownTicker, fmt.Sprintf("ticker %q not found or no data available", ticker), nil)
}

func InsufficientData(message string) *Error {
	return New(KindInsufficientData, message, nil)
}

func EmptyInput(message string) *Error {
	return New(KindEmptyInput, message, nil)
}

func Network(message string, cause error) *Error {
	return New(KindNetwork, message, cause)
}

func RateLimited(message string) *Error {
	return New(KindRateLimited, message, nil)
}

func Config(message string, cause error) *Error {
	return New(KindConfig, message, cause)
}

func Canceled(message string, cause error) *Error {
	return New(KindCanceled, message, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
