package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a chart or series request did not fully succeed.
type ErrorKind string

const (
	KindInvalidTicker ErrorKind = "INVALID_TICKER"
	KindNoData        ErrorKind = "NO_DATA"
	KindTimeout       ErrorKind = "TIMEOUT"
	KindNetwork       ErrorKind = "NETWORK_ERROR"
	KindParse         ErrorKind = "PARSE_ERROR"
	KindAssembly      ErrorKind = "ASSEMBLY_ERROR"
)

// Error is a classified pipeline failure.
type Error struct {
	Kind   ErrorKind
	Ticker string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Ticker != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Ticker, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Ticker != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Ticker)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error.
func NewError(kind ErrorKind, ticker string, err error) *Error {
	return &Error{Kind: kind, Ticker: ticker, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
