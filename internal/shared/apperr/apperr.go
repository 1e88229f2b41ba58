package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced by the generation, rendering and persistence pipeline.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindTransport     Kind = "transport"
	KindUpstream      Kind = "upstream"
	KindTimeout       Kind = "timeout"
	KindValidation    Kind = "validation"
)

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrTransport     = &Error{Kind: KindTransport}
	ErrUpstream      = &Error{Kind: KindUpstream}
	ErrTimeout       = &Error{Kind: KindTimeout}
	ErrValidation    = &Error{Kind: KindValidation}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Kind) + " error"
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Message != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// Configuration reports a missing or invalid credential or setting.
func Configuration(op, format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Transport reports a network or HTTP-level failure.
func Transport(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindTransport, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// Upstream reports a well-formed error or unusable payload from an external service.
func Upstream(op string, err error, format string, args ...any) error {
	return &Error{Kind: KindUpstream, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// Timeout reports an exhausted wait bound.
func Timeout(op, format string, args ...any) error {
	return &Error{Kind: KindTimeout, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Validation reports an unmet local precondition.
func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first classified error in the chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns a human-readable message without the op prefix.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
