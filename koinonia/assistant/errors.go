package assistant

import (
	"errors"
	"fmt"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// ErrorKind is the machine-readable classification of a request failure.
type ErrorKind string

const (
	// KindValidation marks malformed or empty input, rejected before any
	// external call.
	KindValidation ErrorKind = "validation_error"
	// KindAssistantDisabled means the tenant has the assistant turned off.
	KindAssistantDisabled ErrorKind = "assistant_disabled"
	// KindQuotaExceeded means the user hit the tenant's daily limit.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindUpstreamThrottled / KindUpstreamQuotaExhausted / KindUpstreamFailure
	// mirror the provider's failure classes verbatim.
	KindUpstreamThrottled      ErrorKind = ErrorKind(ports.UpstreamThrottled)
	KindUpstreamQuotaExhausted ErrorKind = ErrorKind(ports.UpstreamQuotaExhausted)
	KindUpstreamFailure        ErrorKind = ErrorKind(ports.UpstreamFailure)
)

// Error is the single structured error returned when a request fails before
// any bytes have been streamed. Limit and Remaining are populated only for
// KindQuotaExceeded.
type Error struct {
	Kind      ErrorKind
	Message   string
	Limit     int
	Remaining int
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrorKindOf extracts the kind from any error produced by this layer,
// falling back to KindUpstreamFailure for unclassified errors.
func ErrorKindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var ue *ports.UpstreamError
	if errors.As(err, &ue) {
		return ErrorKind(ue.Kind)
	}
	return KindUpstreamFailure
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func upstreamError(err error) *Error {
	var ue *ports.UpstreamError
	if errors.As(err, &ue) {
		return &Error{Kind: ErrorKind(ue.Kind), Message: ue.Message, Cause: err}
	}
	return &Error{Kind: KindUpstreamFailure, Message: "completion provider failed", Cause: err}
}
