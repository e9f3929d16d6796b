package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure once, at the boundary where it happens.
type Kind string

const (
	KindNetworkUnavailable   Kind = "network_unavailable"
	KindServiceUnavailable   Kind = "service_unavailable"
	KindMalformedPayload     Kind = "malformed_payload"
	KindMissingField         Kind = "missing_field"
	KindInconsistentTimeline Kind = "inconsistent_timeline"
	KindInvalidRequest       Kind = "invalid_request"
	KindServiceMisconfigured Kind = "service_misconfigured"
	KindUnexpected           Kind = "unexpected"
)

// Retriable reports whether a failure of this kind is transient.
func (k Kind) Retriable() bool {
	return k == KindNetworkUnavailable || k == KindServiceUnavailable
}

// Error is a classified failure. Field is set for KindMissingField.
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// MissingField reports the first absent required field.
func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field}
}

// KindOf extracts the kind of a classified error. Unclassified errors are
// KindUnexpected.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
