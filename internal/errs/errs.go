// Package errs domain errors of the metadata extraction
package errs

import (
	"errors"
	"fmt"
)

// Kind the different kinds of extraction failures
type Kind string

// extraction error kinds
const (
	KindResourceNotFound   Kind = "resource-not-found"
	KindUnsupportedOption  Kind = "unsupported-option"
	KindInvalidOptions     Kind = "invalid-options"
	KindNoOptionSet        Kind = "no-option-set"
	KindInvalidServiceType Kind = "invalid-service-type"
	KindNotReady           Kind = "not-ready"
	KindConnectionError    Kind = "connection-error"
	KindServerHTTPError    Kind = "server-http-error"
)

// ConfigurationError the extraction backend is not usable with the actual settings
type ConfigurationError struct {
	Key string
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error (%s): %s", e.Key, e.Msg)
	}
	return fmt.Sprintf("configuration error: %s", e.Msg)
}

// UnsupportedResourceError the resource is not extractable, e.g. a directory or a non http url
type UnsupportedResourceError struct {
	Resource string
}

func (e *UnsupportedResourceError) Error() string {
	return fmt.Sprintf("unsupported resource: %s", e.Resource)
}

// ExtractionError a failed extraction, Status and Reason are only set for http failures
type ExtractionError struct {
	Kind   Kind
	Msg    string
	Status int
	Reason string
	Err    error
}

// NewExtractionError creates a new extraction error of the given kind
func NewExtractionError(kind Kind, msg string) *ExtractionError {
	return &ExtractionError{Kind: kind, Msg: msg}
}

func (e *ExtractionError) Error() string {
	s := fmt.Sprintf("extraction error (%s)", e.Kind)
	if e.Msg != "" {
		s = fmt.Sprintf("%s: %s", s, e.Msg)
	}
	if e.Status != 0 {
		s = fmt.Sprintf("%s, status %d %s", s, e.Status, e.Reason)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NotFoundError a record was not found in the store
type NotFoundError struct {
	Table string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record not found in %s: %s", e.Table, e.Key)
}

// AlreadyExistsError a record with the given id is already stored
type AlreadyExistsError struct {
	ID int64
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("record already exists: %d", e.ID)
}

// NoIdError an operation needs a persisted record
type NoIdError struct {
	Op string
}

func (e *NoIdError) Error() string {
	return fmt.Sprintf("%s: record has no id", e.Op)
}

// IsKind checks if the error chain contains an extraction error of kind k
func IsKind(err error, k Kind) bool {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind == k
	}
	return false
}

// IsNotFound checks if the error chain contains a not found error
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
