// Package serror the service error send back to the client as json
package serror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/willie68/GoTikaMeta/internal/errs"
)

// Service name of the service, part of every error
var Service string

// Serr the service error
type Serr struct {
	Code    int    `json:"code"`
	Key     string `json:"key"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
	Origin  string `json:"origin,omitempty"`
	err     error
}

func (e *Serr) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Code, e.Key, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Key)
}

func (e *Serr) Unwrap() error {
	return e.err
}

// New creates a new service error
func New(code int, key string, args ...string) *Serr {
	s := &Serr{
		Code:    code,
		Key:     key,
		Service: Service,
	}
	if len(args) > 0 {
		s.Message = args[0]
	}
	return s
}

func newWithErr(code int, err error, key string, args ...string) *Serr {
	s := New(code, key, args...)
	if err != nil {
		s.err = err
		s.Origin = err.Error()
		if s.Message == "" {
			s.Message = err.Error()
		}
	}
	return s
}

// BadRequest the request was not valid, args are the key and the message
func BadRequest(err error, args ...string) *Serr {
	key := "bad-request"
	if len(args) > 0 {
		key = args[0]
		args = args[1:]
	}
	return newWithErr(http.StatusBadRequest, err, key, args...)
}

// Forbidden access not allowed
func Forbidden(err error, args ...string) *Serr {
	return newWithErr(http.StatusForbidden, err, "forbidden", args...)
}

// NotFound the object of the type with the id was not found
func NotFound(typ, id string, err error) *Serr {
	msg := fmt.Sprintf("%s not found: %s", typ, id)
	return newWithErr(http.StatusNotFound, err, "not-found", msg)
}

// Conflict the object already exists
func Conflict(err error, args ...string) *Serr {
	return newWithErr(http.StatusConflict, err, "conflict", args...)
}

// InternalServerError something unexpected happens
func InternalServerError(err error, args ...string) *Serr {
	return newWithErr(http.StatusInternalServerError, err, "internal-server-error", args...)
}

// Wrap wraps an error into a service error, domain errors get their matching code
func Wrap(err error, key string) *Serr {
	if err == nil {
		return nil
	}
	var se *Serr
	if errors.As(err, &se) {
		return se
	}
	code := http.StatusInternalServerError
	var (
		ur *errs.UnsupportedResourceError
		ce *errs.ConfigurationError
		ee *errs.ExtractionError
		nf *errs.NotFoundError
		ae *errs.AlreadyExistsError
		ni *errs.NoIdError
	)
	switch {
	case errors.As(err, &ur):
		code = http.StatusBadRequest
		key = "unsupported-resource"
	case errors.As(err, &nf):
		code = http.StatusNotFound
		key = "not-found"
	case errors.As(err, &ae):
		code = http.StatusConflict
		key = "already-exists"
	case errors.As(err, &ni):
		code = http.StatusBadRequest
		key = "no-id"
	case errors.As(err, &ce):
		code = http.StatusServiceUnavailable
		key = "configuration-error"
	case errors.As(err, &ee):
		code = extractionCode(ee.Kind)
		key = string(ee.Kind)
	}
	return newWithErr(code, err, key)
}

func extractionCode(k errs.Kind) int {
	switch k {
	case errs.KindResourceNotFound:
		return http.StatusNotFound
	case errs.KindUnsupportedOption, errs.KindInvalidOptions, errs.KindNoOptionSet:
		return http.StatusBadRequest
	case errs.KindNotReady, errs.KindConnectionError:
		return http.StatusServiceUnavailable
	case errs.KindServerHTTPError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
