// Package httputils helper for the http handlers
package httputils

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/willie68/GoTikaMeta/internal/serror"
)

// Validate validator
var val *validator.Validate

// Decode decodes and validates an object
func Decode(r *http.Request, v any) error {
	err := render.DefaultDecoder(r, v)
	if err != nil {
		return serror.BadRequest(err, "decode-body", "could not decode body")
	}
	if err := val.Struct(v); err != nil {
		return serror.BadRequest(err, "validate-body", "body invalid")
	}
	return nil
}

// Param gets the url param of the given request
func Param(r *http.Request, name string) (string, error) {
	cid := chi.URLParam(r, name)
	if cid == "" {
		msg := fmt.Sprintf("missing %s in path", name)
		return "", serror.BadRequest(nil, "missing-param", msg)
	}
	return cid, nil
}

// Created object created
func Created(w http.ResponseWriter, r *http.Request, location string, v any) {
	w.Header().Add("Location", location)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}

// Err writes an error response
func Err(w http.ResponseWriter, r *http.Request, err error) {
	apierr := serror.Wrap(err, "unexpected-error")
	render.Status(r, apierr.Code)
	render.JSON(w, r, apierr)
}

func init() {
	val = validator.New()
}
