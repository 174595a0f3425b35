package serror

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/willie68/GoTikaMeta/internal/errs"
)

func TestBadRequest(t *testing.T) {
	ast := assert.New(t)

	se := BadRequest(nil, "missing-param", "missing hash in path")
	ast.Equal(http.StatusBadRequest, se.Code)
	ast.Equal("missing-param", se.Key)
	ast.Equal("missing hash in path", se.Message)

	se = BadRequest(errors.New("boom"))
	ast.Equal("bad-request", se.Key)
	ast.Equal("boom", se.Message)
	ast.Equal("boom", se.Origin)
}

func TestNotFound(t *testing.T) {
	ast := assert.New(t)

	se := NotFound("metadata", "1234", nil)
	ast.Equal(http.StatusNotFound, se.Code)
	ast.Equal("metadata not found: 1234", se.Message)
}

func TestWrap(t *testing.T) {
	ast := assert.New(t)

	tests := []struct {
		err  error
		code int
		key  string
	}{
		{err: &errs.UnsupportedResourceError{Resource: "ftp://x"}, code: http.StatusBadRequest, key: "unsupported-resource"},
		{err: &errs.NotFoundError{Table: "metadata", Key: "1"}, code: http.StatusNotFound, key: "not-found"},
		{err: &errs.AlreadyExistsError{ID: 1}, code: http.StatusConflict, key: "already-exists"},
		{err: &errs.ConfigurationError{Key: "tikaserverhost"}, code: http.StatusServiceUnavailable, key: "configuration-error"},
		{err: errs.NewExtractionError(errs.KindNotReady, ""), code: http.StatusServiceUnavailable, key: "not-ready"},
		{err: errs.NewExtractionError(errs.KindInvalidOptions, ""), code: http.StatusBadRequest, key: "invalid-options"},
		{err: errs.NewExtractionError(errs.KindResourceNotFound, ""), code: http.StatusNotFound, key: "resource-not-found"},
		{err: errs.NewExtractionError(errs.KindServerHTTPError, ""), code: http.StatusBadGateway, key: "server-http-error"},
		{err: pkgerrors.Wrap(errs.NewExtractionError(errs.KindConnectionError, ""), "testing"), code: http.StatusServiceUnavailable, key: "connection-error"},
		{err: errors.New("something"), code: http.StatusInternalServerError, key: "unexpected-error"},
	}
	for _, tc := range tests {
		se := Wrap(tc.err, "unexpected-error")
		ast.Equal(tc.code, se.Code, tc.err.Error())
		ast.Equal(tc.key, se.Key, tc.err.Error())
	}

	se := Conflict(nil, "exists")
	ast.Same(se, Wrap(se, "other"))
	ast.Nil(Wrap(nil, "other"))
}
