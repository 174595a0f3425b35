package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSysAPIHandler(t *testing.T) {
	ast := assert.New(t)

	h := SysAPIHandler(SysAPIConfig{
		Apikey:           "12345",
		HeaderKeyMapping: map[string]string{APIKeyHeaderKey: "X-apikey"},
		SkipFunc: func(r *http.Request) bool {
			return r.URL.Path == "/livez"
		},
	})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	ast.Equal(http.StatusUnauthorized, rec.Code)

	req.Header.Set("X-apikey", "12345")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	ast.Equal(http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/livez", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	ast.Equal(http.StatusOK, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	ast := assert.New(t)

	h := MetricsHandler(MetricsConfig{})(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	ast.Equal(http.StatusOK, rec.Code)
}
