package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/willie68/GoTikaMeta/internal/serror"
)

// SysAPIConfig configuration of the system api key check
type SysAPIConfig struct {
	Apikey           string
	HeaderKeyMapping map[string]string
	SkipFunc         func(r *http.Request) bool
}

// SysAPIHandler checks the apikey header of every request
func SysAPIHandler(cfg SysAPIConfig) func(next http.Handler) http.Handler {
	header := cfg.HeaderKeyMapping[APIKeyHeaderKey]
	if header == "" {
		header = "X-" + APIKeyHeaderKey
	}
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if cfg.SkipFunc != nil && cfg.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}
			s := r.Header.Get(header)
			if s == "" || !strings.EqualFold(s, cfg.Apikey) {
				se := serror.New(http.StatusUnauthorized, "missing-apikey", "apikey not valid")
				render.Status(r, se.Code)
				render.JSON(w, r, se)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
