package apiv1

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httptracer"
	"github.com/go-chi/render"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/willie68/GoTikaMeta/internal/api"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/services/health"
	"github.com/willie68/GoTikaMeta/internal/services/interfaces"
)

// APIVersion the actual implemented api version
const APIVersion = "1"

// BaseURL is the url all endpoints will be available under
var BaseURL = fmt.Sprintf("/api/v%s", APIVersion)

// APIKey the apikey of this service
var APIKey string

var logger = logging.New().WithName("apiv1")

// APIRoutes defining all api v1 routes
func APIRoutes(cfn config.Config, trc opentracing.Tracer, srv interfaces.MetadataService, hs *health.SHealth) (*chi.Mux, error) {
	APIKey = getApikey()
	logger.Infof("baseurl : %s", BaseURL)
	router := chi.NewRouter()
	setDefaultHandler(router, cfn, trc)

	if cfn.Apikey {
		setApikeyHandler(cfn, router)
	}

	// building the routes
	router.Route("/", func(r chi.Router) {
		r.Mount(NewMetadataHandler(srv, cfn.HeaderMapping).Routes())
		if hs != nil {
			r.Mount(hs.Routes())
		}
		if cfn.Metrics.Enable {
			r.Mount(api.MetricsEndpoint, promhttp.Handler())
		}
	})
	logger.Infof("%s api routes", config.Servicename)

	walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Infof("api route: %s %s", method, route)
		return nil
	}

	if err := chi.Walk(router, walkFunc); err != nil {
		logger.Alertf("could not walk api routes. %s", err.Error())
	}

	return router, nil
}

func setApikeyHandler(cfn config.Config, router *chi.Mux) {
	router.Use(
		api.SysAPIHandler(api.SysAPIConfig{
			Apikey:           APIKey,
			HeaderKeyMapping: cfn.HeaderMapping,
			SkipFunc: func(r *http.Request) bool {
				path := strings.TrimSuffix(r.URL.Path, "/")
				return isHealthPath(r) || strings.HasSuffix(path, api.MetricsEndpoint)
			},
		}),
	)
}

func setDefaultHandler(router *chi.Mux, cfn config.Config, tracer opentracing.Tracer) {
	router.Use(
		render.SetContentType(render.ContentTypeJSON),
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   allowedHeaders(cfn),
			ExposedHeaders:   []string{"Link", "Location"},
			AllowCredentials: true,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}),
	)
	setTracer(router, tracer, isHealthPath)
	setMetrics(router, cfn)
}

func setTracer(router *chi.Mux, tracer opentracing.Tracer, skip func(r *http.Request) bool) {
	if tracer == nil {
		return
	}
	router.Use(httptracer.Tracer(tracer, httptracer.Config{
		ServiceName:    config.Servicename,
		ServiceVersion: "V" + APIVersion,
		SampleRate:     1,
		SkipFunc:       skip,
		Tags: map[string]any{
			"_dd.measured": 1, // datadog, turn on metrics for http.request stats
		},
	}))
}

func setMetrics(router *chi.Mux, cfn config.Config) {
	if cfn.Metrics.Enable {
		router.Use(
			api.MetricsHandler(api.MetricsConfig{
				SkipFunc: func(r *http.Request) bool {
					return strings.HasSuffix(r.URL.Path, api.MetricsEndpoint)
				},
			}),
		)
	}
}

// HealthRoutes returning the health routes, used as separate router when the api is served via https
func HealthRoutes(cfn config.Config, tracer opentracing.Tracer, hs *health.SHealth) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		render.SetContentType(render.ContentTypeJSON),
		middleware.Logger,
		middleware.Recoverer,
	)
	setTracer(router, tracer, func(r *http.Request) bool {
		return false
	})
	setMetrics(router, cfn)

	router.Route("/", func(r chi.Router) {
		r.Mount(hs.Routes())
		if cfn.Metrics.Enable {
			r.Mount(api.MetricsEndpoint, promhttp.Handler())
		}
	})

	logger.Info("health api routes")
	walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Infof("health route: %s %s", method, route)
		return nil
	}
	if err := chi.Walk(router, walkFunc); err != nil {
		logger.Alertf("could not walk health routes. %s", err.Error())
	}

	return router
}

// getApikey generate an apikey based on the service name
func getApikey() string {
	value := fmt.Sprintf("%s_%s", config.Servicename, "default")
	apikey := fmt.Sprintf("%x", md5.Sum([]byte(value)))
	return strings.ToLower(apikey)
}

func isHealthPath(r *http.Request) bool {
	path := strings.TrimSuffix(r.URL.Path, "/")
	return strings.HasSuffix(path, "/livez") || strings.HasSuffix(path, "/readyz")
}

func allowedHeaders(cfn config.Config) []string {
	hs := []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"}
	for _, v := range cfn.HeaderMapping {
		hs = append(hs, v)
	}
	return hs
}
