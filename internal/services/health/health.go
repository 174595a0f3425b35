// Package health the health system of the service, liveness and readiness with periodic checks
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/logging"
)

const defaultPeriod = 30 * time.Second

var log = logging.New().WithName("health")

// Check a single readiness check
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// Msg the response of the health endpoints
type Msg struct {
	Ready    bool              `json:"ready"`
	Messages map[string]string `json:"messages,omitempty"`
	LastRun  time.Time         `json:"lastrun"`
}

// SHealth the health system
type SHealth struct {
	period time.Duration
	checks []Check
	lm     sync.RWMutex
	last   Msg
	ticker *time.Ticker
	quit   chan bool
}

// NewHealthSystem creates the health system, the checks are started with Start
func NewHealthSystem(cfg config.HealthCheck, checks ...Check) *SHealth {
	p := time.Duration(cfg.Period) * time.Second
	if p <= 0 {
		p = defaultPeriod
	}
	return &SHealth{
		period: p,
		checks: checks,
	}
}

// Register adding a check
func (h *SHealth) Register(c Check) {
	h.lm.Lock()
	defer h.lm.Unlock()
	h.checks = append(h.checks, c)
}

// Start running the checks now and every period in the background
func (h *SHealth) Start() {
	h.Run(context.Background())
	h.ticker = time.NewTicker(h.period)
	h.quit = make(chan bool)
	go func() {
		for {
			select {
			case <-h.ticker.C:
				h.Run(context.Background())
			case <-h.quit:
				h.ticker.Stop()
				return
			}
		}
	}()
}

// Run running all checks once
func (h *SHealth) Run(ctx context.Context) Msg {
	h.lm.RLock()
	checks := append([]Check{}, h.checks...)
	h.lm.RUnlock()

	m := Msg{
		Ready:    true,
		Messages: make(map[string]string),
		LastRun:  time.Now(),
	}
	for _, c := range checks {
		cctx, cancel := context.WithTimeout(ctx, h.period)
		err := c.Check(cctx)
		cancel()
		if err != nil {
			log.Alertf("check %s failed: %v", c.Name(), err)
			m.Ready = false
			m.Messages[c.Name()] = err.Error()
			continue
		}
		m.Messages[c.Name()] = "ok"
	}
	h.lm.Lock()
	h.last = m
	h.lm.Unlock()
	return m
}

// Last the result of the last run
func (h *SHealth) Last() Msg {
	h.lm.RLock()
	defer h.lm.RUnlock()
	return h.last
}

// Routes the routes of the health system
func (h *SHealth) Routes() (string, *chi.Mux) {
	router := chi.NewRouter()
	router.Get("/livez", h.GetLivenessEndpoint)
	router.Get("/readyz", h.GetReadinessEndpoint)
	return "/", router
}

// GetLivenessEndpoint the service is alive
func (h *SHealth) GetLivenessEndpoint(response http.ResponseWriter, req *http.Request) {
	render.JSON(response, req, Msg{Ready: true, LastRun: time.Now()})
}

// GetReadinessEndpoint the result of the last check run
func (h *SHealth) GetReadinessEndpoint(response http.ResponseWriter, req *http.Request) {
	m := h.Last()
	if !m.Ready {
		render.Status(req, http.StatusServiceUnavailable)
	}
	render.JSON(response, req, m)
}

// Close stopping the background checks
func (h *SHealth) Close() {
	if h.quit != nil {
		h.quit <- true
	}
}
