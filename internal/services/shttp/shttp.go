// Package shttp the http and https servers of the service
package shttp

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/crypt"
	"github.com/willie68/GoTikaMeta/internal/logging"
)

var log = logging.New().WithName("shttp")

// SHttp the servers. With a ssl port the api is served via https and
// the http port only serves the health routes.
type SHttp struct {
	cfg     config.Config
	srv     *http.Server
	sslsrv  *http.Server
	Started bool
}

// NewSHttp creates the servers
func NewSHttp(cfg config.Config) *SHttp {
	return &SHttp{cfg: cfg}
}

// StartServers starting the servers in the background
func (s *SHttp) StartServers(router, healthRouter http.Handler) error {
	if s.cfg.Sslport > 0 {
		gc := crypt.GenerateCertificate{
			Organization: "MCS",
			Host:         "127.0.0.1",
			ValidFor:     10 * 365 * 24 * time.Hour,
			IsCA:         false,
			EcdsaCurve:   "P384",
		}
		tlsConfig, err := gc.GenerateTLSConfig()
		if err != nil {
			return err
		}
		s.sslsrv = newServer(s.cfg.Sslport, router)
		s.sslsrv.TLSConfig = tlsConfig
		go func() {
			log.Infof("starting https server on address: %s", s.sslsrv.Addr)
			if err := s.sslsrv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Alertf("error starting server: %s", err.Error())
			}
		}()
		s.srv = newServer(s.cfg.Port, healthRouter)
	} else {
		s.srv = newServer(s.cfg.Port, router)
	}
	go func() {
		log.Infof("starting http server on address: %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Alertf("error starting server: %s", err.Error())
		}
	}()
	s.Started = true
	return nil
}

func newServer(port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + strconv.Itoa(port),
		WriteTimeout:      time.Second * 60,
		ReadTimeout:       time.Second * 60,
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 60,
		Handler:           h,
	}
}

// ShutdownServers graceful shutdown of all servers
func (s *SHttp) ShutdownServers() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown http server: %v", err)
		}
	}
	if s.sslsrv != nil {
		if err := s.sslsrv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown https server: %v", err)
		}
	}
	s.Started = false
}
