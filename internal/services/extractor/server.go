package extractor

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"golang.org/x/time/rate"
)

// tika server endpoints
const (
	endpointTika   = "/tika"
	endpointMeta   = "/meta"
	endpointDetect = "/detect/stream"
)

// ErrNoContent the tika server answered with 204, it has no result for the content
var ErrNoContent = errors.New("tika server has no content")

// Server client of a tika rest server
type Server struct {
	baseuri  string
	cfg      Config
	client   *http.Client
	upstream *http.Client
	limiter  *rate.Limiter
}

// NewServer creates a new server backend. A nil client creates a client with the configured timeout.
func NewServer(cfg Config, client *http.Client) (*Server, error) {
	cfg = cfg.withDefaults()
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, &errs.ConfigurationError{Key: "tikaserverhost", Msg: "no tika server host set"}
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Hostname() == "" {
		return nil, &errs.ConfigurationError{Key: "tikaserverhost", Msg: fmt.Sprintf("invalid tika server host: %s", cfg.Host)}
	}
	// a port in the host wins over the configured port
	if cfg.Port > 0 && u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(cfg.Port))
	}
	host = strings.TrimSuffix(u.String(), "/")
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	s := &Server{
		baseuri: host,
		cfg:     cfg,
		client:  client,
	}
	s.upstream = &http.Client{
		Transport: client.Transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
			}
			return nil
		},
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return s, nil
}

// BaseURI the base uri of the tika server
func (s *Server) BaseURI() string {
	return s.baseuri
}

// TestConnection requesting the tika endpoint of the server
func (s *Server) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseuri+endpointTika, nil)
	if err != nil {
		return &errs.ExtractionError{Kind: errs.KindConnectionError, Msg: s.baseuri, Err: err}
	}
	res, err := s.client.Do(req)
	if err != nil {
		return &errs.ExtractionError{Kind: errs.KindConnectionError, Msg: s.baseuri, Err: err}
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode != http.StatusOK {
		return httpError(res.StatusCode)
	}
	return nil
}

// IsReady true if the tika server answers with 200
func (s *Server) IsReady(ctx context.Context) bool {
	err := s.TestConnection(ctx)
	if err != nil {
		log.Debugf("tika server not ready: %v", err)
	}
	return err == nil
}

// Close closes the idle connections to the tika server and the fetched urls
func (s *Server) Close() error {
	s.client.CloseIdleConnections()
	s.upstream.CloseIdleConnections()
	return nil
}

// GetMetadata the raw metadata json of the content, ErrNoContent if tika has no result
func (s *Server) GetMetadata(ctx context.Context, r io.Reader) (string, error) {
	return s.put(ctx, endpointMeta, "application/json", r)
}

// GetContent the text content, ErrNoContent if tika has no result
func (s *Server) GetContent(ctx context.Context, r io.Reader) (string, error) {
	return s.put(ctx, endpointTika, "text/plain", r)
}

// GetMimetype the detected mimetype of the content
func (s *Server) GetMimetype(ctx context.Context, r io.Reader) (string, error) {
	return s.put(ctx, endpointDetect, "text/plain", r)
}

// GetURLMetadata fetches the content of the url and sends it to the tika server
func (s *Server) GetURLMetadata(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: rawURL, Err: err}
	}
	res, err := s.upstream.Do(req)
	if err != nil {
		return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: rawURL, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		e := httpError(res.StatusCode)
		e.Msg = rawURL
		return "", e
	}
	return s.put(ctx, endpointMeta, "application/json", res.Body)
}

func (s *Server) put(ctx context.Context, endpoint, accept string, body io.Reader) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "tika"+endpoint)
	defer span.Finish()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: "rate limit", Err: err}
		}
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseuri+endpoint, body)
	if err != nil {
		return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: endpoint, Err: err}
	}
	req.Header.Set("Accept", accept)
	res, err := s.client.Do(req)
	if err != nil {
		return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: endpoint, Err: err}
	}
	defer res.Body.Close()
	span.SetTag("http.status_code", res.StatusCode)
	switch res.StatusCode {
	case http.StatusOK:
		b, err := io.ReadAll(res.Body)
		if err != nil {
			return "", &errs.ExtractionError{Kind: errs.KindServerHTTPError, Msg: endpoint, Err: err}
		}
		return string(b), nil
	case http.StatusNoContent:
		return "", ErrNoContent
	}
	e := httpError(res.StatusCode)
	e.Msg = endpoint
	return "", e
}

func httpError(status int) *errs.ExtractionError {
	return &errs.ExtractionError{
		Kind:   errs.KindServerHTTPError,
		Status: status,
		Reason: http.StatusText(status),
	}
}
