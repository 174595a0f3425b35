// Package web resource storage for external urls, the content is downloaded into a spool folder
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vfaronov/httpheader"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/utils"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

var log = logging.New().WithName("web")

// Storage downloading url content
type Storage struct {
	SpoolPath    string
	Timeout      time.Duration
	MaxRedirects int
	client       *http.Client
}

var _ interfaces.ResourceStorage = &Storage{}

// Init initialise the spool folder and the http client
func (s *Storage) Init() error {
	if s.SpoolPath == "" {
		s.SpoolPath = os.TempDir()
	}
	if err := os.MkdirAll(s.SpoolPath, os.ModePerm); err != nil {
		return err
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MaxRedirects <= 0 {
		s.MaxRedirects = 5
	}
	limit := s.MaxRedirects
	s.client = &http.Client{
		Timeout: s.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > limit {
				return fmt.Errorf("stopped after %d redirects", limit)
			}
			return nil
		},
	}
	return nil
}

// GetStream downloads the content of the url into the spool folder. If the url is not reachable
// or doesn't answer with 200, there is no stream.
func (s *Storage) GetStream(ctx context.Context, res model.Resource) (interfaces.ResourceStream, error) {
	ur, ok := res.(*model.URLResource)
	if !ok {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ur.ExternalURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		log.Alertf("can't get url %s: %v", ur.ExternalURL, err)
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Alertf("can't get url %s: %s", ur.ExternalURL, resp.Status)
		return nil, nil
	}
	mtype, _ := httpheader.ContentType(resp.Header)

	name := filepath.Join(s.SpoolPath, utils.GenerateID())
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(name)
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(name)
		return nil, err
	}
	return &spoolStream{File: f, mimetype: mtype}, nil
}

// ResourceHash the sha1 of the url
func (s *Storage) ResourceHash(res model.Resource) (string, error) {
	ur, ok := res.(*model.URLResource)
	if !ok {
		return "", fmt.Errorf("no url resource: %T", res)
	}
	return utils.StringHash(ur.ExternalURL), nil
}

// ResourceID the id of the url
func (s *Storage) ResourceID(res model.Resource) string {
	if ur, ok := res.(*model.URLResource); ok {
		return fmt.Sprintf("%d", ur.ID)
	}
	return res.Ref()
}

// Close closing the storage
func (s *Storage) Close() error {
	return nil
}

// spoolStream the downloaded content, the spool file is removed on close
type spoolStream struct {
	*os.File
	mimetype string
}

// LocalPath the spool file
func (s *spoolStream) LocalPath() string {
	return s.Name()
}

// Mimetype the content type the web server delivered
func (s *spoolStream) Mimetype() string {
	return s.mimetype
}

func (s *spoolStream) Close() error {
	err := s.File.Close()
	os.Remove(s.Name())
	return err
}
