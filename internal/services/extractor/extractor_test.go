package extractor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/filetype"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

const (
	pdfHash  = "3c1f5b6e0d2a4a1f8e7d9c0b1a2f3e4d5c6b7a89"
	pdfJSON  = `{"Content-Type":"application/pdf","dc:title":"Test PDF","dc:creator":"Moodle","xmpTPg:NPages":"3","pdf:PDFVersion":"1.5"}`
	pdfBytes = "%PDF-1.5 test content"
)

type stream struct {
	io.Reader
	path string
}

func (s *stream) Close() error      { return nil }
func (s *stream) LocalPath() string { return s.path }

// memStorage delivers the content of files and urls from memory
type memStorage struct {
	content map[string]string
}

var _ interfaces.ResourceStorage = &memStorage{}

func (m *memStorage) Init() error  { return nil }
func (m *memStorage) Close() error { return nil }

func (m *memStorage) GetStream(_ context.Context, res model.Resource) (interfaces.ResourceStream, error) {
	c, ok := m.content[res.Ref()]
	if !ok {
		return nil, nil
	}
	return &stream{Reader: strings.NewReader(c)}, nil
}

func (m *memStorage) ResourceHash(res model.Resource) (string, error) {
	if res.Type() == model.ResourceTypeFile {
		return res.Ref(), nil
	}
	return "url-" + res.Ref(), nil
}

func (m *memStorage) ResourceID(res model.Resource) string {
	return res.Ref()
}

func newStorage() *memStorage {
	return &memStorage{content: map[string]string{
		pdfHash:                 pdfBytes,
		"https://moodle.org/me": "<html><title>moodle</title></html>",
	}}
}

// tikaServer a fake tika server, the handler of the extraction endpoints can be replaced
func tikaServer(t *testing.T, extract http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/tika" {
			w.Write([]byte("This is Tika Server. Please PUT"))
			return
		}
		extract(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serverConfig(url string) Config {
	return Config{Mode: ModeServer, Host: url}
}

func TestValidateResource(t *testing.T) {
	ast := assert.New(t)

	ast.True(ValidateResource(&model.FileResource{ContentHash: pdfHash}))
	ast.False(ValidateResource(&model.FileResource{ContentHash: pdfHash, Directory: true}))
	ast.True(ValidateResource(&model.URLResource{ExternalURL: "https://moodle.org"}))
	ast.True(ValidateResource(&model.URLResource{ExternalURL: "HTTP://moodle.org/index.html?q=1"}))
	ast.False(ValidateResource(&model.URLResource{ExternalURL: "ftp://moodle.org"}))
	ast.False(ValidateResource(&model.URLResource{ExternalURL: "moodle.org"}))
	ast.False(ValidateResource(nil))
}

func TestUnsupportedResource(t *testing.T) {
	ast := assert.New(t)

	d := New(serverConfig("localhost"), newStorage())
	_, err := d.Extract(context.Background(), &model.URLResource{ExternalURL: "ftp://moodle.org"}, JSONMetadata)
	var ue *errs.UnsupportedResourceError
	ast.True(errors.As(err, &ue))
	ast.Equal("ftp://moodle.org", ue.Resource)
}

func TestResourceNotFound(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {})
	d := New(serverConfig(srv.URL), newStorage())
	_, err := d.Extract(context.Background(), &model.FileResource{ContentHash: "unknown"}, JSONMetadata)
	ast.True(errs.IsKind(err, errs.KindResourceNotFound))
}

func TestServerMetadata(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		ast.Equal(http.MethodPut, r.Method)
		ast.Equal("/meta", r.URL.Path)
		ast.Equal("application/json", r.Header.Get("Accept"))
		b, _ := io.ReadAll(r.Body)
		ast.Equal(pdfBytes, string(b))
		w.Write([]byte(pdfJSON))
	})

	d := New(serverConfig(srv.URL), newStorage())
	ast.True(d.IsReady(context.Background()))

	rec, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.Nil(err)
	require.NotNil(t, rec)
	ast.Equal(filetype.PDF, rec.Variant)
	ast.Equal(pdfHash, rec.ResourceHash)
	ast.Equal("Test PDF", rec.Title)
	ast.Equal("Moodle", rec.Creator)
	ast.Equal("application/pdf", rec.Format)
	pc, ok := rec.Int("pagecount")
	ast.True(ok)
	ast.Equal(int64(3), pc)
	v, _ := rec.Get("pdfversion")
	ast.Equal("1.5", v)
}

func TestServerContentAndMimetype(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tika":
			ast.Equal("text/plain", r.Header.Get("Accept"))
			w.Write([]byte("test content"))
		case "/detect/stream":
			w.Write([]byte("application/pdf\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	d := New(serverConfig(srv.URL), newStorage())
	txt, err := d.ExtractFileContent(context.Background(), pdfHash)
	ast.Nil(err)
	ast.Equal("test content", txt)

	mt, err := d.ExtractFileMimetype(context.Background(), pdfHash)
	ast.Nil(err)
	ast.Equal("application/pdf", mt)

	mt, err = d.ExtractURLMimetype(context.Background(), model.URLResource{ExternalURL: "https://moodle.org/me"})
	ast.Nil(err)
	ast.Equal("application/pdf", mt)
}

func TestServerNoContent(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	d := New(serverConfig(srv.URL), newStorage())
	rec, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.Nil(err)
	ast.Nil(rec)

	txt, err := d.ExtractFileContent(context.Background(), pdfHash)
	ast.Nil(err)
	ast.Equal("", txt)

	s, err := NewServer(serverConfig(srv.URL), nil)
	ast.Nil(err)
	_, err = s.GetMetadata(context.Background(), strings.NewReader(pdfBytes))
	ast.True(errors.Is(err, ErrNoContent))
}

func TestServerEmptyBody(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s, err := NewServer(serverConfig(srv.URL), nil)
	ast.Nil(err)
	txt, err := s.GetContent(context.Background(), strings.NewReader(pdfBytes))
	ast.Nil(err)
	ast.Equal("", txt)
}

func TestServerUnparseableMetadata(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is no json"))
	})

	d := New(serverConfig(srv.URL), newStorage())
	rec, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.Nil(err)
	ast.Nil(rec)
}

func TestServerHTTPError(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	d := New(serverConfig(srv.URL), newStorage())
	_, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	var ee *errs.ExtractionError
	require.True(t, errors.As(err, &ee))
	ast.Equal(errs.KindServerHTTPError, ee.Kind)
	ast.Equal(http.StatusNotFound, ee.Status)
	ast.Equal("Not Found", ee.Reason)
}

func TestServerTransportError(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {})
	url := srv.URL
	srv.Close()

	s, err := NewServer(serverConfig(url), nil)
	ast.Nil(err)
	ast.False(s.IsReady(context.Background()))
	ast.True(errs.IsKind(s.TestConnection(context.Background()), errs.KindConnectionError))

	_, err = s.GetContent(context.Background(), strings.NewReader(pdfBytes))
	ast.True(errs.IsKind(err, errs.KindServerHTTPError))

	d := New(serverConfig(url), newStorage())
	ast.False(d.IsReady(context.Background()))
	_, err = d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.True(errs.IsKind(err, errs.KindNotReady))
}

func TestServerNotReady(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ast := assert.New(t)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			s, err := NewServer(serverConfig(srv.URL), nil)
			ast.Nil(err)
			ast.False(s.IsReady(context.Background()))

			err = s.TestConnection(context.Background())
			var ee *errs.ExtractionError
			require.True(t, errors.As(err, &ee))
			ast.Equal(errs.KindServerHTTPError, ee.Kind)
			ast.Equal(status, ee.Status)

			d := New(serverConfig(srv.URL), newStorage())
			ast.False(d.IsReady(context.Background()))
			_, err = d.ExtractFileMetadata(context.Background(), pdfHash)
			ast.True(errs.IsKind(err, errs.KindNotReady))
		})
	}
}

func TestServerInvalidOptions(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {})
	d := New(serverConfig(srv.URL), newStorage())
	res := &model.FileResource{ContentHash: pdfHash}

	_, err := d.Extract(context.Background(), res)
	ast.True(errs.IsKind(err, errs.KindInvalidOptions))
	_, err = d.Extract(context.Background(), res, JSONMetadata, TextContent)
	ast.True(errs.IsKind(err, errs.KindInvalidOptions))
	_, err = d.Extract(context.Background(), res, Option("--xmp"))
	ast.True(errs.IsKind(err, errs.KindUnsupportedOption))
}

func TestServerNoHost(t *testing.T) {
	ast := assert.New(t)

	_, err := NewServer(Config{Mode: ModeServer}, nil)
	var ce *errs.ConfigurationError
	ast.True(errors.As(err, &ce))

	d := New(Config{Mode: ModeServer}, newStorage())
	ast.False(d.IsReady(context.Background()))
	_, err = d.ExtractFileContent(context.Background(), pdfHash)
	ast.True(errors.As(err, &ce))
}

func TestServerBaseURI(t *testing.T) {
	ast := assert.New(t)

	s, err := NewServer(Config{Host: "tika.local", Port: 9998}, nil)
	ast.Nil(err)
	ast.Equal("http://tika.local:9998", s.BaseURI())

	s, err = NewServer(Config{Host: "https://tika.local/"}, nil)
	ast.Nil(err)
	ast.Equal("https://tika.local", s.BaseURI())

	s, err = NewServer(Config{Host: "localhost:9998", Port: 9998}, nil)
	ast.Nil(err)
	ast.Equal("http://localhost:9998", s.BaseURI())

	s, err = NewServer(Config{Host: "http://tika.local:8080", Port: 9998}, nil)
	ast.Nil(err)
	ast.Equal("http://tika.local:8080", s.BaseURI())

	_, err = NewServer(Config{Host: "http://:9998"}, nil)
	var ce *errs.ConfigurationError
	ast.True(errors.As(err, &ce))
}

func TestDispatcherClose(t *testing.T) {
	ast := assert.New(t)

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pdfJSON))
	})

	d := New(serverConfig(srv.URL), newStorage())
	ast.Nil(d.Close())

	rec, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.Nil(err)
	ast.NotNil(rec)
	ast.Nil(d.Close())

	rec, err = d.ExtractFileMetadata(context.Background(), pdfHash)
	ast.Nil(err)
	ast.NotNil(rec)
}

func TestServerURLMetadata(t *testing.T) {
	ast := assert.New(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/moved":
			http.Redirect(w, r, "/page", http.StatusFound)
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		default:
			w.Write([]byte("<html><title>moodle</title></html>"))
		}
	}))
	defer upstream.Close()

	srv := tikaServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		ast.Contains(string(b), "<title>moodle</title>")
		w.Write([]byte(`{"Content-Type":"text/html; charset=UTF-8","dc:title":"moodle"}`))
	})

	s, err := NewServer(Config{Host: srv.URL, MaxRedirects: 2, RateLimit: 100}, nil)
	ast.Nil(err)
	js, err := s.GetURLMetadata(context.Background(), upstream.URL+"/moved")
	ast.Nil(err)
	raw, err := model.ParseRawMetadata([]byte(js))
	ast.Nil(err)
	ast.Equal("moodle", raw["dc:title"])

	_, err = s.GetURLMetadata(context.Background(), upstream.URL+"/loop")
	ast.True(errs.IsKind(err, errs.KindServerHTTPError))
}

func TestInvalidServiceType(t *testing.T) {
	ast := assert.New(t)

	d := New(Config{Mode: "cloud"}, newStorage())
	ast.False(d.IsReady(context.Background()))
	_, err := d.ExtractFileContent(context.Background(), pdfHash)
	ast.True(errs.IsKind(err, errs.KindInvalidServiceType))

	_, err = d.MissingDependencies("cloud")
	ast.True(errs.IsKind(err, errs.KindInvalidServiceType))

	m, err := d.MissingDependencies(ModeServer)
	ast.Nil(err)
	ast.Empty(m)
}

func TestMissingDependencies(t *testing.T) {
	ast := assert.New(t)

	d := New(Config{Mode: ModeLocal, Dependencies: []string{"gotikameta-not-installed"}}, newStorage())
	m, err := d.MissingDependencies(ModeLocal)
	ast.Nil(err)
	ast.Equal([]string{"gotikameta-not-installed"}, m)
}

func TestLocalNonexistentPath(t *testing.T) {
	ast := assert.New(t)

	cfg := Config{Mode: ModeLocal, TikaPath: filepath.Join(t.TempDir(), "tika-app.jar")}
	d := New(cfg, newStorage())
	ast.False(d.IsReady(context.Background()))

	_, err := d.ExtractFileMetadata(context.Background(), pdfHash)
	var ce *errs.ConfigurationError
	ast.True(errors.As(err, &ce))

	d = New(Config{Mode: ModeLocal}, newStorage())
	ast.False(d.IsReady(context.Background()))
}

const fakeJava = `#!/bin/sh
shift 2
case "$1" in
  --help) echo "usage: java -jar tika-app.jar [option...] [file...]";;
  --json) echo '{"Content-Type":"application/pdf","dc:title":"Local PDF","xmpTPg:NPages":"2"}';;
  --detect) echo "application/pdf";;
  --text) cat "$2";;
esac
`

// localDispatcher uses a shell script as java, so no real tika is needed
func localDispatcher(t *testing.T) *Dispatcher {
	if runtime.GOOS == "windows" {
		t.SkipNow()
	}
	dir := t.TempDir()
	java := filepath.Join(dir, "java")
	require.Nil(t, os.WriteFile(java, []byte(fakeJava), 0755))
	jar := filepath.Join(dir, "tika-app.jar")
	require.Nil(t, os.WriteFile(jar, []byte("jar"), 0644))

	cfg := Config{Mode: ModeLocal, TikaPath: jar, JavaPath: java, Dependencies: []string{"sh"}}
	return New(cfg, newStorage())
}

func TestLocalExtraction(t *testing.T) {
	ast := assert.New(t)
	d := localDispatcher(t)
	ctx := context.Background()

	ast.True(d.IsReady(ctx))

	rec, err := d.ExtractFileMetadata(ctx, pdfHash)
	ast.Nil(err)
	require.NotNil(t, rec)
	ast.Equal(filetype.PDF, rec.Variant)
	ast.Equal("Local PDF", rec.Title)

	txt, err := d.ExtractFileContent(ctx, pdfHash)
	ast.Nil(err)
	ast.Equal(pdfBytes, txt)

	mt, err := d.ExtractFileMimetype(ctx, pdfHash)
	ast.Nil(err)
	ast.Equal("application/pdf", mt)
}

func TestLocalOptions(t *testing.T) {
	ast := assert.New(t)
	d := localDispatcher(t)
	res := &model.FileResource{ContentHash: pdfHash}

	_, err := d.Extract(context.Background(), res)
	ast.True(errs.IsKind(err, errs.KindNoOptionSet))

	_, err = d.Extract(context.Background(), res, JSONMetadata, Option("--xmp"))
	ast.True(errs.IsKind(err, errs.KindUnsupportedOption))
}

func TestNewConfig(t *testing.T) {
	ast := assert.New(t)

	store := config.PluginSettings{
		config.PluginName: {
			config.KeyServiceType:   "local",
			config.KeyLocalPath:     "/opt/tika/tika-app.jar",
			config.KeyServerPort:    "9999",
			config.KeyServerTimeout: "10",
		},
	}
	cfg := NewConfig(config.Extractor{Service: "server", Host: "localhost", Port: 9998}, store)
	ast.Equal(ModeLocal, cfg.Mode)
	ast.Equal("/opt/tika/tika-app.jar", cfg.TikaPath)
	ast.Equal("localhost", cfg.Host)
	ast.Equal(9999, cfg.Port)
	ast.Equal(int64(10), int64(cfg.Timeout.Seconds()))
	ast.Equal("java", cfg.JavaPath)
	ast.Equal([]string{"java"}, cfg.Dependencies)
	ast.Equal(5, cfg.MaxRedirects)
}
