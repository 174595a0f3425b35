// Package extractor extracting metadata, text content and mimetypes of resources with apache tika,
// either with a local tika app jar or with a tika rest server
package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// Option a tika extraction option
type Option string

// tika options
const (
	DetectType   Option = "--detect"
	TextContent  Option = "--text"
	JSONMetadata Option = "--json"
)

// supported options of the local tika app
var localOptions = []Option{DetectType, TextContent, JSONMetadata}

var (
	log      = logging.New().WithName("extractor")
	httpURL  = regexp.MustCompile(`(?i)^https?://`)
	validate = validator.New()
)

// Dispatcher validates resources and routes extractions to the configured backend
type Dispatcher struct {
	cfg    Config
	stg    interfaces.ResourceStorage
	local  *Local
	server *Server
	sm     sync.Mutex
}

// New creates a new dispatcher, the server backend is created on first use
func New(cfg Config, stg interfaces.ResourceStorage) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		cfg:   cfg,
		stg:   stg,
		local: NewLocal(cfg),
	}
}

// WithServer sets the server backend, mainly for tests with a custom http client
func (d *Dispatcher) WithServer(s *Server) *Dispatcher {
	d.sm.Lock()
	defer d.sm.Unlock()
	d.server = s
	return d
}

// Mode the configured service type
func (d *Dispatcher) Mode() Mode {
	return d.cfg.Mode
}

// ServiceType the configured service type as string
func (d *Dispatcher) ServiceType() string {
	return string(d.cfg.Mode)
}

// Server the server backend, created from the configuration
func (d *Dispatcher) Server() (*Server, error) {
	d.sm.Lock()
	defer d.sm.Unlock()
	if d.server == nil {
		s, err := NewServer(d.cfg, nil)
		if err != nil {
			return nil, err
		}
		d.server = s
	}
	return d.server, nil
}

// Extract runs the extraction with the options on the resource and returns the raw tika output.
// An empty result means tika had no result.
func (d *Dispatcher) Extract(ctx context.Context, res model.Resource, opts ...Option) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "extract")
	defer span.Finish()
	span.SetTag("mode", string(d.cfg.Mode))

	if !ValidateResource(res) {
		return "", &errs.UnsupportedResourceError{Resource: ref(res)}
	}
	stream, err := d.stg.GetStream(ctx, res)
	if err != nil {
		return "", err
	}
	if stream == nil {
		return "", &errs.ExtractionError{
			Kind: errs.KindResourceNotFound,
			Msg:  fmt.Sprintf("%s %s", res.Type(), d.stg.ResourceID(res)),
		}
	}
	defer stream.Close()

	var result string
	switch d.cfg.Mode {
	case ModeLocal:
		result, err = d.extractLocal(ctx, stream, opts)
	case ModeServer:
		if len(opts) != 1 {
			err = errs.NewExtractionError(errs.KindInvalidOptions, "the server needs exactly one option")
			break
		}
		result, err = d.extractServer(ctx, stream, opts[0])
	default:
		err = errs.NewExtractionError(errs.KindInvalidServiceType, string(d.cfg.Mode))
	}
	if err != nil {
		extractionErrors.WithLabelValues(string(d.cfg.Mode)).Inc()
		log.Errorf("extraction of %s failed: %v", res.Ref(), err)
		return "", err
	}
	return result, nil
}

func (d *Dispatcher) extractLocal(ctx context.Context, stream interfaces.ResourceStream, opts []Option) (string, error) {
	if !d.local.IsReady(ctx) {
		return "", &errs.ConfigurationError{Key: "tikalocalpath", Msg: "local tika is not installed or configured"}
	}
	if len(opts) == 0 {
		return "", errs.NewExtractionError(errs.KindNoOptionSet, "no option set")
	}
	for _, o := range opts {
		if !supported(o) {
			return "", errs.NewExtractionError(errs.KindUnsupportedOption, string(o))
		}
	}
	for _, o := range opts {
		extractions.WithLabelValues(string(ModeLocal), string(o)).Inc()
	}
	return d.local.Run(ctx, stream, opts)
}

func (d *Dispatcher) extractServer(ctx context.Context, stream interfaces.ResourceStream, opt Option) (string, error) {
	s, err := d.Server()
	if err != nil {
		return "", err
	}
	if !s.IsReady(ctx) {
		return "", errs.NewExtractionError(errs.KindNotReady, s.BaseURI())
	}
	extractions.WithLabelValues(string(ModeServer), string(opt)).Inc()
	var result string
	switch opt {
	case TextContent:
		result, err = s.GetContent(ctx, stream)
	case JSONMetadata:
		result, err = s.GetMetadata(ctx, stream)
	case DetectType:
		result, err = s.GetMimetype(ctx, stream)
	default:
		return "", errs.NewExtractionError(errs.KindUnsupportedOption, string(opt))
	}
	if errors.Is(err, ErrNoContent) {
		return "", nil
	}
	return result, err
}

// ExtractContent the text content of the resource
func (d *Dispatcher) ExtractContent(ctx context.Context, res model.Resource) (string, error) {
	return d.Extract(ctx, res, TextContent)
}

// ExtractMimetype the detected mimetype of the resource
func (d *Dispatcher) ExtractMimetype(ctx context.Context, res model.Resource) (string, error) {
	mt, err := d.Extract(ctx, res, DetectType)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(mt), nil
}

// ExtractMetadata extracts the raw metadata and builds a new, not persisted record.
// Returns nil if tika had no or no usable result.
func (d *Dispatcher) ExtractMetadata(ctx context.Context, res model.Resource) (*metadata.Record, error) {
	js, err := d.Extract(ctx, res, JSONMetadata)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(js) == "" {
		return nil, nil
	}
	raw, err := model.ParseRawMetadata([]byte(js))
	if err != nil {
		log.Alertf("unparseable tika result for %s: %v", res.Ref(), err)
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}
	hash, err := d.stg.ResourceHash(res)
	if err != nil {
		return nil, err
	}
	return metadata.FromRaw(hash, raw), nil
}

// ExtractFileMetadata metadata of a stored file
func (d *Dispatcher) ExtractFileMetadata(ctx context.Context, contenthash string) (*metadata.Record, error) {
	return d.ExtractMetadata(ctx, &model.FileResource{ContentHash: contenthash})
}

// ExtractURLMetadata metadata of an url
func (d *Dispatcher) ExtractURLMetadata(ctx context.Context, url model.URLResource) (*metadata.Record, error) {
	return d.ExtractMetadata(ctx, &url)
}

// ExtractFileContent text content of a stored file
func (d *Dispatcher) ExtractFileContent(ctx context.Context, contenthash string) (string, error) {
	return d.ExtractContent(ctx, &model.FileResource{ContentHash: contenthash})
}

// ExtractURLContent text content of an url
func (d *Dispatcher) ExtractURLContent(ctx context.Context, url model.URLResource) (string, error) {
	return d.ExtractContent(ctx, &url)
}

// ExtractFileMimetype mimetype of a stored file
func (d *Dispatcher) ExtractFileMimetype(ctx context.Context, contenthash string) (string, error) {
	return d.ExtractMimetype(ctx, &model.FileResource{ContentHash: contenthash})
}

// ExtractURLMimetype mimetype of an url
func (d *Dispatcher) ExtractURLMimetype(ctx context.Context, url model.URLResource) (string, error) {
	return d.ExtractMimetype(ctx, &url)
}

// IsReady checks if the configured backend is usable, never fails
func (d *Dispatcher) IsReady(ctx context.Context) bool {
	switch d.cfg.Mode {
	case ModeLocal:
		return d.local.IsReady(ctx)
	case ModeServer:
		s, err := d.Server()
		if err != nil {
			log.Debugf("tika server not configured: %v", err)
			return false
		}
		return s.IsReady(ctx)
	}
	return false
}

// MissingDependencies the dependencies of the mode not found in the path
func (d *Dispatcher) MissingDependencies(mode Mode) ([]string, error) {
	switch mode {
	case ModeLocal:
		return missing(d.cfg.Dependencies), nil
	case ModeServer:
		return []string{}, nil
	}
	return nil, errs.NewExtractionError(errs.KindInvalidServiceType, string(mode))
}

// Missing the missing dependencies of the configured service type
func (d *Dispatcher) Missing() ([]string, error) {
	return d.MissingDependencies(d.cfg.Mode)
}

// ValidateResource checks if the resource can be extracted. Directories are not extractable,
// urls must be valid http(s) urls.
func ValidateResource(res model.Resource) bool {
	switch r := res.(type) {
	case *model.FileResource:
		return r != nil && !r.Directory
	case *model.URLResource:
		if r == nil || !httpURL.MatchString(r.ExternalURL) {
			return false
		}
		return validate.Var(r.ExternalURL, "required,url") == nil
	}
	return false
}

func ref(res model.Resource) string {
	if res == nil {
		return "<nil>"
	}
	return res.Ref()
}

func supported(o Option) bool {
	for _, s := range localOptions {
		if s == o {
			return true
		}
	}
	return false
}

// Close closing the idle connections of the server backend
func (d *Dispatcher) Close() error {
	d.sm.Lock()
	defer d.sm.Unlock()
	if d.server == nil {
		return nil
	}
	return d.server.Close()
}

