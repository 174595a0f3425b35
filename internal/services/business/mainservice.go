// Package business the package contains the business rules of the metadata service
package business

// Extracting metadata, storing it as metadata records and keeping cache and index in sync
import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/willie68/GoTikaMeta/internal/dao/fastcache"
	daointf "github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/internal/services/extractor"
	"github.com/willie68/GoTikaMeta/internal/services/interfaces"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// testing interface compatibility
var (
	_ interfaces.MetadataService = &MainService{}
	_ interfaces.Extractor       = &extractor.Dispatcher{}
)

var log = logging.New().WithName("business")

// ErrNoFileStorage no file storage is configured for uploads
var ErrNoFileStorage = errors.New("no file storage present")

// MainService the main service for the business rules
type MainService struct {
	Store  daointf.RecordStore
	ExtSrv interfaces.Extractor
	StgSrv daointf.FileStorage
	CchSrv *fastcache.FastCache
	IdxSrv daointf.Index
	hasIdx bool
	em     sync.RWMutex
}

// Init initialize this service, all parts should be initialized before
func (m *MainService) Init() error {
	if m.Store == nil {
		return errors.New("no record store present")
	}
	if m.ExtSrv == nil {
		return errors.New("no extractor present")
	}
	m.hasIdx = m.IdxSrv != nil
	return nil
}

// SetExtractor replacing the extractor, e.g. after a change of the configuration
func (m *MainService) SetExtractor(e interfaces.Extractor) {
	m.em.Lock()
	old := m.ExtSrv
	m.ExtSrv = e
	m.em.Unlock()
	if old != nil {
		old.Close()
	}
}

func (m *MainService) ext() interfaces.Extractor {
	m.em.RLock()
	defer m.em.RUnlock()
	return m.ExtSrv
}

// Extract extracts the metadata of the resource and stores it. Returns nil if tika has no result.
func (m *MainService) Extract(ctx context.Context, res model.Resource) (*metadata.Record, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "extract-metadata")
	defer span.Finish()

	r, err := m.ext().ExtractMetadata(ctx, res)
	if err != nil {
		return nil, err
	}
	if r == nil {
		log.Infof("no metadata for %s", res.Ref())
		return nil, nil
	}
	if err := m.save(ctx, r); err != nil {
		return nil, err
	}
	m.cache(r)
	m.index(r)
	return r, nil
}

// save last write wins, an existing record of the hash is updated, otherwise a new one is created
func (m *MainService) save(ctx context.Context, r *metadata.Record) error {
	old, err := metadata.Lookup(ctx, m.Store, r.ResourceHash)
	if err != nil {
		if errs.IsNotFound(err) {
			return r.Create(ctx, m.Store)
		}
		return err
	}
	if old.Variant != r.Variant {
		log.Debugf("variant of %s changed from %s to %s", r.ResourceHash, old.Variant, r.Variant)
		if _, err := old.Delete(ctx, m.Store); err != nil {
			return err
		}
		return r.Create(ctx, m.Store)
	}
	r.ID = old.ID
	r.TimeCreated = old.TimeCreated
	ok, err := r.Update(ctx, m.Store)
	if err != nil {
		return err
	}
	if !ok {
		// removed in between
		r.ID = 0
		return r.Create(ctx, m.Store)
	}
	return nil
}

// Get the stored metadata of the resource hash, errs.NotFoundError if there is none
func (m *MainService) Get(ctx context.Context, hash string) (*metadata.Record, error) {
	if m.CchSrv != nil {
		if r, ok := m.CchSrv.Get(hash); ok {
			return r, nil
		}
	}
	r, err := metadata.Lookup(ctx, m.Store, hash)
	if err != nil {
		return nil, err
	}
	m.cache(r)
	return r, nil
}

// Delete removes the stored metadata of the resource hash from store, cache and index
func (m *MainService) Delete(ctx context.Context, hash string) error {
	r, err := metadata.Lookup(ctx, m.Store, hash)
	if err != nil {
		return err
	}
	if _, err := r.Delete(ctx, m.Store); err != nil {
		return err
	}
	if m.CchSrv != nil {
		m.CchSrv.Delete(hash)
	}
	if m.hasIdx {
		if err := m.IdxSrv.Delete(hash); err != nil {
			log.Errorf("main: delete: index: %s, %v", hash, err)
		}
	}
	return nil
}

// Search searching the index, the result are the hashes of the matching resources
func (m *MainService) Search(_ context.Context, query string) ([]string, error) {
	hashes := make([]string, 0)
	if !m.hasIdx {
		return hashes, nil
	}
	err := m.IdxSrv.Search(query, func(hash string) bool {
		hashes = append(hashes, hash)
		return true
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// Content the text content of the resource
func (m *MainService) Content(ctx context.Context, res model.Resource) (string, error) {
	return m.ext().ExtractContent(ctx, res)
}

// Mimetype the mimetype of the resource
func (m *MainService) Mimetype(ctx context.Context, res model.Resource) (string, error) {
	return m.ext().ExtractMimetype(ctx, res)
}

// Upload storing a new file into the file storage
func (m *MainService) Upload(filename string, r io.Reader) (model.UploadResponse, error) {
	if m.StgSrv == nil {
		return model.UploadResponse{}, ErrNoFileStorage
	}
	hash, size, err := m.StgSrv.StoreFile(filename, r)
	if err != nil {
		return model.UploadResponse{}, err
	}
	return model.UploadResponse{
		ContentHash: hash,
		Filename:    filename,
		Size:        size,
	}, nil
}

// Status the readiness of the extraction
func (m *MainService) Status(ctx context.Context) model.StatusResponse {
	e := m.ext()
	st := model.StatusResponse{
		Ready:       e.IsReady(ctx),
		ServiceType: e.ServiceType(),
	}
	missing, err := e.Missing()
	if err != nil {
		log.Alertf("can't check dependencies: %v", err)
	}
	if len(missing) > 0 {
		st.Missing = missing
	}
	return st
}

func (m *MainService) cache(r *metadata.Record) {
	if m.CchSrv != nil {
		m.CchSrv.Put(r)
	}
}

func (m *MainService) index(r *metadata.Record) {
	if !m.hasIdx {
		return
	}
	if err := m.IdxSrv.Index(r.ResourceHash, r.GetRecord()); err != nil {
		log.Errorf("main: index: %s, %v", r.ResourceHash, err)
	}
}

// Close closing all parts of the service
func (m *MainService) Close() error {
	var errList []error
	if m.CchSrv != nil {
		errList = append(errList, m.CchSrv.Close())
	}
	if m.hasIdx {
		errList = append(errList, m.IdxSrv.Close())
	}
	if m.StgSrv != nil {
		errList = append(errList, m.StgSrv.Close())
	}
	errList = append(errList, m.ext().Close(), m.Store.Close())
	return errors.Join(errList...)
}
