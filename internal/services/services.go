// Package services wiring all services of the metadata extraction together
package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/do"
	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/dao/fastcache"
	daointf "github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/dao/resources"
	"github.com/willie68/GoTikaMeta/internal/dao/sqlstore"
	"github.com/willie68/GoTikaMeta/internal/dao/web"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/services/business"
	"github.com/willie68/GoTikaMeta/internal/services/extractor"
	"github.com/willie68/GoTikaMeta/internal/services/factory"
	"github.com/willie68/GoTikaMeta/internal/services/health"
	"github.com/willie68/GoTikaMeta/internal/services/interfaces"
)

// names of the provided services
const (
	DoStore     = "recordstore"
	DoResources = "resources"
	DoIndex     = "index"
	DoMetadata  = "metadata"
	DoHealth    = "health"
)

var (
	logger   = logging.New().WithName("services")
	injector *do.Injector
	im       sync.Mutex
	main     *business.MainService
	hs       *health.SHealth
)

// InitServices initialise the service system
func InitServices(ctx context.Context, cfg config.Config) error {
	im.Lock()
	defer im.Unlock()
	injector = do.New()

	dsn, err := config.ReplaceConfigdir(cfg.Database.DSN)
	if err != nil {
		return err
	}
	store, err := sqlstore.Open(ctx, sqlstore.Config{Driver: cfg.Database.Driver, DSN: dsn})
	if err != nil {
		return err
	}
	do.ProvideNamedValue[daointf.RecordStore](injector, DoStore, store)

	files, err := factory.CreateFileStorage(cfg.Resources)
	if err != nil {
		return err
	}
	spool, err := config.GetConfigValueAsPath(cfg.Resources, "spool")
	if err != nil {
		spool = filepath.Join(os.TempDir(), config.Servicename)
	}
	router := &resources.Router{
		Files: files,
		URLs: &web.Storage{
			SpoolPath:    spool,
			Timeout:      time.Duration(cfg.Extractor.Timeout) * time.Second,
			MaxRedirects: cfg.Extractor.MaxRedirects,
		},
	}
	if err := router.Init(); err != nil {
		return err
	}
	do.ProvideNamedValue[daointf.ResourceStorage](injector, DoResources, router)

	idx, err := factory.CreateIndex(cfg.Index)
	if err != nil {
		return err
	}
	do.ProvideNamedValue[daointf.Index](injector, DoIndex, idx)

	var cch *fastcache.FastCache
	if cfg.Cache.Enable {
		cch = &fastcache.FastCache{MaxCount: cfg.Cache.MaxCount}
		if err := cch.Init(); err != nil {
			return err
		}
	}

	ms := &business.MainService{
		Store:  store,
		ExtSrv: newExtractor(cfg, router),
		StgSrv: files,
		CchSrv: cch,
		IdxSrv: idx,
	}
	if err := ms.Init(); err != nil {
		return err
	}
	main = ms
	do.ProvideNamedValue[interfaces.MetadataService](injector, DoMetadata, ms)

	hs = health.NewHealthSystem(cfg.HealthCheck,
		&health.ReadyCheck{
			CheckName: "extractor",
			Ready: health.ReadyFunc(func(ctx context.Context) bool {
				return ms.Status(ctx).Ready
			}),
		},
		&health.PingCheck{CheckName: "database", Conn: store},
		&health.DiskCheck{Path: spool, MinFree: cfg.HealthCheck.MinFreeSpace},
	)
	hs.Start()
	do.ProvideNamedValue[*health.SHealth](injector, DoHealth, hs)
	logger.Info("services initialised")
	return nil
}

func newExtractor(cfg config.Config, stg daointf.ResourceStorage) *extractor.Dispatcher {
	ecfg := extractor.NewConfig(cfg.Extractor, cfg.Plugins)
	logger.Infof("extraction service type: %s", ecfg.Mode)
	return extractor.New(ecfg, stg)
}

// Reconfigure applies a changed configuration to the extraction
func Reconfigure(cfg config.Config) error {
	im.Lock()
	defer im.Unlock()
	if main == nil {
		return errors.New("services not initialised")
	}
	stg, err := do.InvokeNamed[daointf.ResourceStorage](injector, DoResources)
	if err != nil {
		return err
	}
	main.SetExtractor(newExtractor(cfg, stg))
	return nil
}

// MetadataService the metadata business service
func MetadataService() (interfaces.MetadataService, error) {
	im.Lock()
	defer im.Unlock()
	if injector == nil {
		return nil, errors.New("services not initialised")
	}
	return do.InvokeNamed[interfaces.MetadataService](injector, DoMetadata)
}

// HealthSystem the health system
func HealthSystem() (*health.SHealth, error) {
	im.Lock()
	defer im.Unlock()
	if injector == nil {
		return nil, errors.New("services not initialised")
	}
	return do.InvokeNamed[*health.SHealth](injector, DoHealth)
}

// Shutdown closing all services
func Shutdown() error {
	im.Lock()
	defer im.Unlock()
	if injector == nil {
		return nil
	}
	if hs != nil {
		hs.Close()
	}
	var err error
	if main != nil {
		err = main.Close()
	}
	main, hs, injector = nil, nil, nil
	return err
}
