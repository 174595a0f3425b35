// Package factory creating the storages and indexes configured for the service
package factory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/willie68/GoTikaMeta/internal/config"
	"github.com/willie68/GoTikaMeta/internal/dao/bluge"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/dao/mongodb"
	"github.com/willie68/GoTikaMeta/internal/dao/noindex"
	"github.com/willie68/GoTikaMeta/internal/dao/s3"
	"github.com/willie68/GoTikaMeta/internal/dao/simplefile"
	"github.com/willie68/GoTikaMeta/internal/logging"
)

// name of storage classes
const (
	STGClassSimpleFile = "simplefile"
	STGClassS3         = "s3storage"
)

// ErrNoStg error for no storage class given
var ErrNoStg = errors.New("no storage class given")

var log = logging.New().WithName("factory")

// CreateFileStorage creates and initialise the file storage of the storage class
func CreateFileStorage(stg config.Storage) (interfaces.FileStorage, error) {
	var srv interfaces.FileStorage
	var err error
	stgcl := strings.ToLower(stg.Storageclass)
	switch stgcl {
	case STGClassSimpleFile:
		rootpath, err := config.GetConfigValueAsPath(stg, "rootpath")
		if err != nil {
			return nil, err
		}
		srv = &simplefile.FileStorage{
			RootPath: rootpath,
		}
	case STGClassS3:
		srv, err = getS3Storage(stg)
		if err != nil {
			return nil, err
		}
	case "":
		return nil, ErrNoStg
	default:
		return nil, fmt.Errorf("no storage class implementation for \"%s\" found. %w", stg.Storageclass, ErrNoStg)
	}
	if err := srv.Init(); err != nil {
		return nil, err
	}
	log.Infof("file storage: %s", stgcl)
	return srv, nil
}

func getS3Storage(stg config.Storage) (*s3.FileStorage, error) {
	endpoint, err := config.GetConfigValueAsString(stg, "endpoint")
	if err != nil {
		return nil, err
	}
	insecure, err := config.GetConfigValueAsBool(stg, "insecure")
	if err != nil {
		insecure = false
	}
	bucket, err := config.GetConfigValueAsString(stg, "bucket")
	if err != nil {
		return nil, err
	}
	accessKey, err := config.GetConfigValueAsString(stg, "accessKey")
	if err != nil {
		return nil, err
	}
	secretKey, err := config.GetConfigValueAsString(stg, "secretKey")
	if err != nil {
		return nil, err
	}
	password := ""
	if !insecure {
		password, err = config.GetConfigValueAsString(stg, "password")
		if err != nil {
			return nil, err
		}
	}
	return &s3.FileStorage{
		Endpoint:  endpoint,
		Insecure:  insecure,
		Bucket:    bucket,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Password:  password,
	}, nil
}

// CreateIndex creates and initialise the search index of the storage class, no class is no index
func CreateIndex(stg config.Storage) (interfaces.Index, error) {
	var srv interfaces.Index
	var err error
	s := strings.ToLower(stg.Storageclass)
	switch s {
	case bluge.BlugeIndex:
		p, err := properties(stg)
		if err != nil {
			return nil, err
		}
		srv, err = bluge.New(p)
		if err != nil {
			return nil, err
		}
	case mongodb.MongoIndex:
		srv, err = mongodb.New(stg.Properties)
		if err != nil {
			return nil, err
		}
	case noindex.NoIndex, "":
		srv = &noindex.Index{}
	default:
		return nil, fmt.Errorf("no searcher indexer class implementation for \"%s\" found. %w", stg.Storageclass, ErrNoStg)
	}
	if err := srv.Init(); err != nil {
		return nil, err
	}
	log.Infof("index: %s", s)
	return srv, nil
}

// properties the storage properties with the resolved root path
func properties(stg config.Storage) (map[string]any, error) {
	p := make(map[string]any)
	for k, v := range stg.Properties {
		p[k] = v
	}
	if _, ok := p["rootpath"]; ok {
		rp, err := config.GetConfigValueAsPath(stg, "rootpath")
		if err != nil {
			return nil, err
		}
		p["rootpath"] = rp
	}
	return p, nil
}
