// Package resources routing resources to the storage responsible for the resource type
package resources

import (
	"context"
	"fmt"

	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// Router the resource storage for files and urls
type Router struct {
	Files interfaces.FileStorage
	URLs  interfaces.ResourceStorage
}

var _ interfaces.ResourceStorage = &Router{}

// Init initialise both storages
func (r *Router) Init() error {
	if r.Files == nil || r.URLs == nil {
		return fmt.Errorf("file and url storage must be set")
	}
	if err := r.Files.Init(); err != nil {
		return err
	}
	return r.URLs.Init()
}

func (r *Router) storage(res model.Resource) (interfaces.ResourceStorage, error) {
	if res == nil {
		return nil, fmt.Errorf("no resource")
	}
	switch res.Type() {
	case model.ResourceTypeFile:
		return r.Files, nil
	case model.ResourceTypeURL:
		return r.URLs, nil
	}
	return nil, fmt.Errorf("unknown resource type: %s", res.Type())
}

// GetStream the stream from the responsible storage
func (r *Router) GetStream(ctx context.Context, res model.Resource) (interfaces.ResourceStream, error) {
	stg, err := r.storage(res)
	if err != nil {
		return nil, err
	}
	return stg.GetStream(ctx, res)
}

// ResourceHash the hash from the responsible storage
func (r *Router) ResourceHash(res model.Resource) (string, error) {
	stg, err := r.storage(res)
	if err != nil {
		return "", err
	}
	return stg.ResourceHash(res)
}

// ResourceID the id from the responsible storage
func (r *Router) ResourceID(res model.Resource) string {
	stg, err := r.storage(res)
	if err != nil {
		return ""
	}
	return stg.ResourceID(res)
}

// Close closing both storages
func (r *Router) Close() error {
	err := r.Files.Close()
	if uerr := r.URLs.Close(); err == nil {
		err = uerr
	}
	return err
}
