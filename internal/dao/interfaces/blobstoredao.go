package interfaces

import (
	"context"
	"io"

	"github.com/willie68/GoTikaMeta/pkg/model"
)

// ResourceStream the content of a resource, LocalPath is the path of a local copy of the content
type ResourceStream interface {
	io.ReadCloser
	LocalPath() string
}

// ResourceStorage this is the interface for all storages delivering the content of a resource
type ResourceStorage interface {
	Init() error // initialise this storage

	GetStream(ctx context.Context, res model.Resource) (ResourceStream, error) // getting the content, nil if there is no content for the resource
	ResourceHash(res model.Resource) (string, error)                           // the stable hash identifying the resource
	ResourceID(res model.Resource) string                                      // the id of the resource in the storage

	Close() error // closing the storage
}

// FileStorage a resource storage which is able to store new files
type FileStorage interface {
	ResourceStorage
	StoreFile(filename string, r io.Reader) (string, int64, error) // storing a file, returning content hash and size
	HasFile(contenthash string) (bool, error)                      // checking, if a file is present
	DeleteFile(contenthash string) error                           // removing a file from the storage
}
