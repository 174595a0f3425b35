package interfaces

import (
	"context"
	"io"

	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// MetadataService the business service for extracting and storing metadata
type MetadataService interface {
	Init() error

	Extract(ctx context.Context, res model.Resource) (*metadata.Record, error) // extracting and storing the metadata of the resource
	Get(ctx context.Context, hash string) (*metadata.Record, error)            // the stored metadata of the resource hash
	Delete(ctx context.Context, hash string) error                             // removing the stored metadata
	Search(ctx context.Context, query string) ([]string, error)                // searching the index, returning the resource hashes

	Content(ctx context.Context, res model.Resource) (string, error)  // the text content of the resource
	Mimetype(ctx context.Context, res model.Resource) (string, error) // the mimetype of the resource

	Upload(filename string, r io.Reader) (model.UploadResponse, error) // storing a new file
	Status(ctx context.Context) model.StatusResponse                   // readiness of the extraction

	Close() error
}
