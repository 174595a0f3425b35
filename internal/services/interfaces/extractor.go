package interfaces

import (
	"context"

	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// Extractor interface of the tika extraction
type Extractor interface {
	ExtractMetadata(ctx context.Context, res model.Resource) (*metadata.Record, error) // the metadata of the resource, nil if tika has no result
	ExtractContent(ctx context.Context, res model.Resource) (string, error)            // the text content of the resource
	ExtractMimetype(ctx context.Context, res model.Resource) (string, error)           // the detected mimetype of the resource

	ServiceType() string              // the configured service type, local or server
	IsReady(ctx context.Context) bool // true if the configured backend is usable
	Missing() ([]string, error)       // missing dependencies of the configured service type
	Close() error
}
