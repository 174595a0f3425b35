package model

// ResourceType type of an extractable resource
type ResourceType string

// resource types
const (
	ResourceTypeFile ResourceType = "file"
	ResourceTypeURL  ResourceType = "url"
)

// Resource a reference to content to be analyzed
type Resource interface {
	Type() ResourceType
	// Ref a human readable reference for logging and errors
	Ref() string
}

// FileResource a stored file identified by its content hash
type FileResource struct {
	ContentHash string `json:"contenthash"`
	Filename    string `json:"filename"`
	Directory   bool   `json:"directory"`
}

// URLResource an external url
type URLResource struct {
	ID          int64  `json:"id"`
	ExternalURL string `json:"url" validate:"required"`
}

var _ Resource = &FileResource{}
var _ Resource = &URLResource{}

// Type the resource type file
func (f *FileResource) Type() ResourceType {
	return ResourceTypeFile
}

// Ref the content hash
func (f *FileResource) Ref() string {
	return f.ContentHash
}

// Type the resource type url
func (u *URLResource) Type() ResourceType {
	return ResourceTypeURL
}

// Ref the url
func (u *URLResource) Ref() string {
	return u.ExternalURL
}
