package model

import (
	"encoding/json"
)

// StatusResponse REST response for the readiness of the extraction service
type StatusResponse struct {
	Ready       bool     `json:"ready"`
	ServiceType string   `json:"servicetype"`
	Missing     []string `json:"missing,omitempty"`
}

// MarshalJSON marshall this to JSON
func (r StatusResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type        string   `json:"type"`
		Ready       bool     `json:"ready"`
		ServiceType string   `json:"servicetype"`
		Missing     []string `json:"missing,omitempty"`
	}{
		Type:        "statusResponse",
		Ready:       r.Ready,
		ServiceType: r.ServiceType,
		Missing:     r.Missing,
	})
}

// MetadataResponse REST response with a stored metadata record
type MetadataResponse struct {
	ResourceHash string         `json:"resourcehash"`
	Variant      string         `json:"variant"`
	Metadata     map[string]any `json:"metadata"`
}

// MarshalJSON marshall this to JSON
func (r MetadataResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type         string         `json:"type"`
		ResourceHash string         `json:"resourcehash"`
		Variant      string         `json:"variant"`
		Metadata     map[string]any `json:"metadata"`
	}{
		Type:         "metadataResponse",
		ResourceHash: r.ResourceHash,
		Variant:      r.Variant,
		Metadata:     r.Metadata,
	})
}

// ContentResponse REST response for a text or mimetype extraction
type ContentResponse struct {
	ResourceHash string `json:"resourcehash"`
	Content      string `json:"content"`
}

// MarshalJSON marshall this to JSON
func (r ContentResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type         string `json:"type"`
		ResourceHash string `json:"resourcehash"`
		Content      string `json:"content"`
	}{
		Type:         "contentResponse",
		ResourceHash: r.ResourceHash,
		Content:      r.Content,
	})
}

// UploadResponse REST response for an uploaded file
type UploadResponse struct {
	ContentHash string `json:"contenthash"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
}

// MarshalJSON marshall this to JSON
func (r UploadResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type        string `json:"type"`
		ContentHash string `json:"contenthash"`
		Filename    string `json:"filename"`
		Size        int64  `json:"size"`
	}{
		Type:        "uploadResponse",
		ContentHash: r.ContentHash,
		Filename:    r.Filename,
		Size:        r.Size,
	})
}

// SearchResponse REST response of a metadata search
type SearchResponse struct {
	Query  string   `json:"query"`
	Hashes []string `json:"hashes"`
}

// MarshalJSON marshall this to JSON
func (r SearchResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type   string   `json:"type"`
		Query  string   `json:"query"`
		Hashes []string `json:"hashes"`
	}{
		Type:   "searchResponse",
		Query:  r.Query,
		Hashes: r.Hashes,
	})
}
