// Package filetype classifies mimetypes into the file type categories used for the metadata variants
package filetype

import (
	"strings"
)

// FileType category of a resource
type FileType string

// all known file types
const (
	Document     FileType = "document"
	PDF          FileType = "pdf"
	Presentation FileType = "presentation"
	Spreadsheet  FileType = "spreadsheet"
	Image        FileType = "image"
	Audio        FileType = "audio"
	Video        FileType = "video"
	Archive      FileType = "archive"
	Other        FileType = "other"
)

const (
	// MimetypeKey the raw metadata key holding the mimetype, RFC 7231 entity header
	MimetypeKey = "Content-Type"
	// MimetypeUnknown sentinel for a resource without a known mimetype
	MimetypeUnknown = "unknown"
)

type category struct {
	filetype  FileType
	mimetypes []string
}

var (
	all       = []FileType{Document, PDF, Presentation, Spreadsheet, Image, Audio, Video, Archive, Other}
	supported = []FileType{Document, PDF, Image, Audio, Video, Spreadsheet, Presentation}
	lookup    map[string]FileType
)

func init() {
	lookup = make(map[string]FileType)
	for _, c := range mimetypes {
		for _, m := range c.mimetypes {
			// first category wins
			if _, ok := lookup[m]; !ok {
				lookup[m] = c.filetype
			}
		}
	}
}

// StripParameters removes all parameters from a mimetype, "text/csv; charset=UTF-8" results in "text/csv"
func StripParameters(mimetype string) string {
	mt, _, _ := strings.Cut(mimetype, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// Classify returns the file type of the mimetype, never fails, unknown mimetypes are Other
func Classify(mimetype string) FileType {
	mt := StripParameters(mimetype)
	if mt == "" || mt == MimetypeUnknown {
		return Other
	}
	ft, ok := lookup[mt]
	if !ok {
		return Other
	}
	return ft
}

// IsSupported true if the file type has its own metadata variant
func IsSupported(ft FileType) bool {
	for _, s := range supported {
		if s == ft {
			return true
		}
	}
	return false
}

// VariantFor returns the metadata variant for a mimetype, unsupported types get the base variant Other
func VariantFor(mimetype string) FileType {
	ft := Classify(mimetype)
	if !IsSupported(ft) {
		return Other
	}
	return ft
}

// MimetypeFromRaw gets the mimetype out of raw metadata
func MimetypeFromRaw(raw map[string]any) string {
	v, ok := raw[MimetypeKey]
	if !ok || v == nil {
		return MimetypeUnknown
	}
	switch mt := v.(type) {
	case string:
		return mt
	case []any:
		// tika reports multiple values for some containers, the first is the detected type
		if len(mt) > 0 {
			if s, ok := mt[0].(string); ok {
				return s
			}
		}
	}
	return MimetypeUnknown
}

// Parse parses a file type name
func Parse(s string) (FileType, bool) {
	for _, ft := range all {
		if strings.EqualFold(string(ft), s) {
			return ft, true
		}
	}
	return Other, false
}

// All returns all file types
func All() []FileType {
	return append([]FileType{}, all...)
}

// Supported returns all file types with an own metadata variant
func Supported() []FileType {
	return append([]FileType{}, supported...)
}
