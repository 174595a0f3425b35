// Package metadata the typed metadata record of a resource, populated from raw tika output
package metadata

import (
	"strconv"

	"github.com/willie68/GoTikaMeta/internal/filetype"
	"github.com/willie68/GoTikaMeta/internal/schema"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// Record the metadata of one resource. Base fields are part of every record,
// supplementary fields depend on the variant.
type Record struct {
	ID           int64
	ResourceHash string
	Variant      filetype.FileType

	Format           string
	Type             string
	Title            string
	Creator          string
	Contributor      string
	Subject          string
	Description      string
	Publisher        string
	Rights           string
	Language         string
	ResourceCreated  string
	ResourceModified string

	TimeCreated  int64
	TimeModified int64

	supplementary map[string]string
}

// New creates a new, not persisted record of the variant from raw metadata
func New(variant filetype.FileType, resourcehash string, raw model.RawMetadata) *Record {
	if !filetype.IsSupported(variant) {
		variant = filetype.Other
	}
	r := &Record{
		ResourceHash:  resourcehash,
		Variant:       variant,
		supplementary: make(map[string]string),
	}
	for k, v := range schema.Resolve(schema.BaseKeyMap(), raw) {
		r.setBase(k, v)
	}
	if schema.HasSupplementary(variant) {
		r.supplementary = schema.Resolve(schema.SupplementaryKeyMap(variant), raw)
	}
	return r
}

// FromRaw creates a new record, the variant is selected by the mimetype of the raw metadata
func FromRaw(resourcehash string, raw model.RawMetadata) *Record {
	return New(filetype.VariantFor(filetype.MimetypeFromRaw(raw)), resourcehash, raw)
}

// HasSupplementary true if this record has supplementary data
func (r *Record) HasSupplementary() bool {
	return schema.HasSupplementary(r.Variant)
}

// Get gets the value of a base or supplementary field
func (r *Record) Get(field string) (string, bool) {
	if p := r.basePtr(field); p != nil {
		return *p, *p != ""
	}
	v, ok := r.supplementary[field]
	return v, ok
}

// Int gets the value of a field as int
func (r *Record) Int(field string) (int64, bool) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Set sets a field of the record, the value is normalized to the field kind.
// Returns false for unknown fields or values not matching the kind.
func (r *Record) Set(field, value string) bool {
	f, ok := schema.MergedKeyMap(r.Variant).Field(field)
	if !ok {
		return false
	}
	if value == "" {
		r.unset(field)
		return true
	}
	nv, ok := f.Normalize(value)
	if !ok {
		return false
	}
	if p := r.basePtr(field); p != nil {
		*p = nv
		return true
	}
	if r.supplementary == nil {
		r.supplementary = make(map[string]string)
	}
	r.supplementary[field] = nv
	return true
}

func (r *Record) unset(field string) {
	if p := r.basePtr(field); p != nil {
		*p = ""
		return
	}
	delete(r.supplementary, field)
}

// GetRecord returns all set fields of the record as one flat map including the base id,
// int fields are returned as int64
func (r *Record) GetRecord() map[string]any {
	m := make(map[string]any)
	if r.ID != 0 {
		m[schema.ColID] = r.ID
	}
	m[schema.ColResourceHash] = r.ResourceHash
	for _, f := range schema.MergedKeyMap(r.Variant) {
		v, ok := r.Get(f.Name)
		if !ok {
			continue
		}
		m[f.Name] = typed(f, v)
	}
	if r.TimeCreated != 0 {
		m[schema.ColTimeCreated] = r.TimeCreated
	}
	if r.TimeModified != 0 {
		m[schema.ColTimeModified] = r.TimeModified
	}
	return m
}

// Value a single field value of a record
type Value struct {
	Name  string
	Value string
}

// Values all set fields in schema order
func (r *Record) Values() []Value {
	vs := make([]Value, 0)
	for _, f := range schema.MergedKeyMap(r.Variant) {
		if v, ok := r.Get(f.Name); ok {
			vs = append(vs, Value{Name: f.Name, Value: v})
		}
	}
	return vs
}

func typed(f schema.Field, v string) any {
	if f.Kind == schema.Int {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return v
}

func (r *Record) setBase(field, value string) {
	if p := r.basePtr(field); p != nil {
		*p = value
	}
}

func (r *Record) basePtr(field string) *string {
	switch field {
	case schema.FieldFormat:
		return &r.Format
	case schema.FieldType:
		return &r.Type
	case schema.FieldTitle:
		return &r.Title
	case schema.FieldCreator:
		return &r.Creator
	case schema.FieldContributor:
		return &r.Contributor
	case schema.FieldSubject:
		return &r.Subject
	case schema.FieldDescription:
		return &r.Description
	case schema.FieldPublisher:
		return &r.Publisher
	case schema.FieldRights:
		return &r.Rights
	case schema.FieldLanguage:
		return &r.Language
	case schema.FieldResourceCreated:
		return &r.ResourceCreated
	case schema.FieldResourceModified:
		return &r.ResourceModified
	}
	return nil
}

// Clone a deep copy of the record
func (r *Record) Clone() *Record {
	c := *r
	c.supplementary = make(map[string]string, len(r.supplementary))
	for k, v := range r.supplementary {
		c.supplementary[k] = v
	}
	return &c
}
