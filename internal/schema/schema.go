// Package schema the registry of typed metadata fields, their raw key aliases and the persisted tables
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/filetype"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

// Kind the value kind of a field
type Kind int

// field kinds
const (
	Text Kind = iota
	Int
)

// BaseTable the table of the base metadata of every record
const BaseTable = "metadataextractor_tika"

// reserved column names, never used as field names
const (
	ColID           = "id"
	ColResourceHash = "resourcehash"
	ColTimeCreated  = "timecreated"
	ColTimeModified = "timemodified"
	ColVariant      = "variant"
)

var reserved = []string{ColID, ColResourceHash, ColTimeCreated, ColTimeModified, ColVariant}

// Field a typed metadata field with its raw key aliases in priority order
type Field struct {
	Name    string
	Kind    Kind
	Aliases []string
}

// KeyMap an ordered list of fields
type KeyMap []Field

// Names returns the field names in order
func (k KeyMap) Names() []string {
	ns := make([]string, len(k))
	for x, f := range k {
		ns[x] = f.Name
	}
	return ns
}

// Field returns the field with the name
func (k KeyMap) Field(name string) (Field, bool) {
	for _, f := range k {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Column a column of a persisted table
type Column struct {
	Name string
	Kind Kind
}

// TableDef definition of a persisted table, id and resourcehash are implicit
type TableDef struct {
	Name    string
	Columns []Column
}

// BaseKeyMap the key map shared by all variants
func BaseKeyMap() KeyMap {
	return baseKeyMap
}

// SupplementaryKeyMap the variant specific key map, empty for variants without supplementary data
func SupplementaryKeyMap(ft filetype.FileType) KeyMap {
	return supplementaryKeyMaps[ft]
}

// MergedKeyMap base fields first, supplementary fields second
func MergedKeyMap(ft filetype.FileType) KeyMap {
	km := make(KeyMap, 0, len(baseKeyMap)+len(supplementaryKeyMaps[ft]))
	km = append(km, baseKeyMap...)
	return append(km, supplementaryKeyMaps[ft]...)
}

// HasSupplementary true if the variant stores supplementary data
func HasSupplementary(ft filetype.FileType) bool {
	return len(supplementaryKeyMaps[ft]) > 0
}

// SupplementaryTable the table name of the supplementary data of a variant
func SupplementaryTable(ft filetype.FileType) string {
	return fmt.Sprintf("tika_%s_metadata", ft)
}

// Resolve resolves the value of every field from the raw metadata, the first present alias wins.
// Int fields are normalized, a field without a usable value is not part of the result.
func Resolve(km KeyMap, raw model.RawMetadata) map[string]string {
	res := make(map[string]string)
	for _, f := range km {
		for _, a := range f.Aliases {
			v, ok := raw.Get(a)
			if !ok {
				continue
			}
			if nv, ok := f.Normalize(v); ok {
				res[f.Name] = nv
			}
			break
		}
	}
	return res
}

// Normalize normalizes a value to the field kind, ints take the leading number of the value ("480 pixels" is 480)
func (f Field) Normalize(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if f.Kind == Text {
		return v, true
	}
	end := 0
	for end < len(v) && (v[end] >= '0' && v[end] <= '9' || end == 0 && v[end] == '-') {
		end++
	}
	i, err := strconv.ParseInt(v[:end], 10, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(i, 10), true
}

// Tables the definitions of all persisted tables, base table first
func Tables() []TableDef {
	base := TableDef{Name: BaseTable}
	for _, f := range baseKeyMap {
		base.Columns = append(base.Columns, Column{Name: f.Name, Kind: f.Kind})
	}
	base.Columns = append(base.Columns,
		Column{Name: ColVariant, Kind: Text},
		Column{Name: ColTimeCreated, Kind: Int},
		Column{Name: ColTimeModified, Kind: Int},
	)
	tds := []TableDef{base}
	for _, ft := range filetype.Supported() {
		km := supplementaryKeyMaps[ft]
		if len(km) == 0 {
			continue
		}
		td := TableDef{Name: SupplementaryTable(ft)}
		for _, f := range km {
			td.Columns = append(td.Columns, Column{Name: f.Name, Kind: f.Kind})
		}
		tds = append(tds, td)
	}
	return tds
}

// Validate checks the consistency of the registry
func Validate() error {
	if err := validateKeyMap("base", baseKeyMap); err != nil {
		return err
	}
	for ft, km := range supplementaryKeyMaps {
		if !filetype.IsSupported(ft) {
			return errors.Errorf("supplementary key map for unsupported file type %s", ft)
		}
		if err := validateKeyMap(string(ft), km); err != nil {
			return err
		}
		for _, f := range km {
			if _, ok := baseKeyMap.Field(f.Name); ok {
				return errors.Errorf("%s: field %s shadows a base field", ft, f.Name)
			}
		}
	}
	return nil
}

func validateKeyMap(name string, km KeyMap) error {
	seen := make(map[string]bool)
	for _, f := range km {
		if f.Name == "" {
			return errors.Errorf("%s: field without name", name)
		}
		for _, r := range reserved {
			if f.Name == r {
				return errors.Errorf("%s: field name %s is reserved", name, f.Name)
			}
		}
		if seen[f.Name] {
			return errors.Errorf("%s: duplicate field %s", name, f.Name)
		}
		seen[f.Name] = true
		if len(f.Aliases) == 0 {
			return errors.Errorf("%s: field %s has no aliases", name, f.Name)
		}
	}
	return nil
}
