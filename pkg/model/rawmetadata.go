package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/utils/jsonutils"
)

// RawMetadata the unprocessed key values of a tika metadata extraction
type RawMetadata map[string]any

// ParseRawMetadata parses the json output of tika. The recursive output of tika is an array of objects,
// in that case the first object, the container document, is used.
func ParseRawMetadata(data []byte) (RawMetadata, error) {
	var v any
	if err := jsonutils.DecodeBytes(data, &v); err != nil {
		return nil, errors.Wrap(err, "parsing tika metadata")
	}
	switch m := v.(type) {
	case map[string]any:
		return RawMetadata(m), nil
	case []any:
		if len(m) > 0 {
			if o, ok := m[0].(map[string]any); ok {
				return RawMetadata(o), nil
			}
		}
	}
	return nil, errors.New("tika metadata is not an object")
}

// Get returns the flattened value of the key, false if the key is absent or nil
func (r RawMetadata) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return Flatten(v), true
}

// Flat returns all keys flattened to strings
func (r RawMetadata) Flat() map[string]string {
	res := make(map[string]string, len(r))
	for k := range r {
		if v, ok := r.Get(k); ok {
			res[k] = v
		}
	}
	return res
}

// Flatten converts a json value to a string, arrays are joined with ", ",
// objects become sorted "key: value" pairs
func Flatten(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []any:
		ps := make([]string, 0, len(x))
		for _, e := range x {
			if e == nil {
				continue
			}
			ps = append(ps, Flatten(e))
		}
		return strings.Join(ps, ", ")
	case []string:
		return strings.Join(x, ", ")
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ps := make([]string, 0, len(keys))
		for _, k := range keys {
			ps = append(ps, fmt.Sprintf("%s: %s", k, Flatten(x[k])))
		}
		return strings.Join(ps, ", ")
	default:
		return fmt.Sprintf("%v", x)
	}
}
