package config

import (
	"strconv"
	"strings"
)

// PluginName name of the plugin settings of the tika extraction
const PluginName = "metadataextractor_tika"

// plugin setting keys
const (
	KeyServiceType   = "tikaservicetype"
	KeyLocalPath     = "tikalocalpath"
	KeyServerHost    = "tikaserverhost"
	KeyServerPort    = "tikaserverport"
	KeyServerTimeout = "tikaservertimeout"
)

// Store key value view of plugin settings
type Store interface {
	Get(plugin, key string) (string, bool)
}

var _ Store = PluginSettings{}

// PluginSettings plugin name to key value settings
type PluginSettings map[string]map[string]string

// Get gets a single setting, empty values count as not set
func (p PluginSettings) Get(plugin, key string) (string, bool) {
	kv, ok := p[plugin]
	if !ok {
		return "", false
	}
	v, ok := kv[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Resolve merges the plugin settings of the store into the extractor configuration,
// plugin settings win
func (e Extractor) Resolve(store Store) Extractor {
	if store == nil {
		return e
	}
	if v, ok := store.Get(PluginName, KeyServiceType); ok {
		e.Service = v
	}
	if v, ok := store.Get(PluginName, KeyLocalPath); ok {
		e.TikaPath = v
	}
	if v, ok := store.Get(PluginName, KeyServerHost); ok {
		e.Host = v
	}
	if v, ok := store.Get(PluginName, KeyServerPort); ok {
		if p, err := strconv.Atoi(v); err == nil {
			e.Port = p
		}
	}
	if v, ok := store.Get(PluginName, KeyServerTimeout); ok {
		if t, err := strconv.Atoi(v); err == nil {
			e.Timeout = t
		}
	}
	return e
}
