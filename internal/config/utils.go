package config

import (
	"fmt"
)

// GetConfigValueAsString gets a string property of the storage config
func GetConfigValueAsString(stgCfng Storage, key string) (string, error) {
	if _, ok := stgCfng.Properties[key]; !ok {
		return "", fmt.Errorf("missing config value for %s", key)
	}
	value, ok := stgCfng.Properties[key].(string)
	if !ok {
		return "", fmt.Errorf("config value for %s is not a string", key)
	}
	return value, nil
}

// GetConfigValueAsBool gets a bool property of the storage config
func GetConfigValueAsBool(stgCfng Storage, key string) (bool, error) {
	if _, ok := stgCfng.Properties[key]; !ok {
		return false, fmt.Errorf("missing config value for %s", key)
	}
	value, ok := stgCfng.Properties[key].(bool)
	if !ok {
		return false, fmt.Errorf("config value for %s is not a bool", key)
	}
	return value, nil
}

// GetConfigValueAsPath gets a path property of the storage config, the configdir macro is replaced
func GetConfigValueAsPath(stgCfng Storage, key string) (string, error) {
	value, err := GetConfigValueAsString(stgCfng, key)
	if err != nil {
		return "", err
	}
	return ReplaceConfigdir(value)
}
