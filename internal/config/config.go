package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/drone/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/willie68/GoTikaMeta/internal/api"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"gopkg.in/yaml.v3"
)

// Servicename Name of the service
const Servicename = "gotikameta-service"

// Config our service configuration
type Config struct {
	//port of the http server
	Port int `yaml:"port" toml:"port" validate:"gte=0,lte=65535"`
	//port of the https server
	Sslport int `yaml:"sslport" toml:"sslport" validate:"gte=0,lte=65535"`
	//this is the url how to connect to this service from outside
	ServiceURL string `yaml:"serviceURL" toml:"serviceURL"`

	SecretFile string `yaml:"secretfile" toml:"secretfile"`

	Apikey bool `yaml:"apikey" toml:"apikey"`

	Logging logging.Config `yaml:"logging" toml:"logging"`

	HealthCheck HealthCheck `yaml:"healthcheck" toml:"healthcheck"`

	Extractor Extractor `yaml:"extractor" toml:"extractor"`

	Database Database `yaml:"database" toml:"database"`

	Resources Storage `yaml:"resources" toml:"resources"`

	Cache Cache `yaml:"cache" toml:"cache"`

	Index Storage `yaml:"index" toml:"index"`

	// plugin settings, plugin name to key values
	Plugins PluginSettings `yaml:"plugins" toml:"plugins"`

	HeaderMapping map[string]string `yaml:"headermapping" toml:"headermapping"`

	OpenTracing OpenTracing `yaml:"opentracing" toml:"opentracing"`

	Metrics Metrics `yaml:"metrics" toml:"metrics"`
}

// Extractor configuration of the tika extraction
type Extractor struct {
	// local or server
	Service      string   `yaml:"service" toml:"service" validate:"omitempty,oneof=local server"`
	TikaPath     string   `yaml:"tikapath" toml:"tikapath"`
	JavaPath     string   `yaml:"javapath" toml:"javapath"`
	Dependencies []string `yaml:"dependencies" toml:"dependencies"`
	Host         string   `yaml:"host" toml:"host"`
	Port         int      `yaml:"port" toml:"port" validate:"gte=0,lte=65535"`

	// request timeout in seconds
	Timeout      int     `yaml:"timeout" toml:"timeout" validate:"gte=0"`
	RateLimit    float64 `yaml:"ratelimit" toml:"ratelimit" validate:"gte=0"`
	MaxRedirects int     `yaml:"maxredirects" toml:"maxredirects" validate:"gte=0"`
}

// Database configuration of the record store
type Database struct {
	Driver string `yaml:"driver" toml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

// Storage configuration
type Storage struct {
	Storageclass string         `yaml:"storageclass" toml:"storageclass"`
	Properties   map[string]any `yaml:"properties" toml:"properties"`
}

// Cache configuration of the record cache
type Cache struct {
	Enable   bool `yaml:"enable" toml:"enable"`
	MaxCount int  `yaml:"maxcount" toml:"maxcount" validate:"gte=0"`
}

// HealthCheck configuration for the health check system
type HealthCheck struct {
	Period int `yaml:"period" toml:"period"`
	// minimal free space of the spool folder in MB
	MinFreeSpace int `yaml:"minfreespace" toml:"minfreespace"`
}

// OpenTracing configuration
type OpenTracing struct {
	Host     string `yaml:"host" toml:"host"`
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
}

// Metrics configuration
type Metrics struct {
	Enable bool `yaml:"enable" toml:"enable"`
}

var defaultHeaderMapping = map[string]string{api.APIKeyHeaderKey: "X-apikey", api.FilenameKey: "X-filename"}

// DefaultConfig default configuration
var DefaultConfig = Config{
	Port:       8000,
	Sslport:    0,
	ServiceURL: "http://127.0.0.1:8000",
	SecretFile: "",
	Apikey:     true,
	HealthCheck: HealthCheck{
		Period:       30,
		MinFreeSpace: 100,
	},
	Logging: logging.Config{
		Level:    "INFO",
		Filename: "${configdir}/logging.log",
	},
	Extractor: Extractor{
		Service:      "server",
		JavaPath:     "java",
		Dependencies: []string{"java"},
		Host:         "localhost",
		Port:         9998,
		Timeout:      30,
		MaxRedirects: 5,
	},
	Database: Database{
		Driver: "sqlite",
		DSN:    "${configdir}/metadata.db",
	},
	Resources: Storage{
		Storageclass: "SimpleFile",
		Properties: map[string]any{
			"rootpath": "${configdir}/files",
			"spool":    "${configdir}/spool",
		},
	},
	Index: Storage{
		Storageclass: "noindex",
	},
	HeaderMapping: defaultHeaderMapping,
}

// GetDefaultConfigFolder returning the default configuration folder of the system
func GetDefaultConfigFolder() (string, error) {
	home, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	configFolder := filepath.Join(home, Servicename)
	err = os.MkdirAll(configFolder, os.ModePerm)
	if err != nil {
		return "", err
	}
	return configFolder, nil
}

// ReplaceConfigdir replace the configdir macro
func ReplaceConfigdir(s string) (string, error) {
	if strings.Contains(s, "${configdir}") {
		configFolder, err := GetDefaultConfigFolder()
		if err != nil {
			return "", err
		}
		return strings.Replace(s, "${configdir}", configFolder, -1), nil
	}
	return s, nil
}

var (
	config = Config{}
	cm     sync.RWMutex
	val    = validator.New()
)

// File the config file
var File = "${configdir}/service.yaml"

func init() {
	config = DefaultConfig
}

// Get returns loaded config
func Get() Config {
	cm.RLock()
	defer cm.RUnlock()
	return config
}

// Set sets the config, for tests and for the command line overrides
func Set(c Config) {
	cm.Lock()
	defer cm.Unlock()
	config = c
}

// Load loads the config
func Load() error {
	myFile, err := ReplaceConfigdir(File)
	if err != nil {
		return fmt.Errorf("can't get default config folder: %s", err.Error())
	}
	File = myFile
	c, err := read(File)
	if err != nil {
		return err
	}
	Set(c)
	return nil
}

func read(file string) (Config, error) {
	c := DefaultConfig
	c.HeaderMapping = make(map[string]string)
	c.Resources.Properties = maps.Clone(DefaultConfig.Resources.Properties)
	data, err := os.ReadFile(file)
	if err != nil {
		return c, fmt.Errorf("can't load config file: %s", err.Error())
	}
	dataStr, err := envsubst.Eval(string(data), substitute)
	if err != nil {
		return c, fmt.Errorf("can't substitute config file: %s", err.Error())
	}
	if err := unmarshal(file, []byte(dataStr), &c); err != nil {
		return c, fmt.Errorf("can't unmarshal config file: %s", err.Error())
	}

	for k, v := range defaultHeaderMapping {
		mp, ok := c.HeaderMapping[k]
		if !ok || mp == "" {
			c.HeaderMapping[k] = v
		}
	}

	if err := readSecret(&c); err != nil {
		return c, err
	}
	if err := val.Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %s", err.Error())
	}
	return c, nil
}

// substitute environment variables, the configdir macro is kept for ReplaceConfigdir
func substitute(name string) string {
	if name == "configdir" {
		return "${configdir}"
	}
	return os.Getenv(name)
}

func unmarshal(file string, data []byte, c *Config) error {
	if strings.EqualFold(filepath.Ext(file), ".toml") {
		return toml.Unmarshal(data, c)
	}
	return yaml.Unmarshal(data, c)
}

func readSecret(c *Config) error {
	secretFile := c.SecretFile
	if secretFile != "" {
		data, err := os.ReadFile(secretFile)
		if err != nil {
			return fmt.Errorf("can't load secret file: %s", err.Error())
		}
		var secretConfig Config
		if err := unmarshal(secretFile, data, &secretConfig); err != nil {
			return fmt.Errorf("can't unmarshal secret file: %s", err.Error())
		}
		// merge secret
		if err := mergo.Merge(c, secretConfig, mergo.WithOverride); err != nil {
			return fmt.Errorf("can't merge secret file: %s", err.Error())
		}
	}
	return nil
}
