package extractor

import (
	"time"

	"github.com/willie68/GoTikaMeta/internal/config"
)

// Mode the service type of the extraction
type Mode string

// service types
const (
	ModeLocal  Mode = "local"
	ModeServer Mode = "server"
)

const (
	defaultJava         = "java"
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 5
)

// Config resolved configuration of the extraction
type Config struct {
	Mode         Mode
	TikaPath     string
	JavaPath     string
	Dependencies []string
	Host         string
	Port         int
	Timeout      time.Duration
	// requests per second against the tika server, 0 is unlimited
	RateLimit    float64
	MaxRedirects int
}

// NewConfig creates the extraction config from the service config and the plugin settings
func NewConfig(cfg config.Extractor, store config.Store) Config {
	cfg = cfg.Resolve(store)
	c := Config{
		Mode:         Mode(cfg.Service),
		TikaPath:     cfg.TikaPath,
		JavaPath:     cfg.JavaPath,
		Dependencies: cfg.Dependencies,
		Host:         cfg.Host,
		Port:         cfg.Port,
		Timeout:      time.Duration(cfg.Timeout) * time.Second,
		RateLimit:    cfg.RateLimit,
		MaxRedirects: cfg.MaxRedirects,
	}
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.JavaPath == "" {
		c.JavaPath = defaultJava
	}
	if c.Dependencies == nil {
		c.Dependencies = []string{defaultJava}
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	return c
}
