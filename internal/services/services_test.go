package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willie68/GoTikaMeta/internal/config"
)

func testConfig(t *testing.T) config.Config {
	root := t.TempDir()
	cfg := config.DefaultConfig
	cfg.Database = config.Database{Driver: "sqlite", DSN: filepath.Join(root, "metadata.db")}
	cfg.Resources = config.Storage{
		Storageclass: "SimpleFile",
		Properties: map[string]any{
			"rootpath": filepath.Join(root, "files"),
			"spool":    filepath.Join(root, "spool"),
		},
	}
	cfg.Index = config.Storage{
		Storageclass: "bluge",
		Properties:   map[string]any{"rootpath": filepath.Join(root, "idx")},
	}
	cfg.Cache = config.Cache{Enable: true, MaxCount: 10}
	cfg.HealthCheck = config.HealthCheck{Period: 60, MinFreeSpace: 0}
	cfg.Extractor.Host = "127.0.0.1"
	cfg.Extractor.Port = 1
	cfg.Extractor.Timeout = 1
	return cfg
}

func TestNotInitialised(t *testing.T) {
	ast := assert.New(t)

	_, err := MetadataService()
	ast.NotNil(err)
	_, err = HealthSystem()
	ast.NotNil(err)
	ast.NotNil(Reconfigure(config.DefaultConfig))
	ast.Nil(Shutdown())
}

func TestInitServices(t *testing.T) {
	ast := assert.New(t)
	cfg := testConfig(t)

	require.Nil(t, InitServices(context.Background(), cfg))
	defer Shutdown()

	ms, err := MetadataService()
	ast.Nil(err)
	ast.NotNil(ms)

	st := ms.Status(context.Background())
	ast.False(st.Ready)
	ast.Equal("server", st.ServiceType)

	h, err := HealthSystem()
	ast.Nil(err)
	m := h.Last()
	ast.False(m.Ready)
	ast.Equal("ok", m.Messages["database"])
	ast.Equal("ok", m.Messages["disk"])

	cfg.Plugins = config.PluginSettings{
		config.PluginName: {config.KeyServiceType: "local"},
	}
	ast.Nil(Reconfigure(cfg))
	ast.Equal("local", ms.Status(context.Background()).ServiceType)
}

func TestInitWrongDatabase(t *testing.T) {
	ast := assert.New(t)
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	ast.NotNil(InitServices(context.Background(), cfg))
}
