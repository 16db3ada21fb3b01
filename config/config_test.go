package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	assert.Equal(t, "doshihardware", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 86400, cfg.Web.JwtTtl)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig("/does/not/exist.yml")
	assert.Equal(t, DefaultAppConfig().Web.Port, cfg.Web.Port)
}

func TestLoadConfigFromYaml(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "doshihardware.yml")
	data := []byte("web:\n  host: 127.0.0.1\n  port: 8080\ndatabase:\n  name: shopdb\n")
	require.NoError(t, os.WriteFile(cfile, data, 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "shopdb", cfg.Database.Name)
	// untouched sections keep their defaults
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DOSHI_WEB_PORT", "9090")
	t.Setenv("DOSHI_DB_HOST", "db.internal")
	t.Setenv("DOSHI_SYSTEM_DEBUG", "false")

	cfg := LoadConfig("")
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.System.Debug)
}
