package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[logs]
file = "logs/test.log"
level = "debug"

[metrics]
enabled = true

[storage]
driver = "redis"

[redis]
addr = "localhost:6379"
db = 2

[notify_service]
url = "http://localhost:8090"
timeout = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "http://localhost:8090", cfg.NotifyService.URL)

	// Не заданные секции получают значения по умолчанию
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, `
[storage]
driver = "cassandra"
`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `
[storage]
driver = "redis"
`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `
[storage]
driver = "postgres"
`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		DBName:   "reservations",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db.local port=5433 user=svc password=secret dbname=reservations sslmode=disable", cfg.DSN())
}
