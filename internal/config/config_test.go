package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecnlab/ecn/pkg/constants"
)

func TestLoader_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, constants.StoreDriverMongoDB, cfg.Store.Driver)
	assert.Equal(t, constants.DefaultStoreURI, cfg.Store.URI)
	assert.Equal(t, "ecn", cfg.Store.Database)
	assert.Equal(t, constants.CacheDriverNone, cfg.Cache.Driver)
	assert.Equal(t, constants.DefaultModelPath, cfg.Model.Path)
	assert.False(t, cfg.Model.Enabled)
	assert.Equal(t, constants.ServiceNameRecords, cfg.Tracing.ServiceName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_PredictionServicePort(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewLoader(constants.ServiceNamePrediction).Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, constants.ServiceNamePrediction, cfg.Tracing.ServiceName)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ECN_SERVER_PORT", "9090")
	t.Setenv("ECN_CACHE_DRIVER", "memory")
	t.Setenv("ECN_CACHE_TTL", "5s")
	t.Setenv("ECN_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, constants.CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoader_LegacyMongoURI(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017/ecn")

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.internal:27017/ecn", cfg.Store.URI)
}

func TestLoader_PrefixedURIWinsOverLegacy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MONGODB_URI", "mongodb://legacy:27017/ecn")
	t.Setenv("ECN_STORE_URI", "mongodb://preferred:27017/ecn")

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://preferred:27017/ecn", cfg.Store.URI)
}

func TestLoader_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ECN_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ECN_LOG_LEVEL") })

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "store:\n  driver: sqlite\n  uri: file::memory:\nmodel:\n  enabled: true\n  path: models/n.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := NewLoader(constants.ServiceNameRecords).Load()
	require.NoError(t, err)
	assert.Equal(t, constants.StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file::memory:", cfg.Store.URI)
	assert.True(t, cfg.Model.Enabled)
	assert.Equal(t, "models/n.json", cfg.Model.Path)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Store:  StoreConfig{Driver: constants.StoreDriverMongoDB, URI: constants.DefaultStoreURI},
			Cache:  CacheConfig{Driver: constants.CacheDriverNone},
			Model:  ModelConfig{Path: constants.DefaultModelPath},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Driver = "cassandra" }, wantErr: "store.driver"},
		{name: "empty uri", mutate: func(c *Config) { c.Store.URI = "" }, wantErr: "store.uri"},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Driver = "memcached" }, wantErr: "cache.driver"},
		{name: "redis without address", mutate: func(c *Config) {
			c.Cache.Driver = constants.CacheDriverRedis
			c.Cache.TTL = time.Second
		}, wantErr: "redis.address"},
		{name: "memory without ttl", mutate: func(c *Config) { c.Cache.Driver = constants.CacheDriverMemory }, wantErr: "cache.ttl"},
		{name: "grpc port", mutate: func(c *Config) { c.GRPC.Port = 70000 }, wantErr: "grpc.port"},
		{name: "model path", mutate: func(c *Config) { c.Model.Path = "" }, wantErr: "model.path"},
		{name: "tracing endpoint", mutate: func(c *Config) { c.Tracing.Enabled = true }, wantErr: "jaeger_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
