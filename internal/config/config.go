package config

import (
	"fmt"
	"time"

	"github.com/ecnlab/ecn/pkg/constants"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Model      ModelConfig      `mapstructure:"model"`
	GRPC       GRPCConfig       `mapstructure:"grpc"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Address returns the host:port the HTTP server listens on.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selects and configures the record store.
// URI is a MongoDB connection string for the mongodb driver, a libpq DSN or URL for
// postgres, and a file path (or "file::memory:") for sqlite.
type StoreConfig struct {
	Driver          constants.StoreDriver `mapstructure:"driver"`
	URI             string                `mapstructure:"uri"`
	Database        string                `mapstructure:"database"`
	ConnectTimeout  time.Duration         `mapstructure:"connect_timeout"`
	MaxConns        int                   `mapstructure:"max_conns"`
	MinConns        int                   `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration         `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration         `mapstructure:"max_conn_idle_time"`
}

type CacheConfig struct {
	Driver constants.CacheDriver `mapstructure:"driver"`
	TTL    time.Duration         `mapstructure:"ttl"`
}

type RedisConfig struct {
	Address      string        `mapstructure:"address"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

type ModelConfig struct {
	// Enabled mounts the prediction route on the record service. The prediction
	// service always loads the model.
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type GRPCConfig struct {
	// Port 0 disables the gRPC listener.
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	Environment    string  `mapstructure:"environment"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

type MonitoringConfig struct {
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Store.Driver {
	case constants.StoreDriverMongoDB, constants.StoreDriverPostgres, constants.StoreDriverSQLite:
	default:
		return fmt.Errorf("unsupported store.driver %q", c.Store.Driver)
	}
	if c.Store.URI == "" {
		return fmt.Errorf("store.uri is required")
	}
	switch c.Cache.Driver {
	case constants.CacheDriverNone, constants.CacheDriverMemory:
	case constants.CacheDriverRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required when cache.driver is redis")
		}
	default:
		return fmt.Errorf("unsupported cache.driver %q", c.Cache.Driver)
	}
	if c.Cache.Driver != constants.CacheDriverNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("grpc.port out of range: %d", c.GRPC.Port)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	if c.Tracing.Enabled && c.Tracing.JaegerEndpoint == "" {
		return fmt.Errorf("tracing.jaeger_endpoint is required when tracing is enabled")
	}
	return nil
}
