package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/logger"
)

// EnvPrefix prefixes every environment override, e.g. ECN_SERVER_PORT.
const EnvPrefix = "ECN"

// Loader reads configuration from defaults, an optional config file, a .env file
// and the environment, in increasing order of precedence.
type Loader struct {
	v           *viper.Viper
	serviceName string
}

// NewLoader creates a loader whose defaults are tuned for the named service.
func NewLoader(serviceName string) *Loader {
	return &Loader{v: viper.New(), serviceName: serviceName}
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := l.v
	setDefaults(v, l.serviceName)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/ecn/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The legacy deployments only set MONGODB_URI.
	if err := v.BindEnv("store.uri", EnvPrefix+"_STORE_URI", "MONGODB_URI"); err != nil {
		return nil, err
	}

	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch re-reads the config file on change and passes the new configuration to
// onChange. Invalid revisions are logged and skipped. It is a no-op when no config
// file was found at load time.
func (l *Loader) Watch(log logger.Logger, onChange func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.unmarshal()
		if err != nil {
			log.Warn(context.Background(), "Ignoring invalid config revision", logger.Fields{
				"file":  e.Name,
				"error": err.Error(),
			})
			return
		}
		log.Info(context.Background(), "Config file changed", logger.Fields{"file": e.Name})
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func setDefaults(v *viper.Viper, serviceName string) {
	port := 8080
	if serviceName == constants.ServiceNamePrediction {
		port = 8081
	}

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", port)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("store.driver", string(constants.StoreDriverMongoDB))
	v.SetDefault("store.uri", constants.DefaultStoreURI)
	v.SetDefault("store.database", constants.DefaultDatabaseName)
	v.SetDefault("store.connect_timeout", 10*time.Second)
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 0)
	v.SetDefault("store.max_conn_lifetime", time.Hour)
	v.SetDefault("store.max_conn_idle_time", 30*time.Minute)

	v.SetDefault("cache.driver", string(constants.CacheDriverNone))
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.key_prefix", "ecn:")

	v.SetDefault("model.enabled", false)
	v.SetDefault("model.path", constants.DefaultModelPath)

	v.SetDefault("grpc.port", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("tracing.service_name", serviceName)
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.sampling_rate", 1.0)

	v.SetDefault("monitoring.pprof_enabled", false)
}
