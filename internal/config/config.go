// Package config loads rpg-items settings from an optional YAML file,
// RPG_ITEMS_* environment variables and bound command line flags.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// EnvPrefix is prepended to every environment variable, so store.backend is
// read from RPG_ITEMS_STORE_BACKEND
const EnvPrefix = "RPG_ITEMS"

// Backend names a key-value store implementation
type Backend string

// Supported store backends
const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

// Config is the complete runtime configuration
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Redis RedisConfig `mapstructure:"redis"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig selects where the items container is persisted
type StoreConfig struct {
	Backend Backend `mapstructure:"backend"`
	// Path is the document written by the file backend
	Path string `mapstructure:"path"`
	// KeyPrefix namespaces the storage key in shared backends
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RedisConfig configures the redis backend
type RedisConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	PoolSize int    `mapstructure:"pool_size"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// SetDefaults registers default values on v. Every key needs a default so
// that environment overrides are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", string(BackendFile))
	v.SetDefault("store.path", "./items.json")
	v.SetDefault("store.key_prefix", "")
	v.SetDefault("redis.endpoint", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.use_tls", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load reads the configuration held by v. When path is not empty the YAML
// file it names must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		return nil, errors.InvalidArgument("viper instance is required")
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidArgumentf("failed to read config file %s: %v", path, err).
				WithMeta("path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode into config struct")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks backend selection and the settings it depends on
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		errors.ValidateRequired("store.path", c.Store.Path, vb)
	case BackendRedis:
		errors.ValidateRequired("redis.endpoint", c.Redis.Endpoint, vb)
		if c.Redis.PoolSize < 0 {
			vb.Field("redis.pool_size", "must not be negative")
		}
	default:
		vb.Field("store.backend", "must be one of memory, file, redis")
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		vb.Field("log.level", "must be one of trace, debug, info, warn, error, fatal, panic, disabled")
	}

	return vb.Build()
}
