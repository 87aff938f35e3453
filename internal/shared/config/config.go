package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "change-me"
)

// Config holds all configuration for the marketplace service.
type Config struct {
	AppEnv           string `mapstructure:"APP_ENV"`
	HTTPAddr         string `mapstructure:"HTTP_ADDR"`
	StorageDriver    string `mapstructure:"STORAGE_DRIVER"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
}

// flagKeys maps command line flags to the environment keys they override
var flagKeys = map[string]string{
	"http-addr":      "HTTP_ADDR",
	"storage-driver": "STORAGE_DRIVER",
	"log-level":      "LOG_LEVEL",
}

// RegisterFlags declares the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("http-addr", ":9000", "listen address of the HTTP server")
	fs.String("storage-driver", StorageDriverPostgres, "storage backend, postgres or memory")
	fs.String("log-level", "info", "minimum log level")
}

// Load reads configuration from the environment, a .env file is loaded first if present.
// flags set explicitly on fs win over the environment, fs may be nil
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":9000")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("METRICS_NAMESPACE", "commerce")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "commerce")
	v.SetDefault("DB_SSLMODE", "disable")
	v.AutomaticEnv()
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted safely.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is empty")
	}
	if strings.EqualFold(c.AppEnv, "production") && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	return nil
}

// InsecureSecret reports whether the default development secret is in use.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// PostgresDSN builds the connection url used by pgx and golang-migrate.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}
