// Package config loads runtime settings via viper. The resulting struct is
// built once in main and injected; nothing reads configuration ambiently.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"` // gin mode: debug | release | test
	BaseURL string `mapstructure:"base_url"`
}

type Database struct {
	Driver       string `mapstructure:"driver"` // postgres | sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"` // empty disables redis features
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Auth struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	VerifyTokenTTL time.Duration `mapstructure:"verify_token_ttl"`
	ResetTokenTTL  time.Duration `mapstructure:"reset_token_ttl"`
}

type SMTP struct {
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	Account          string `mapstructure:"account"`
	Password         string `mapstructure:"password"`
	VerifyEmailURL   string `mapstructure:"verify_email_url"`
	ResetPasswordURL string `mapstructure:"reset_password_url"`
}

type Minio struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type RateLimit struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type Observability struct {
	SentryDSN    string `mapstructure:"sentry_dsn"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	LogLevel     string `mapstructure:"log_level"`
	Development  bool   `mapstructure:"development"`
}

type Config struct {
	Server        Server        `mapstructure:"server"`
	Database      Database      `mapstructure:"database"`
	Redis         Redis         `mapstructure:"redis"`
	Auth          Auth          `mapstructure:"auth"`
	SMTP          SMTP          `mapstructure:"smtp"`
	Minio         Minio         `mapstructure:"minio"`
	RateLimit     RateLimit     `mapstructure:"rate_limit"`
	Observability Observability `mapstructure:"observability"`
}

// Load reads config.yaml from the working directory (optional) with
// BUZZBOARD_* environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BUZZBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres dbname=buzzboard sslmode=disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("auth.access_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.verify_token_ttl", time.Hour)
	v.SetDefault("auth.reset_token_ttl", time.Hour)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("observability.log_level", "info")
}
