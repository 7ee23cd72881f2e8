package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the wordbook service configuration
type Config struct {
	ServiceName    string        `mapstructure:"service_name"`
	Environment    string        `mapstructure:"environment"`
	LogLevel       string        `mapstructure:"log_level"`
	HTTPPort       string        `mapstructure:"http_port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	WordsFile      string        `mapstructure:"words_file"`
	FavoritesFile  string        `mapstructure:"favorites_file"`
	Session        SessionConfig `mapstructure:"session"`
	Redis          RedisConfig   `mapstructure:"redis"`
	Kafka          KafkaConfig   `mapstructure:"kafka"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	CORS           CORSConfig    `mapstructure:"cors"`
}

// SessionConfig selects where quiz samples are kept between requests
type SessionConfig struct {
	Backend string        `mapstructure:"backend"` // memory or redis
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig enables activity events when Brokers is non-empty
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// environment variable per key
var envBindings = map[string]string{
	"service_name":            "OTEL_SERVICE_NAME",
	"environment":             "ENVIRONMENT",
	"log_level":               "LOG_LEVEL",
	"http_port":               "HTTP_PORT",
	"request_timeout":         "REQUEST_TIMEOUT",
	"words_file":              "WORDS_FILE",
	"favorites_file":          "FAVORITES_FILE",
	"session.backend":         "SESSION_BACKEND",
	"session.ttl":             "SESSION_TTL",
	"redis.addr":              "REDIS_ADDR",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"kafka.brokers":           "KAFKA_BROKERS",
	"tracing.enabled":         "TRACING_ENABLED",
	"tracing.jaeger_endpoint": "JAEGER_ENDPOINT",
	"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "wordbook")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", "8501")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("words_file", "N3.csv")
	v.SetDefault("favorites_file", "favorites.csv")
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads defaults, an optional wordbook.yaml and the environment
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("wordbook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "wordbook"))
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "wordbook"))
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	return cfg, nil
}

// splitList flattens comma separated values that arrive through the environment
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
