package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Overpass OverpassConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Search   SearchConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type OverpassConfig struct {
	Mirrors        []string
	QueryTimeout   time.Duration
	RequestTimeout time.Duration
	MaxRetries     int
	BackoffBase    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	StationCacheTTL time.Duration
}

type SearchConfig struct {
	DefaultRadiusM int
	MaxRadiusM     int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment-only configuration is fine when no .env exists.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Overpass: OverpassConfig{
			Mirrors:        parseMirrors(viper.GetString("OVERPASS_MIRRORS")),
			QueryTimeout:   time.Duration(viper.GetInt("OVERPASS_QUERY_TIMEOUT")) * time.Second,
			RequestTimeout: time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			MaxRetries:     viper.GetInt("OVERPASS_MAX_RETRIES"),
			BackoffBase:    time.Duration(viper.GetInt("OVERPASS_BACKOFF_BASE_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StationCacheTTL: time.Duration(viper.GetInt("STATION_CACHE_TTL")) * time.Second,
		},
		Search: SearchConfig{
			DefaultRadiusM: viper.GetInt("SEARCH_DEFAULT_RADIUS"),
			MaxRadiusM:     viper.GetInt("SEARCH_MAX_RADIUS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Overpass.Mirrors) == 0 {
		cfg.Overpass.Mirrors = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
		}
	}
	if cfg.Overpass.QueryTimeout == 0 {
		cfg.Overpass.QueryTimeout = 25 * time.Second
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 30 * time.Second
	}
	if cfg.Overpass.MaxRetries == 0 {
		cfg.Overpass.MaxRetries = 3
	}
	if cfg.Overpass.BackoffBase == 0 {
		cfg.Overpass.BackoffBase = 1000 * time.Millisecond
	}
	if cfg.Cache.StationCacheTTL == 0 {
		cfg.Cache.StationCacheTTL = 15 * time.Minute
	}
	if cfg.Search.DefaultRadiusM == 0 {
		cfg.Search.DefaultRadiusM = 500
	}
	if cfg.Search.MaxRadiusM == 0 {
		cfg.Search.MaxRadiusM = 5000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func parseMirrors(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// CacheEnabled reports whether a Redis host is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}
