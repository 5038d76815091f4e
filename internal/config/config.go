package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Places  PlacesConfig
	Redis   RedisConfig
	Quota   QuotaConfig
	Session SessionConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

// PlacesConfig configures the Google Places Nearby Search provider.
// APIKey is injected here and consumed only by the places client.
type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	PlaceType      string
	RequestTimeout time.Duration
	PhotoMaxWidth  int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type QuotaConfig struct {
	MaxRequests int
	Window      time.Duration
}

type SessionConfig struct {
	SearchTimeout time.Duration
	IdleTTL       time.Duration
	ReapInterval  time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Places: PlacesConfig{
			APIKey:         v.GetString("PLACES_API_KEY"),
			BaseURL:        v.GetString("PLACES_BASE_URL"),
			PlaceType:      v.GetString("PLACES_PLACE_TYPE"),
			RequestTimeout: time.Duration(v.GetInt("PLACES_REQUEST_TIMEOUT")) * time.Second,
			PhotoMaxWidth:  v.GetInt("PLACES_PHOTO_MAX_WIDTH"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Quota: QuotaConfig{
			MaxRequests: v.GetInt("QUOTA_MAX_REQUESTS"),
			Window:      time.Duration(v.GetInt("QUOTA_WINDOW")) * time.Second,
		},
		Session: SessionConfig{
			SearchTimeout: time.Duration(v.GetInt("SESSION_SEARCH_TIMEOUT")) * time.Second,
			IdleTTL:       time.Duration(v.GetInt("SESSION_IDLE_TTL")) * time.Second,
			ReapInterval:  time.Duration(v.GetInt("SESSION_REAP_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if cfg.Places.PlaceType == "" {
		cfg.Places.PlaceType = "gym"
	}
	if cfg.Places.RequestTimeout <= 0 {
		cfg.Places.RequestTimeout = 10 * time.Second
	}
	if cfg.Places.PhotoMaxWidth <= 0 {
		cfg.Places.PhotoMaxWidth = 400
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Quota.MaxRequests <= 0 {
		cfg.Quota.MaxRequests = 600
	}
	if cfg.Quota.Window <= 0 {
		cfg.Quota.Window = time.Minute
	}
	if cfg.Session.SearchTimeout <= 0 {
		cfg.Session.SearchTimeout = 15 * time.Second
	}
	if cfg.Session.IdleTTL <= 0 {
		cfg.Session.IdleTTL = 30 * time.Minute
	}
	if cfg.Session.ReapInterval <= 0 {
		cfg.Session.ReapInterval = time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
