package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	Timezone           string
	ExpiryAlertDays    int
	LowHoursThreshold  int
	DashboardCacheTTL  time.Duration
	VirtualNotifyLimit int
	PersistedNotifyCap int
	RateLimitPerMinute int
}

// Development reports whether the service runs with development error detail.
func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Location resolves the configured application timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid application timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDULANE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EduLane API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("alerts.expiry_days", 7)
	v.SetDefault("alerts.low_hours", 2)
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("notifications.virtual_limit", 20)
	v.SetDefault("notifications.persisted_cap", 100)
	v.SetDefault("http.rate_limit_per_minute", 120)

	ttlString := v.GetString("dashboard.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		JWTSecret:          v.GetString("jwt.secret"),
		Timezone:           v.GetString("app.timezone"),
		ExpiryAlertDays:    v.GetInt("alerts.expiry_days"),
		LowHoursThreshold:  v.GetInt("alerts.low_hours"),
		DashboardCacheTTL:  ttl,
		VirtualNotifyLimit: v.GetInt("notifications.virtual_limit"),
		PersistedNotifyCap: v.GetInt("notifications.persisted_cap"),
		RateLimitPerMinute: v.GetInt("http.rate_limit_per_minute"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}

	if cfg.ExpiryAlertDays <= 0 {
		cfg.ExpiryAlertDays = 7
	}

	if cfg.LowHoursThreshold <= 0 {
		cfg.LowHoursThreshold = 2
	}

	if cfg.VirtualNotifyLimit <= 0 {
		cfg.VirtualNotifyLimit = 20
	}

	if cfg.PersistedNotifyCap <= 0 {
		cfg.PersistedNotifyCap = 100
	}

	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 120
	}

	return cfg, nil
}
