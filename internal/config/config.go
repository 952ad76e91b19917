package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		GoogleBooks
		Auth
		Cache
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	GoogleBooks struct {
		BaseURL string
		APIKey  string // Optional; sent as the "key" query parameter when set
	}
	Auth struct {
		BcryptCost int
	}
	Cache struct {
		TTL           time.Duration
		PruneSchedule string // Cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		Debug                    bool // When true, import failures carry the underlying cause
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("debug", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("google_books_url", DefaultGoogleBooksURL)
	v.SetDefault("google_books_key", "")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("cache_prune_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		GoogleBooks: GoogleBooks{
			BaseURL: v.GetString("GOOGLE_BOOKS_URL"),
			APIKey:  v.GetString("GOOGLE_BOOKS_KEY"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Cache: Cache{
			TTL:           v.GetDuration("CACHE_TTL"),
			PruneSchedule: v.GetString("CACHE_PRUNE_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Debug:                    v.GetBool("DEBUG"),
		},
	}
}
