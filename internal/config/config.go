package config

import (
	"time"

	"github.com/spf13/viper"
)

type StoreDriver string

const (
	StoreDriverSQLite StoreDriver = "sqlite" // gorm settings table (default)
	StoreDriverBolt   StoreDriver = "bolt"   // single bbolt bucket
	StoreDriverMemory StoreDriver = "memory" // nothing survives a restart
)

type (
	Config struct {
		HTTP
		API
		Store
		Search
		CatalogRefresh
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	API struct {
		BaseURL    string
		Timeout    time.Duration
		MaxRetries int
	}
	Store struct {
		Driver StoreDriver
		Path   string

		// Credential encryption. Empty key means TOKEN_ENCRYPTION_KEY, then
		// the key file, then a freshly generated key.
		EncryptionKey string
		KeyFile       string
	}
	Search struct {
		Debounce time.Duration
		Match    bool // Exact matches only
	}
	CatalogRefresh struct {
		Enabled  bool
		Schedule string // Cron format: "0 */12 * * *" = twice a day
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_timeout", "30s")
	v.SetDefault("api_max_retries", 3)

	v.SetDefault("store_driver", string(StoreDriverSQLite))
	v.SetDefault("store_path", DefaultStorePath)
	v.SetDefault("token_encryption_key", "")
	v.SetDefault("token_key_file", "")

	v.SetDefault("search_debounce", "300ms")
	v.SetDefault("search_match", false)

	v.SetDefault("catalog_refresh_enabled", false)
	v.SetDefault("catalog_refresh_schedule", "0 */12 * * *")

	// Contribution outbox
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		API: API{
			BaseURL:    v.GetString("API_BASE_URL"),
			Timeout:    v.GetDuration("API_TIMEOUT"),
			MaxRetries: v.GetInt("API_MAX_RETRIES"),
		},
		Store: Store{
			Driver:        StoreDriver(v.GetString("STORE_DRIVER")),
			Path:          v.GetString("STORE_PATH"),
			EncryptionKey: v.GetString("TOKEN_ENCRYPTION_KEY"),
			KeyFile:       v.GetString("TOKEN_KEY_FILE"),
		},
		Search: Search{
			Debounce: v.GetDuration("SEARCH_DEBOUNCE"),
			Match:    v.GetBool("SEARCH_MATCH"),
		},
		CatalogRefresh: CatalogRefresh{
			Enabled:  v.GetBool("CATALOG_REFRESH_ENABLED"),
			Schedule: v.GetString("CATALOG_REFRESH_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
