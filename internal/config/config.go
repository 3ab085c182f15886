package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Supabase
		Database
		Backup
		Refresh
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	// Supabase holds hosted-Postgres credentials. When URL and a key are
	// present they win over the DB_* settings.
	Supabase struct {
		URL            string
		AnonKey        string
		ServiceRoleKey string
	}

	Database struct {
		Type     string // "postgres", "sqlite" or "" for auto-detect
		Host     string
		Port     int
		Name     string
		User     string
		Password string
		SSLMode  string
		FilePath string // sqlite database file
		Seed     bool   // load demo fixtures into an empty database
	}

	Backup struct {
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}

	Refresh struct {
		Schedule string // Cron format: "0 * * * *" = hourly
	}

	Tasks struct {
		Enabled           bool
		DBPath            string
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("db_type", "")
	v.SetDefault("db_host", "")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "hostpanel")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_ssl", "require")
	v.SetDefault("db_file_path", DefaultDatabasePath)
	v.SetDefault("db_seed", true)

	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("refresh_schedule", "0 * * * *") // Hourly at :00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_db_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Supabase: Supabase{
			URL:            v.GetString("SUPABASE_URL"),
			AnonKey:        v.GetString("SUPABASE_ANON_KEY"),
			ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		},
		Database: Database{
			Type:     v.GetString("DB_TYPE"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL"),
			FilePath: v.GetString("DB_FILE_PATH"),
			Seed:     v.GetBool("DB_SEED"),
		},
		Backup: Backup{
			Schedule: v.GetString("BACKUP_SCHEDULE"),
		},
		Refresh: Refresh{
			Schedule: v.GetString("REFRESH_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			DBPath:            v.GetString("TASKS_DB_PATH"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
	}
}
