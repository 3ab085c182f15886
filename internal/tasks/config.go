package tasks

import "time"

// Config tunes the background queue that runs database backups and the
// expiry notification scans. Values map one-to-one onto the TASK_*
// environment variables.
type Config struct {
	// Workers is the number of concurrent task workers. Backups and scans
	// are both I/O-light, so two workers cover the panel's load. Default: 2
	Workers int

	// MaxRetries is the maximum retry attempts for failed tasks. Default: 3
	MaxRetries int

	// RetryDelay is the backoff between retries. Default: 1m
	RetryDelay time.Duration

	// TaskTimeout bounds a single run; a full SQL dump of the panel's
	// tables finishes well inside it. Default: 5m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are returned to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are pruned. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks stay visible for
	// inspection. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig mirrors the TASK_* defaults in the config package.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}
