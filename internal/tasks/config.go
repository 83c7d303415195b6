package tasks

import "time"

// Config holds configuration for the contribution outbox.
type Config struct {
	// Workers is the number of concurrent submitters. Default: 1
	Workers int

	// ReleaseAfter is when a stuck submission is handed back to the queue. Default: 5m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished submissions are purged. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    5 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
