package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AMQPURL enables the RabbitMQ event mirror when non-empty.
	AMQPURL string

	// ReconcileSchedule is a six-field cron expression for the table
	// reconciliation sweep.
	ReconcileSchedule string

	// RefreshInterval is how often the coordination bus nudges subscribers.
	RefreshInterval time.Duration

	// StorageRetries and RetryBackoff bound the gateway's retry loop on
	// storage failures.
	StorageRetries int
	RetryBackoff   time.Duration
}
