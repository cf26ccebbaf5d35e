package cmd

import "time"

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	UserServiceURL string
	MenuServiceURL string

	// NatsURL is optional; when empty, event publishing is disabled.
	NatsURL string

	UserLookupTimeout  time.Duration
	PaymentMaxAttempts int
}
