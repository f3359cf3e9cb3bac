// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RazorpayKeyID and RazorpayKeySecret authenticate against the payment
	// gateway. Both required. The key ID is also handed to clients so the
	// checkout script can open against the right account.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// GatewayTimeout bounds each outbound gateway call so a slow gateway
	// can never hang an order indefinitely. Defaults to 15s. Set
	// GATEWAY_TIMEOUT to a Go duration string to override.
	GatewayTimeout time.Duration

	// JWTSecret signs admin session tokens. Required.
	JWTSecret string

	// SessionTTL is the admin session lifetime. Defaults to 12h.
	SessionTTL time.Duration

	// AdminUsername and AdminPasswordHash (bcrypt) are the single admin
	// account. AdminPasswordHash is required; AdminUsername defaults to
	// "admin".
	AdminUsername     string
	AdminPasswordHash string

	// PendingTTL is how long a pending booking may sit unverified before
	// the sweeper cancels it. Defaults to 30m.
	PendingTTL time.Duration

	// SweepInterval is how often the pending-booking sweeper runs.
	// Defaults to 5m.
	SweepInterval time.Duration

	// MaxBodyBytes limits incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		MaxBodyBytes:  1 << 20,
	}

	var err error
	if cfg.GatewayTimeout, err = getDuration("GATEWAY_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.PendingTTL, err = getDuration("PENDING_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	var missing []string
	for _, v := range []struct {
		key string
		dst *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"RAZORPAY_KEY_ID", &cfg.RazorpayKeyID},
		{"RAZORPAY_KEY_SECRET", &cfg.RazorpayKeySecret},
		{"JWT_SECRET", &cfg.JWTSecret},
		{"ADMIN_PASSWORD_HASH", &cfg.AdminPasswordHash},
	} {
		*v.dst = os.Getenv(v.key)
		if *v.dst == "" {
			missing = append(missing, v.key)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the environment variable named by key as a Go duration,
// or returns fallback if the variable is not set or is empty.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
