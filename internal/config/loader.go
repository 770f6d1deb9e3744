package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the scheduler
// service.
type Config struct {
	HTTPPort   int
	SQLiteDSN  string
	SessionTTL time.Duration

	// Bootstrap admin credentials. When all three are set the service
	// ensures the account exists on startup so a fresh database is never
	// locked out of the admin-only endpoints.
	BootstrapAdminEmail    string
	BootstrapAdminName     string
	BootstrapAdminPassword string
}

// Load parses configuration from the process environment. A .env file in
// the working directory is merged in first without overriding variables
// already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:   8080,
		SQLiteDSN:  "file:scheduler.db",
		SessionTTL: 24 * time.Hour,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("SCHEDULER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "SCHEDULER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	cfg.BootstrapAdminEmail = strings.TrimSpace(strings.ToLower(os.Getenv("SCHEDULER_BOOTSTRAP_ADMIN_EMAIL")))
	cfg.BootstrapAdminName = strings.TrimSpace(os.Getenv("SCHEDULER_BOOTSTRAP_ADMIN_NAME"))
	cfg.BootstrapAdminPassword = os.Getenv("SCHEDULER_BOOTSTRAP_ADMIN_PASSWORD")

	partial := cfg.BootstrapAdminEmail != "" || cfg.BootstrapAdminName != "" || cfg.BootstrapAdminPassword != ""
	complete := cfg.BootstrapAdminEmail != "" && cfg.BootstrapAdminName != "" && cfg.BootstrapAdminPassword != ""
	if partial && !complete {
		invalid = append(invalid, "SCHEDULER_BOOTSTRAP_ADMIN_EMAIL/NAME/PASSWORD")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// HasBootstrapAdmin reports whether a bootstrap admin account is configured.
func (c Config) HasBootstrapAdmin() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminName != "" && c.BootstrapAdminPassword != ""
}
