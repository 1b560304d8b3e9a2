package config

import (
	"os"
	"strconv"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	AdminUser     string
	AdminPassword string

	DatabaseURL string

	ListenAddr string

	// SiteHost is the canonical host of the public site. Referrers from
	// this host classify as internal traffic.
	SiteHost string

	// RetentionDays is how long analytics events are kept before the
	// retention worker removes them. 0 disables expiry entirely.
	RetentionDays int

	// PreviewImageURL is the upstream source for the cached site preview
	// image. If empty, the preview endpoint serves 404.
	PreviewImageURL string
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		AdminUser:       getenv("APP_ADMIN_USER", "admin"),
		AdminPassword:   getenv("APP_ADMIN_PASSWORD", "changeme"),
		DatabaseURL:     os.Getenv("APP_DATABASE_URL"),
		ListenAddr:      getenv("APP_LISTEN_ADDR", ":8080"),
		SiteHost:        getenv("APP_SITE_HOST", "localhost"),
		RetentionDays:   90,
		PreviewImageURL: getenv("APP_PREVIEW_IMAGE_URL", ""),
	}

	if v := os.Getenv("APP_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			cfg.RetentionDays = days
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
